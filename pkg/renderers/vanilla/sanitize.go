package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-hypermedia/pkg/cj"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy
}

// sanitizeDocument returns a copy of the document with every html-hinted
// string value run through the sanitizer. Templates mark those values safe,
// so the policy is the only thing standing between stored markup and the
// page.
func sanitizeDocument(doc cj.Document) cj.Document {
	items := make([]cj.Item, len(doc.Collection.Items))
	copy(items, doc.Collection.Items)
	for i, item := range items {
		data := make([]cj.Data, len(item.Data))
		copy(data, item.Data)
		for j, d := range data {
			data[j].Value = sanitizeValue(d.RenderHint, d.Value)
		}
		items[i].Data = data
	}
	doc.Collection.Items = items
	return doc
}

func sanitizeValue(hint string, value any) any {
	if hint != "html" {
		return value
	}
	text, ok := value.(string)
	if !ok {
		return value
	}
	return strings.TrimSpace(htmlSanitizer().Sanitize(text))
}
