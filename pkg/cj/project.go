package cj

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ItemRepresenter lets a record bypass reflection and build its own Item.
type ItemRepresenter interface {
	CollectionItem(href string, links []Link) Item
}

// Project converts a struct record into an Item, emitting one Data entry per
// exported field in declaration order. The field name comes from the json tag
// (falling back to a lower-snake form of the Go name), the prompt from the
// prompt tag or a humanized field name, and the render hint from the render
// tag. Identical record state always yields an identical data list.
func Project(record any, href string, links []Link, rel string) (Item, error) {
	if rel == "" {
		rel = "item"
	}
	if links == nil {
		links = []Link{}
	}

	if rep, ok := record.(ItemRepresenter); ok {
		return rep.CollectionItem(href, links), nil
	}

	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Item{}, fmt.Errorf("cj: cannot project nil record")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return Item{}, fmt.Errorf("cj: cannot project %s record, want struct", v.Kind())
	}

	t := v.Type()
	data := make([]Data, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "-" {
			continue
		}
		data = append(data, Data{
			Name:       name,
			Value:      fieldValue(v.Field(i)),
			Prompt:     fieldPrompt(field, name),
			Type:       declaredType(field.Type),
			RenderHint: field.Tag.Get("render"),
		})
	}

	return Item{Href: href, Rel: rel, Data: data, Links: links}, nil
}

// MustProject panics on projection failure. Useful for fixtures and handlers
// that control their record types.
func MustProject(record any, href string, links []Link, rel string) Item {
	item, err := Project(record, href, links, rel)
	if err != nil {
		panic(err)
	}
	return item
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return snakeCase(field.Name)
}

func fieldPrompt(field reflect.StructField, name string) string {
	if prompt := field.Tag.Get("prompt"); prompt != "" {
		return prompt
	}
	return Humanize(name)
}

// Humanize turns a field identifier into a title-cased prompt, replacing
// underscores with spaces ("created_at" becomes "Created At").
func Humanize(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldValue(v reflect.Value) any {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func declaredType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	// Types serializing through MarshalText (time.Time, uuid.UUID) appear as
	// strings on the wire regardless of their Go shape.
	if t == timeType || t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType) {
		return "string"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return ""
	}
}
