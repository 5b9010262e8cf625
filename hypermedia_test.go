package hypermedia

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hypermedia/pkg/cj"
	"github.com/goliatone/go-hypermedia/pkg/transitions"
)

func testCatalog(t *testing.T) *transitions.Catalog {
	t.Helper()
	return transitions.New(map[string]transitions.Transition{
		"list_tasks": {
			Name:   "list_tasks",
			Href:   "/tasks",
			Rel:    "tasks",
			Method: "GET",
			Fields: []transitions.Field{
				{Name: "q", Type: "string", Prompt: "Search terms", InputType: "text"},
			},
		},
		"view_task": {
			Name:   "view_task",
			Href:   "/tasks/{task_id}",
			Rel:    "tasks",
			Method: "GET",
		},
		"create_task": {
			Name:   "create_task",
			Href:   "/tasks",
			Rel:    "tasks",
			Method: "POST",
			Fields: []transitions.Field{
				{Name: "title", Type: "string", Prompt: "Title", Required: true, InputType: "text"},
				{Name: "status", Type: "string", Prompt: "status", Value: "open", InputType: "select", Options: []string{"open", "done"}},
			},
		},
	})
}

func TestCollectionDefaultHref(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks?page=2"))

	doc, err := h.Collection("Tasks")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if doc.Collection.Href != "/tasks?page=2" {
		t.Fatalf("expected request URL as default href, got %q", doc.Collection.Href)
	}
	if doc.Collection.Version != cj.Version {
		t.Fatalf("expected version %q, got %q", cj.Version, doc.Collection.Version)
	}
}

func TestCollectionHrefOverride(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks", WithHref("/tasks/archive"))
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if doc.Collection.Href != "/tasks/archive" {
		t.Fatalf("override lost: %q", doc.Collection.Href)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/tasks?assignee=ada", nil)
	h := FromRequest(testCatalog(t), r)

	doc, err := h.Collection("Tasks")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if doc.Collection.Href != "/tasks?assignee=ada" {
		t.Fatalf("expected request href, got %q", doc.Collection.Href)
	}
}

func TestCollectionLinksFromMixedRefs(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks",
		WithLinks(
			Name("list_tasks"),
			NameRel("list_tasks", "self"),
			NameRelParams("view_task", "first", map[string]string{"task_id": "42"}),
			PrebuiltLink(cj.Link{Rel: "help", Href: "/docs", Method: "GET"}),
		),
	)
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	want := []cj.Link{
		{Rel: "tasks", Href: "/tasks", Method: "GET"},
		{Rel: "self", Href: "/tasks", Method: "GET"},
		{Rel: "first", Href: "/tasks/42", Method: "GET"},
		{Rel: "help", Href: "/docs", Method: "GET"},
	}
	if diff := cmp.Diff(want, doc.Collection.Links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionDropsUnknownNames(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks",
		WithLinks(Name("list_tasks"), Name("no_such_operation")),
		WithQueries(Name("missing_query")),
		WithTemplates(Name("missing_template")),
	)
	if err != nil {
		t.Fatalf("unknown names must not fail assembly: %v", err)
	}
	if len(doc.Collection.Links) != 1 {
		t.Fatalf("expected the unknown link dropped, got %+v", doc.Collection.Links)
	}
	if len(doc.Collection.Queries) != 0 || len(doc.Template) != 0 {
		t.Fatalf("expected unknown queries/templates dropped: %+v / %+v", doc.Collection.Queries, doc.Template)
	}
}

func TestCollectionMissingParameterPropagates(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	_, err := h.Collection("Tasks", WithLinks(Name("view_task")))
	var missing *transitions.MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if missing.Param != "task_id" || missing.Operation != "view_task" {
		t.Fatalf("unexpected error detail: %+v", missing)
	}
}

func TestCollectionQueries(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks",
		WithQueries(
			NameRel("list_tasks", "search"),
			PrebuiltQuery(cj.Query{Rel: "filter", Href: "/tasks/filter"}),
		),
	)
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	if len(doc.Collection.Queries) != 2 {
		t.Fatalf("expected 2 queries, got %+v", doc.Collection.Queries)
	}
	search := doc.Collection.Queries[0]
	if search.Rel != "search" || search.Href != "/tasks" {
		t.Fatalf("unexpected query: %+v", search)
	}
	if len(search.Data) != 1 || search.Data[0].Name != "q" {
		t.Fatalf("query fields lost: %+v", search.Data)
	}
	if doc.Collection.Queries[1].Rel != "filter" {
		t.Fatalf("prebuilt query lost: %+v", doc.Collection.Queries[1])
	}
}

func TestCollectionTemplatesWithDefaults(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks",
		WithTemplates(Name("create_task").WithDefaults(map[string]any{
			"title":  "Ship release",
			"status": "",
		})),
	)
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	if len(doc.Template) != 1 {
		t.Fatalf("expected 1 template, got %+v", doc.Template)
	}
	data := doc.Template[0].Data
	if data[0].Value != "Ship release" {
		t.Fatalf("default not applied: %+v", data[0])
	}
	// Empty string is falsy and must not clobber the schema default.
	if data[1].Value != "open" {
		t.Fatalf("falsy default overrode schema value: %+v", data[1])
	}
}

func TestCollectionOmitsEmptyTemplates(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if doc.Template != nil {
		t.Fatalf("expected no template slice, got %+v", doc.Template)
	}
}

func TestCollectionHandlerRefs(t *testing.T) {
	listTasks := func() {}
	catalog := testCatalog(t)
	if err := catalog.Handles().Bind(listTasks, "list_tasks"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	h := New(catalog, WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks", WithLinks(Handler(listTasks)))
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if len(doc.Collection.Links) != 1 || doc.Collection.Links[0].Href != "/tasks" {
		t.Fatalf("handler reference not resolved: %+v", doc.Collection.Links)
	}
}

func TestCollectionProjectsItems(t *testing.T) {
	type task struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks",
		WithItems([]any{
			task{ID: "t1", Title: "First"},
			cj.Item{Href: "/tasks/t2"},
		}, func(record any) string {
			return "/tasks/" + record.(task).ID
		}),
	)
	if err != nil {
		t.Fatalf("collection: %v", err)
	}

	if len(doc.Collection.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", doc.Collection.Items)
	}
	if doc.Collection.Items[0].Href != "/tasks/t1" {
		t.Fatalf("hrefFn not applied: %+v", doc.Collection.Items[0])
	}
	if got := doc.Collection.Items[0].Data[1].Value; got != "First" {
		t.Fatalf("projection lost values: %v", got)
	}
	// Pre-built items pass through untouched.
	if doc.Collection.Items[1].Href != "/tasks/t2" {
		t.Fatalf("prebuilt item lost: %+v", doc.Collection.Items[1])
	}
}

func TestCollectionErrorBlock(t *testing.T) {
	h := New(testCatalog(t), WithRequestURL("/tasks"))

	doc, err := h.Collection("Tasks", WithError(cj.Error{
		Title:   "Not Found",
		Code:    404,
		Message: "no such task",
	}))
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	if doc.Error == nil || doc.Error.Code != 404 {
		t.Fatalf("error block lost: %+v", doc.Error)
	}
}

func TestCollectionWithoutCatalog(t *testing.T) {
	h := New(nil, WithRequestURL("/tasks"))

	if _, err := h.Collection("Tasks", WithLinks(Name("list_tasks"))); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
	// Prebuilt refs never consult the catalog.
	doc, err := h.Collection("Tasks", WithLinks(PrebuiltLink(cj.Link{Rel: "help", Href: "/docs"})))
	if err != nil {
		t.Fatalf("prebuilt link should not need a catalog: %v", err)
	}
	if len(doc.Collection.Links) != 1 {
		t.Fatalf("prebuilt link lost: %+v", doc.Collection.Links)
	}
}
