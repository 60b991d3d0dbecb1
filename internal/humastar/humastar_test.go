package humastar

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/go-cmp/cmp"
)

func TestSignals(t *testing.T) {
	s, err := ParseSignals([]byte(`{"station":"12,5","width":3.2,"flag":true,"path":[[1,2],[3,4]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Text("station"); got != "12,5" {
		t.Fatalf("Text(station)=%q", got)
	}
	if got := s.Text("width"); got != "3.2" {
		t.Fatalf("Text(width)=%q, want 3.2", got)
	}
	if s.String("width") != "" {
		t.Fatal("String returned a number")
	}
	if !s.Bool("flag") || s.Bool("station") {
		t.Fatal("Bool mismatch")
	}
	if s.Float("width") != 3.2 {
		t.Fatalf("Float(width)=%v", s.Float("width"))
	}
	var path [][]float64
	if err := s.Decode("path", &path); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]float64{{1, 2}, {3, 4}}, path); diff != "" {
		t.Fatalf("path (-want +got):\n%s", diff)
	}
	if err := s.Decode("missing", &path); err == nil {
		t.Fatal("Decode of missing signal succeeded")
	}

	empty, err := ParseSignals(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty body=%v,%v", empty, err)
	}
	if _, err := (&SignalsInput{RawBody: []byte("{")}).MustParse(); err == nil {
		t.Fatal("bad JSON accepted")
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	p := Paginate(items, PageInput{Offset: 2, Limit: 2})
	if diff := cmp.Diff(PageBody[int]{Total: 5, Offset: 2, Limit: 2, Data: []int{3, 4}}, p); diff != "" {
		t.Fatalf("page (-want +got):\n%s", diff)
	}
	want := []string{
		`</x?offset=0&limit=2>; rel="first"`,
		`</x?offset=0&limit=2>; rel="prev"`,
		`</x?offset=4&limit=2>; rel="next"`,
		`</x?offset=4&limit=2>; rel="last"`,
	}
	if diff := cmp.Diff(want, p.PaginationLinks("/x")); diff != "" {
		t.Fatalf("links (-want +got):\n%s", diff)
	}

	past := Paginate(items, PageInput{Offset: 10})
	if past.Offset != 5 || len(past.Data) != 0 || past.Limit != DefaultLimit {
		t.Fatalf("past end=%+v", past)
	}
	if none := Paginate([]int(nil), PageInput{}); none.Data == nil {
		t.Fatal("nil data")
	}
}

func TestActionLinkHeader(t *testing.T) {
	actions := ActionsFor("abc", []ActionDef{
		{Rel: "duplicate", Pattern: "/api/v1/stations/%s/duplicate", Method: "POST", Title: "Duplicate station"},
		{Rel: "delete", Pattern: "/api/v1/stations/%s", Method: "DELETE"},
	})
	want := `</api/v1/stations/abc/duplicate>; rel="duplicate"; method="POST"; title="Duplicate station"`
	if got := actions[0].LinkHeader(); got != want {
		t.Fatalf("link=%s, want %s", got, want)
	}
	if got := actions[1].LinkHeader(); got != `</api/v1/stations/abc>; rel="delete"; method="DELETE"` {
		t.Fatalf("link=%s", got)
	}
}

func TestParseLinkHeader(t *testing.T) {
	rel, href := parseLinkHeader(`</api/v1/stations>; rel="collection"`)
	if rel != "collection" || href != "/api/v1/stations" {
		t.Fatalf("rel=%q href=%q", rel, href)
	}
	if rel, _ := parseLinkHeader("garbage"); rel != "" {
		t.Fatalf("rel=%q", rel)
	}
}

type thingBody struct {
	ID string `json:"id"`
}

func (b thingBody) Actions() []Action {
	return ActionsFor(b.ID, []ActionDef{{Rel: "delete", Pattern: "/things/%s", Method: "DELETE"}})
}

func TestAutoLinksAndTransformer(t *testing.T) {
	_, api := humatest.New(t)
	huma.Get(api, "/health", func(ctx context.Context, _ *struct{}) (*struct{}, error) { return nil, nil })
	huma.Get(api, "/things", func(ctx context.Context, _ *struct{}) (*struct{ Body []thingBody }, error) {
		return &struct{ Body []thingBody }{Body: []thingBody{}}, nil
	})
	huma.Post(api, "/things", func(ctx context.Context, _ *struct{}) (*struct{}, error) { return nil, nil })
	huma.Get(api, "/things/{id}", func(ctx context.Context, in *struct {
		ID string `path:"id"`
	}) (*struct{ Body thingBody }, error) {
		return &struct{ Body thingBody }{Body: thingBody{ID: in.ID}}, nil
	})
	huma.Get(api, "/editor/things", func(ctx context.Context, _ *struct{}) (*struct{}, error) { return nil, nil },
		huma.OperationTags("editor"))

	links := AutoLinks(api, "editor")
	if _, ok := links["/editor/things"]; ok {
		t.Fatal("editor path linked")
	}
	for _, want := range []string{`</things/{id}>; rel="item"`, `</things>; rel="create-form"`, `</health>; rel="up"`} {
		if !contains(links["/things"], want) {
			t.Fatalf("/things links %v missing %s", links["/things"], want)
		}
	}
	if !contains(links["/health"], `</things>; rel="things"`) {
		t.Fatalf("/health links %v", links["/health"])
	}
}

func TestLinkTransformerHeaders(t *testing.T) {
	config := huma.DefaultConfig("links", "1.0.0")
	links := Links{}
	links.Add("/things/{id}", "/things", "collection")
	config.Transformers = append(config.Transformers, LinkTransformer(links))
	_, api := humatest.New(t, config)
	huma.Get(api, "/things/{id}", func(ctx context.Context, in *struct {
		ID string `path:"id"`
	}) (*struct{ Body thingBody }, error) {
		return &struct{ Body thingBody }{Body: thingBody{ID: in.ID}}, nil
	})

	resp := api.Get("/things/t1")
	if resp.Code != http.StatusOK {
		t.Fatalf("status=%d", resp.Code)
	}
	got := strings.Join(resp.Result().Header.Values("Link"), "\n")
	for _, want := range []string{
		`</things>; rel="collection"`,
		`</things/t1>; rel="self"`,
		`</things/t1>; rel="delete"; method="DELETE"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Link headers %q missing %s", got, want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
