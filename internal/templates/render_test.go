package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedFragments(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"editor-page", "editor-style", "display-controls", "empty-state", "select-option",
		"station-row", "station-rows", "layer-card", "tonnage-panel", "poi-card",
		"profile", "map", "geofence-card",
	} {
		if !r.Has(name) {
			t.Errorf("template %q missing", name)
		}
	}
}

func TestRenderEmptyState(t *testing.T) {
	r := MustNew()
	got, err := r.Render("empty-state", map[string]string{"Title": "Keine <Daten>", "Message": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Keine &lt;Daten&gt;") {
		t.Fatalf("title not escaped: %s", got)
	}
}

func TestFuncs(t *testing.T) {
	num := funcMap["num"].(func(float64, int) string)
	if got := num(6.7551, 2); got != "6.76" {
		t.Fatalf("num=%q, want 6.76", got)
	}
	trim := funcMap["trim"].(func(float64) string)
	if got := trim(10.50); got != "10.5" {
		t.Fatalf("trim=%q, want 10.5", got)
	}
	pct := funcMap["pct"].(func(int, int) string)
	if got := pct(3, 4); got != "75" {
		t.Fatalf("pct=%q, want 75", got)
	}
	if got := pct(0, 0); got != "0" {
		t.Fatalf("pct of nothing=%q", got)
	}
}

func TestReloadFromDir(t *testing.T) {
	r := MustNew()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.html"), []byte(`{{define "empty-state"}}custom {{.Title}}{{end}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.Reload(dir); err != nil {
		t.Fatal(err)
	}
	if got := r.MustRender("empty-state", map[string]string{"Title": "a"}); got != "custom a" {
		t.Fatalf("got %q", got)
	}
	if r.Has("profile") {
		t.Fatal("embedded templates still present after reload from dir")
	}
	if err := r.Reload(""); err != nil {
		t.Fatal(err)
	}
	if !r.Has("profile") {
		t.Fatal("embedded templates not restored")
	}
}
