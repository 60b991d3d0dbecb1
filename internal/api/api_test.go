package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/go-cmp/cmp"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
)

func newTestAPI(t *testing.T, store service.SnapshotStore) (humatest.TestAPI, *service.ProjectService) {
	t.Helper()
	svc := service.NewProjectService(service.ProjectOptions{
		Name:     "Teststrecke",
		Settings: survey.DefaultSettings(),
		Store:    store,
		Logger:   log.New(io.Discard, "", 0),
	})
	links := humastar.Links{}
	config := huma.DefaultConfig("road test", Version)
	config.CreateHooks = []func(huma.Config) huma.Config{}
	config.Transformers = append(config.Transformers, humastar.LinkTransformer(links))
	_, api := humatest.New(t, config)
	huma.AutoRegister(api, NewAPIHandler(svc))
	NewDBHandler(nil).RegisterRoutes(api)
	NewInfoHandler(t.TempDir(), false, svc).RegisterRoutes(api)
	AddLinks(api, links)
	return api, svc
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func expect(t *testing.T, code, want int, body string) {
	t.Helper()
	if code != want {
		t.Fatalf("status=%d, want %d: %s", code, want, body)
	}
}

func TestHealthAndInfo(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	resp := api.Get("/health")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if h := decode[HealthBody](t, resp.Body); h.Status != "ok" || h.Version != Version {
		t.Fatalf("health=%+v", h)
	}
	links := strings.Join(resp.Result().Header.Values("Link"), "\n")
	for _, want := range []string{`</api/v1/stations>; rel="stations"`, `</api/v1/info>; rel="info"`} {
		if !strings.Contains(links, want) {
			t.Fatalf("health links %q missing %s", links, want)
		}
	}

	resp = api.Get("/api/v1/info")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if info := decode[InfoBody](t, resp.Body); info.Name != "plat-road" || info.Backend != "none" {
		t.Fatalf("info=%+v", info)
	}
}

func TestStationCRUD(t *testing.T) {
	api, svc := newTestAPI(t, nil)

	resp := api.Post("/api/v1/stations", map[string]any{"station": 10, "width": 3})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	st := decode[survey.Station](t, resp.Body)
	if st.ID == "" || st.Station != 10 || st.Width != 3 {
		t.Fatalf("station=%+v", st)
	}
	if links := strings.Join(resp.Result().Header.Values("Link"), "\n"); !strings.Contains(links, `rel="duplicate"; method="POST"`) {
		t.Fatalf("no duplicate action in %q", links)
	}

	resp = api.Put("/api/v1/stations/"+st.ID, map[string]any{"station": 12.5, "width": 4})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if got, _ := svc.Station(st.ID); got.Station != 12.5 || got.Width != 4 {
		t.Fatalf("station=%+v", got)
	}

	resp = api.Post("/api/v1/stations/" + st.ID + "/duplicate")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if n := len(svc.Stations()); n != 2 {
		t.Fatalf("stations=%d, want 2", n)
	}

	resp = api.Delete("/api/v1/stations/" + st.ID)
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	resp = api.Get("/api/v1/stations/" + st.ID)
	expect(t, resp.Code, http.StatusNotFound, resp.Body.String())
}

func TestStationValidation(t *testing.T) {
	api, svc := newTestAPI(t, nil)

	resp := api.Post("/api/v1/stations", map[string]any{"station": 5, "width": 0})
	expect(t, resp.Code, http.StatusUnprocessableEntity, resp.Body.String())
	if n := len(svc.Stations()); n != 0 {
		t.Fatalf("stations=%d, want 0", n)
	}
	resp = api.Put("/api/v1/stations/missing", map[string]any{"station": 1, "width": 1})
	expect(t, resp.Code, http.StatusNotFound, resp.Body.String())
}

func TestListStationsPaginates(t *testing.T) {
	api, svc := newTestAPI(t, nil)
	svc.Seed()

	resp := api.Get("/api/v1/stations?offset=1&limit=2")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	page := decode[humastar.PageBody[survey.Station]](t, resp.Body)
	if page.Total != 5 || len(page.Data) != 2 || page.Data[0].Station != 10.5 {
		t.Fatalf("page=%+v", page)
	}
	links := strings.Join(resp.Result().Header.Values("Link"), "\n")
	if !strings.Contains(links, `rel="next"`) || !strings.Contains(links, `</api/v1/tonnage>; rel="tonnage"`) {
		t.Fatalf("links=%q", links)
	}
}

func TestLayerInInputUnits(t *testing.T) {
	api, svc := newTestAPI(t, nil)
	svc.AddStation("0", "2")
	svc.AddStation("10", "2")

	resp := api.Post("/api/v1/layers", map[string]any{"name": "Deck", "recipe": "AC 11", "density": 2.3, "thickness": 4})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	l := decode[survey.Layer](t, resp.Body)
	if l.InstalledWeight != 92 || l.Density != 2300 {
		t.Fatalf("layer=%+v", l)
	}

	resp = api.Put("/api/v1/layers/"+l.ID, map[string]any{"name": "Deck neu", "recipe": "AC 11", "density": 2.3, "thickness": 8})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if got, _ := svc.Layer(l.ID); got.Name != "Deck neu" || got.InstalledWeight != 184 {
		t.Fatalf("layer=%+v", got)
	}

	resp = api.Get("/api/v1/tonnage")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	r := decode[survey.Report](t, resp.Body)
	if diff := cmp.Diff(svc.Tonnage(), r); diff != "" {
		t.Fatalf("tonnage mismatch (-svc +api):\n%s", diff)
	}

	resp = api.Delete("/api/v1/layers/" + l.ID)
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if n := len(svc.Layers()); n != 0 {
		t.Fatalf("layers=%d, want 0", n)
	}
}

func TestSectionToggle(t *testing.T) {
	api, svc := newTestAPI(t, nil)
	svc.Seed()

	resp := api.Get("/api/v1/sections")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	layers := decode[[]LayerSections](t, resp.Body)
	if len(layers) != 3 || len(layers[0].Sections) != 4 {
		t.Fatalf("sections=%+v", layers)
	}

	before := svc.Tonnage().Total
	sec := layers[0].Sections[0]
	resp = api.Put(fmt.Sprintf("/api/v1/sections/%s/%s", layers[0].LayerID, sec.Key), map[string]any{"active": false})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if svc.Activation()[layers[0].LayerID][sec.Key] {
		t.Fatal("section still active")
	}
	if after := svc.Tonnage().Total; after >= before {
		t.Fatalf("total=%v, want less than %v", after, before)
	}

	resp = api.Put("/api/v1/sections/missing/"+sec.Key, map[string]any{"active": true})
	expect(t, resp.Code, http.StatusNotFound, resp.Body.String())
}

func TestReportDownload(t *testing.T) {
	api, svc := newTestAPI(t, nil)
	svc.Seed()

	resp := api.Get("/api/v1/report?format=json")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type=%q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="Teststrecke.json"` {
		t.Fatalf("content disposition=%q", cd)
	}

	resp = api.Get("/api/v1/report?format=xlsx")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if !strings.HasPrefix(resp.Body.String(), "PK") {
		t.Fatal("xlsx is not a zip archive")
	}

	resp = api.Get("/api/v1/report?format=pdf")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if !strings.HasPrefix(resp.Body.String(), "%PDF") {
		t.Fatal("pdf has no header")
	}

	resp = api.Get("/api/v1/report?format=docx")
	expect(t, resp.Code, http.StatusUnprocessableEntity, resp.Body.String())
}

func TestPOIs(t *testing.T) {
	api, svc := newTestAPI(t, nil)

	resp := api.Post("/api/v1/pois/place", map[string]any{"x": 300, "mapWidth": 600, "type": "Brücke"})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	p := decode[survey.POI](t, resp.Body)
	if p.Station != 30 || p.Name != "🌉 Brücke" {
		t.Fatalf("poi=%+v", p)
	}

	resp = api.Post("/api/v1/pois", map[string]any{"station": 5, "name": "Tor"})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if pois := svc.POIs(); len(pois) != 2 || pois[0].Name != "Tor" || pois[0].Type != survey.POIStart {
		t.Fatalf("pois=%+v", pois)
	}

	resp = api.Put("/api/v1/pois/"+p.ID, map[string]any{"station": 2, "type": "Ende"})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if got, _ := svc.POI(p.ID); got.Station != 2 || got.Name != "🏁 Ende" {
		t.Fatalf("poi=%+v", got)
	}

	resp = api.Delete("/api/v1/pois/" + p.ID)
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	resp = api.Delete("/api/v1/pois/" + p.ID)
	expect(t, resp.Code, http.StatusNotFound, resp.Body.String())
}

func TestGeofencesAndMap(t *testing.T) {
	api, svc := newTestAPI(t, nil)
	svc.AddPOI("30", "", survey.POIBridge)

	resp := api.Post("/api/v1/geofences", map[string]any{"path": [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	g := decode[GeofenceBody](t, resp.Body)
	if g.Name != "Geofence 1" || g.Area != 100 || len(g.Path) != 5 {
		t.Fatalf("geofence=%+v", g)
	}

	resp = api.Post("/api/v1/geofences", map[string]any{"path": [][2]float64{{0, 0}, {5, 5}}})
	expect(t, resp.Code, http.StatusUnprocessableEntity, resp.Body.String())

	resp = api.Get("/api/v1/map")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if ct := resp.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Fatalf("content type=%q", ct)
	}
	fc := decode[struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}](t, resp.Body)
	if fc.Type != "FeatureCollection" || len(fc.Features) != 2 || fc.Features[0].Properties["kind"] != "poi" {
		t.Fatalf("map=%+v", fc)
	}

	resp = api.Delete("/api/v1/geofences")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if n := len(svc.Geofences()); n != 0 {
		t.Fatalf("geofences=%d after clear", n)
	}
}

func TestProjectSaveAndSnapshot(t *testing.T) {
	api, svc := newTestAPI(t, service.NewFileStore(t.TempDir()))
	svc.Seed()

	resp := api.Get("/api/v1/project/snapshot")
	expect(t, resp.Code, http.StatusNotFound, resp.Body.String())

	resp = api.Put("/api/v1/project", map[string]any{"name": "B 27"})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	if p := decode[ProjectBody](t, resp.Body); p.Name != "B 27" || p.Stations != 5 || p.DensityUnit != "g/cm³" || p.Backend != "file" {
		t.Fatalf("project=%+v", p)
	}

	resp = api.Post("/api/v1/project/save")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())

	resp = api.Get("/api/v1/project/snapshot")
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	snap := decode[survey.Snapshot](t, resp.Body)
	if snap.Name != "B 27" || len(snap.Stations) != 5 || len(snap.Layers) != 3 {
		t.Fatalf("snapshot=%+v", snap)
	}

	resp = api.Get("/api/v1/project/history")
	expect(t, resp.Code, http.StatusNotImplemented, resp.Body.String())
}

func TestProjectWithoutStore(t *testing.T) {
	api, _ := newTestAPI(t, nil)

	resp := api.Post("/api/v1/project/save")
	expect(t, resp.Code, http.StatusServiceUnavailable, resp.Body.String())
	resp = api.Get("/api/v1/tables")
	expect(t, resp.Code, http.StatusServiceUnavailable, resp.Body.String())
}

func TestDisplay(t *testing.T) {
	api, svc := newTestAPI(t, nil)

	resp := api.Put("/api/v1/display", map[string]any{
		"zoom": 0.9, "showMeasurement": true, "showLayers": false, "showPoi": true, "fixed": true,
	})
	expect(t, resp.Code, http.StatusOK, resp.Body.String())
	want := survey.Display{Zoom: 0.9, ShowMeasurement: true, ShowPOI: true, Fixed: true}
	if diff := cmp.Diff(want, svc.Display()); diff != "" {
		t.Fatalf("display mismatch (-want +got):\n%s", diff)
	}

	resp = api.Put("/api/v1/display", map[string]any{
		"zoom": 3, "showMeasurement": true, "showLayers": true, "showPoi": true, "fixed": false,
	})
	expect(t, resp.Code, http.StatusUnprocessableEntity, resp.Body.String())
}

func TestAPIError(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{fmt.Errorf("station %q: %w", "x", survey.ErrNotFound), http.StatusNotFound},
		{service.ErrNoSnapshot, http.StatusNotFound},
		{survey.ErrUnknownField, http.StatusBadRequest},
		{fmt.Errorf("%w: width", survey.ErrValidation), http.StatusUnprocessableEntity},
		{survey.ErrParse, http.StatusUnprocessableEntity},
		{service.ErrNoStore, http.StatusServiceUnavailable},
		{service.ErrNoHistory, http.StatusNotImplemented},
		{errors.New("disk full"), http.StatusInternalServerError},
	} {
		var se huma.StatusError
		if !errors.As(apiError(tc.err), &se) || se.GetStatus() != tc.want {
			t.Fatalf("apiError(%v)=%v, want %d", tc.err, apiError(tc.err), tc.want)
		}
	}
	if apiError(nil) != nil {
		t.Fatal("apiError(nil) != nil")
	}
}
