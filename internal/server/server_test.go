package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, configYAML string) *Server {
	t.Helper()
	dir := t.TempDir()
	cfgPath := ""
	if configYAML != "" {
		cfgPath = filepath.Join(dir, "road.yaml")
		if err := os.WriteFile(cfgPath, []byte(configYAML), 0644); err != nil {
			t.Fatal(err)
		}
	}
	srv, err := New(Config{
		Host:       "localhost",
		Port:       "8086",
		DataDir:    dir,
		ConfigPath: cfgPath,
		Store:      StoreFile,
		Logger:     log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func get(t *testing.T, h http.Handler, target string) (int, http.Header, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec.Code, rec.Header(), rec.Body.String()
}

func TestServerRoutes(t *testing.T) {
	srv := newTestServer(t, "projectName: B 27\nseedSampleData: true\n")

	for _, tc := range []struct {
		path string
		want string
	}{
		{"/", `"project":"B 27"`},
		{"/health", `"status":"ok"`},
		{"/api/v1/stations", `"total":5`},
		{"/editor", "<title>B 27</title>"},
		{"/metrics", "road_event_subscribers"},
	} {
		code, _, body := get(t, srv, tc.path)
		if code != http.StatusOK {
			t.Fatalf("GET %s: status=%d body=%s", tc.path, code, body)
		}
		if !strings.Contains(body, tc.want) {
			t.Fatalf("GET %s: body missing %s", tc.path, tc.want)
		}
	}

	if code, _, _ := get(t, srv, "/nope"); code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", code)
	}
}

func TestServerLinksSkipEditor(t *testing.T) {
	srv := newTestServer(t, "")

	_, header, _ := get(t, srv, "/health")
	links := strings.Join(header.Values("Link"), "\n")
	if !strings.Contains(links, `</api/v1/tonnage>; rel="tonnage"`) {
		t.Fatalf("health links %q", links)
	}
	if strings.Contains(links, "/api/v1/editor") {
		t.Fatalf("editor endpoints linked: %q", links)
	}
}

func TestServerOpenAPI(t *testing.T) {
	srv := newTestServer(t, "")

	paths := srv.OpenAPI().Paths
	for _, p := range []string{"/api/v1/stations/{id}", "/api/v1/report", "/api/v1/editor/drag/move"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("OpenAPI missing %s", p)
		}
	}
}

func TestServerRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "road.yaml")
	os.WriteFile(path, []byte("units: furlongs\n"), 0644)

	if _, err := New(Config{DataDir: dir, ConfigPath: path, Logger: log.New(io.Discard, "", 0)}); err == nil {
		t.Fatal("bad units accepted")
	}
	if _, err := New(Config{DataDir: dir, Store: "s3", Logger: log.New(io.Discard, "", 0)}); err == nil {
		t.Fatal("unknown store accepted")
	}
}
