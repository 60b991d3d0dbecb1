package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/joeblew999/plat-road/internal/api"
	"github.com/joeblew999/plat-road/internal/api/editor"
	"github.com/joeblew999/plat-road/internal/config"
	"github.com/joeblew999/plat-road/internal/db"
	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/metrics"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/templates"
)

// Snapshot store backends.
const (
	StoreFile   = "file"
	StoreDuckDB = "duckdb"
	StoreNone   = "none"
)

// Config holds the server configuration.
type Config struct {
	Host       string
	Port       string
	DataDir    string
	ConfigPath string // survey settings YAML, optional
	Store      string // file, duckdb or none
	WebDir     string // overrides the embedded fragment templates when set
	Logger     *log.Logger
}

// Server is the road HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	links    humastar.Links
	db       *sql.DB
	svc      *service.ProjectService
	renderer *templates.Renderer
	logger   *log.Logger
}

// New creates a server around a fresh project.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "road: ", log.LstdFlags)
	}
	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	fragmentsDir := ""
	if cfg.WebDir != "" {
		fragmentsDir = filepath.Join(cfg.WebDir, "templates", "fragments")
	}
	renderer, err := templates.New(fragmentsDir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	if fragmentsDir != "" {
		cfg.Logger.Printf("loaded fragment templates from %s", fragmentsDir)
	}

	s := &Server{
		config:   cfg,
		mux:      http.NewServeMux(),
		links:    humastar.Links{},
		renderer: renderer,
		logger:   cfg.Logger,
	}

	store, err := s.openStore()
	if err != nil {
		return nil, err
	}
	s.svc = service.NewProjectService(service.ProjectOptions{
		Name:     settings.ProjectName,
		Settings: settings.Settings(),
		Store:    store,
		Logger:   cfg.Logger,
	})
	if settings.SeedSampleData {
		if _, err := s.svc.Seed(); err != nil {
			return nil, fmt.Errorf("seed sample data: %w", err)
		}
	}

	humaConfig := huma.DefaultConfig("plat-road API", api.Version)
	humaConfig.Info.Description = "Road construction survey API: stations, pavement layers, section activation and tonnage."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, humastar.LinkTransformer(s.links))
	s.humaAPI = humago.New(s.mux, humaConfig)

	metrics.Init()
	s.routes()
	return s, nil
}

// openStore picks the snapshot store named in the config.
func (s *Server) openStore() (service.SnapshotStore, error) {
	switch s.config.Store {
	case "", StoreFile:
		return service.NewFileStore(s.config.DataDir), nil
	case StoreDuckDB:
		conn, err := db.Get(db.Config{DataDir: s.config.DataDir, DBName: "road"})
		if err != nil {
			return nil, fmt.Errorf("open duckdb: %w", err)
		}
		s.db = conn
		return service.NewDuckDBStore(conn), nil
	case StoreNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown snapshot store %q: want %s, %s or %s", s.config.Store, StoreFile, StoreDuckDB, StoreNone)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return db.Close()
}

// OpenAPI returns the generated OpenAPI document.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// Service returns the project service.
func (s *Server) Service() *service.ProjectService {
	return s.svc
}

func (s *Server) routes() {
	huma.AutoRegister(s.humaAPI, api.NewAPIHandler(s.svc))
	api.NewInfoHandler(s.config.DataDir, s.db != nil, s.svc).RegisterRoutes(s.humaAPI)
	api.NewDBHandler(s.db).RegisterRoutes(s.humaAPI)

	ed := editor.New(s.svc, s.renderer, s.logger)
	ed.RegisterRoutes(s.humaAPI)

	api.AddLinks(s.humaAPI, s.links)

	s.mux.HandleFunc("/editor", ed.ServePage)
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "plat-road",
		"status":  "running",
		"project": s.svc.Name(),
		"editor":  "/editor",
	})
}
