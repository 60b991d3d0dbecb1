package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/service"
)

type InfoHandler struct {
	dataDir string
	dbOK    bool
	svc     *service.ProjectService
}

func NewInfoHandler(dataDir string, dbOK bool, svc *service.ProjectService) *InfoHandler {
	return &InfoHandler{dataDir: dataDir, dbOK: dbOK, svc: svc}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("health"))
}

type InfoBody struct {
	Name     string   `json:"name" doc:"Service name"`
	Version  string   `json:"version" doc:"Service version"`
	DataDir  string   `json:"data_dir" doc:"Data directory path"`
	DB       bool     `json:"db" doc:"Whether the DuckDB store is open"`
	Backend  string   `json:"backend" doc:"Snapshot store" example:"file"`
	Features []string `json:"features" doc:"Available features"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:     "plat-road",
		Version:  Version,
		DataDir:  h.dataDir,
		DB:       h.dbOK,
		Backend:  h.svc.Backend(),
		Features: []string{"stations", "layers", "tonnage", "reports", "geofences", "editor"},
	}}, nil
}
