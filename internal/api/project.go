package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/api/editor"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
)

// ProjectBody summarizes the open project.
type ProjectBody struct {
	Name          string  `json:"name" doc:"Project name" example:"Musterstraße"`
	Units         string  `json:"units" doc:"Layer input units" example:"g/cm3,cm"`
	DensityUnit   string  `json:"densityUnit" example:"g/cm³"`
	ThicknessUnit string  `json:"thicknessUnit" example:"cm"`
	DefaultActive bool    `json:"defaultActive" doc:"Whether new sections start active"`
	MapRange      float64 `json:"mapRange" doc:"Route length across the map backdrop in meters"`
	Stations      int     `json:"stations"`
	Layers        int     `json:"layers"`
	POIs          int     `json:"pois"`
	Geofences     int     `json:"geofences"`
	Backend       string  `json:"backend" doc:"Snapshot store" example:"duckdb"`
}

type ProjectOutput struct {
	Body ProjectBody
}

type RenameInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" doc:"New project name"`
	}
}

type SnapshotOutput struct {
	Body survey.Snapshot
}

type HistoryInput struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"500" doc:"Number of versions"`
}

type HistoryOutput struct {
	Body []service.SnapshotRecord
}

type DisplayOutput struct {
	Body survey.Display
}

type DisplayInput struct {
	Body survey.Display
}

// RegisterProject registers project, snapshot and display routes.
func (h *APIHandler) RegisterProject(api huma.API) {
	tags := huma.OperationTags("project")
	huma.Get(api, "/api/v1/project", h.GetProject, tags)
	huma.Put(api, "/api/v1/project", h.RenameProject, tags)
	huma.Post(api, "/api/v1/project/save", h.SaveProject, tags)
	huma.Get(api, "/api/v1/project/snapshot", h.GetSnapshot, tags)
	huma.Get(api, "/api/v1/project/history", h.GetHistory, tags)

	huma.Get(api, "/api/v1/display", h.GetDisplay, huma.OperationTags("display"))
	huma.Put(api, "/api/v1/display", h.PutDisplay, huma.OperationTags("display"))
}

func (h *APIHandler) project() ProjectBody {
	settings := h.svc.Settings()
	density, thickness := editor.UnitLabels(settings.Units)
	return ProjectBody{
		Name:          h.svc.Name(),
		Units:         string(settings.Units),
		DensityUnit:   density,
		ThicknessUnit: thickness,
		DefaultActive: settings.DefaultActive,
		MapRange:      settings.MapRange,
		Stations:      len(h.svc.Stations()),
		Layers:        len(h.svc.Layers()),
		POIs:          len(h.svc.POIs()),
		Geofences:     len(h.svc.Geofences()),
		Backend:       h.svc.Backend(),
	}
}

func (h *APIHandler) GetProject(ctx context.Context, input *struct{}) (*ProjectOutput, error) {
	return &ProjectOutput{Body: h.project()}, nil
}

func (h *APIHandler) RenameProject(ctx context.Context, input *RenameInput) (*ProjectOutput, error) {
	if err := h.svc.Rename(input.Body.Name); err != nil {
		return nil, apiError(err)
	}
	return &ProjectOutput{Body: h.project()}, nil
}

// SaveProject writes the snapshot to the configured store.
func (h *APIHandler) SaveProject(ctx context.Context, input *struct{}) (*SnapshotOutput, error) {
	snap, err := h.svc.Save(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &SnapshotOutput{Body: snap}, nil
}

// GetSnapshot returns the last saved snapshot.
func (h *APIHandler) GetSnapshot(ctx context.Context, input *struct{}) (*SnapshotOutput, error) {
	snap, err := h.svc.Load(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &SnapshotOutput{Body: snap}, nil
}

func (h *APIHandler) GetHistory(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	records, err := h.svc.History(ctx, input.Limit)
	if err != nil {
		return nil, apiError(err)
	}
	if records == nil {
		records = []service.SnapshotRecord{}
	}
	return &HistoryOutput{Body: records}, nil
}

func (h *APIHandler) GetDisplay(ctx context.Context, input *struct{}) (*DisplayOutput, error) {
	return &DisplayOutput{Body: h.svc.Display()}, nil
}

// PutDisplay replaces the view settings. The zoom is clamped to its limits.
func (h *APIHandler) PutDisplay(ctx context.Context, input *DisplayInput) (*DisplayOutput, error) {
	d := h.svc.UpdateDisplay(func(d *survey.Display) { *d = input.Body })
	return &DisplayOutput{Body: d}, nil
}
