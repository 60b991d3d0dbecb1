package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/survey"
)

var stationActions = []humastar.ActionDef{
	{Rel: "edit", Pattern: "/api/v1/stations/%s", Method: "PUT", Title: "Edit station"},
	{Rel: "duplicate", Pattern: "/api/v1/stations/%s/duplicate", Method: "POST", Title: "Duplicate station"},
	{Rel: "delete", Pattern: "/api/v1/stations/%s", Method: "DELETE", Title: "Delete station"},
}

// StationBody is a station with its action links.
type StationBody struct {
	survey.Station
}

func (b StationBody) Actions() []humastar.Action {
	return humastar.ActionsFor(b.ID, stationActions)
}

type StationOutput struct {
	Body StationBody
}

type StationsOutput struct {
	Body humastar.PageBody[survey.Station]
}

// StationFields are the editable values of a station.
type StationFields struct {
	Station float64 `json:"station" minimum:"0" doc:"Position along the route in meters" example:"10.5"`
	Width   float64 `json:"width" exclusiveMinimum:"0" doc:"Cross-section width in meters" example:"3.2"`
}

type ListStationsInput struct {
	humastar.PageInput
}

// RegisterStations registers station CRUD routes.
func (h *APIHandler) RegisterStations(api huma.API) {
	tags := huma.OperationTags("stations")
	huma.Get(api, "/api/v1/stations", h.ListStations, tags)
	huma.Post(api, "/api/v1/stations", h.CreateStation, tags)
	huma.Get(api, "/api/v1/stations/{id}", h.GetStation, tags)
	huma.Put(api, "/api/v1/stations/{id}", h.PutStation, tags)
	huma.Delete(api, "/api/v1/stations/{id}", h.DeleteStation, tags)
	huma.Post(api, "/api/v1/stations/{id}/duplicate", h.DuplicateStation, tags)
}

func (h *APIHandler) ListStations(ctx context.Context, input *ListStationsInput) (*StationsOutput, error) {
	return &StationsOutput{Body: humastar.Paginate(h.svc.Stations(), input.PageInput)}, nil
}

func (h *APIHandler) CreateStation(ctx context.Context, input *struct{ Body StationFields }) (*StationOutput, error) {
	st, err := h.svc.AddStation(ftoa(input.Body.Station), ftoa(input.Body.Width))
	if err != nil {
		return nil, apiError(err)
	}
	return &StationOutput{Body: StationBody{st}}, nil
}

func (h *APIHandler) GetStation(ctx context.Context, input *IDInput) (*StationOutput, error) {
	st, ok := h.svc.Station(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("station not found")
	}
	return &StationOutput{Body: StationBody{st}}, nil
}

func (h *APIHandler) PutStation(ctx context.Context, input *struct {
	IDInput
	Body StationFields
}) (*StationOutput, error) {
	if _, err := h.svc.UpdateStation(input.ID, survey.FieldWidth, ftoa(input.Body.Width)); err != nil {
		return nil, apiError(err)
	}
	st, err := h.svc.UpdateStation(input.ID, survey.FieldStation, ftoa(input.Body.Station))
	if err != nil {
		return nil, apiError(err)
	}
	return &StationOutput{Body: StationBody{st}}, nil
}

func (h *APIHandler) DeleteStation(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := h.svc.DeleteStation(input.ID); err != nil {
		return nil, apiError(err)
	}
	return &MessageOutput{Body: MessageBody{Message: "Station deleted"}}, nil
}

func (h *APIHandler) DuplicateStation(ctx context.Context, input *IDInput) (*StationOutput, error) {
	st, err := h.svc.DuplicateStation(input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &StationOutput{Body: StationBody{st}}, nil
}
