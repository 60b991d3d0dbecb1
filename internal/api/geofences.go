package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/survey"
)

var geofenceActions = []humastar.ActionDef{
	{Rel: "delete", Pattern: "/api/v1/geofences/%s", Method: "DELETE", Title: "Delete geofence"},
}

// GeofenceBody is a geofence with its area and action links.
type GeofenceBody struct {
	survey.Geofence
	Area float64 `json:"area" doc:"Enclosed area in square map pixels"`
}

func (b GeofenceBody) Actions() []humastar.Action {
	return humastar.ActionsFor(b.ID, geofenceActions)
}

type GeofenceOutput struct {
	Body GeofenceBody
}

type GeofencesOutput struct {
	Body []GeofenceBody
}

// GeofenceFields is a freehand path. Paths with fewer than three points are
// rejected.
type GeofenceFields struct {
	Name string       `json:"name,omitempty" doc:"Label, Geofence N when empty"`
	Path [][2]float64 `json:"path" doc:"Outline as [x, y] map coordinates" minItems:"3"`
}

// MapInput sizes the map backdrop the GeoJSON coordinates refer to.
type MapInput struct {
	Width  float64 `query:"width" default:"600" exclusiveMinimum:"0" doc:"Map width in pixels"`
	Height float64 `query:"height" default:"300" exclusiveMinimum:"0" doc:"Map height in pixels"`
}

// GeoJSONOutput is a FeatureCollection document.
type GeoJSONOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// RegisterGeofences registers geofence and map routes.
func (h *APIHandler) RegisterGeofences(api huma.API) {
	tags := huma.OperationTags("geofences")
	huma.Get(api, "/api/v1/geofences", h.GetGeofences, tags)
	huma.Post(api, "/api/v1/geofences", h.CreateGeofence, tags)
	huma.Delete(api, "/api/v1/geofences", h.ClearGeofences, tags)
	huma.Delete(api, "/api/v1/geofences/{id}", h.DeleteGeofence, tags)
	huma.Get(api, "/api/v1/map", h.GetMap, huma.OperationTags("map"))
}

func (h *APIHandler) GetGeofences(ctx context.Context, input *struct{}) (*GeofencesOutput, error) {
	fences := h.svc.Geofences()
	out := &GeofencesOutput{Body: make([]GeofenceBody, 0, len(fences))}
	for _, g := range fences {
		out.Body = append(out.Body, GeofenceBody{Geofence: g, Area: g.Area()})
	}
	return out, nil
}

func (h *APIHandler) CreateGeofence(ctx context.Context, input *struct{ Body GeofenceFields }) (*GeofenceOutput, error) {
	path := make([]orb.Point, len(input.Body.Path))
	for i, p := range input.Body.Path {
		path[i] = orb.Point(p)
	}
	g, err := h.svc.AddGeofence(input.Body.Name, path)
	if err != nil {
		return nil, apiError(err)
	}
	return &GeofenceOutput{Body: GeofenceBody{Geofence: g, Area: g.Area()}}, nil
}

func (h *APIHandler) DeleteGeofence(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := h.svc.DeleteGeofence(input.ID); err != nil {
		return nil, apiError(err)
	}
	return &MessageOutput{Body: MessageBody{Message: "Geofence deleted"}}, nil
}

func (h *APIHandler) ClearGeofences(ctx context.Context, input *struct{}) (*MessageOutput, error) {
	h.svc.ClearGeofences()
	return &MessageOutput{Body: MessageBody{Message: "Geofences cleared"}}, nil
}

// GetMap exports points of interest and geofences as GeoJSON in map
// pixel coordinates.
func (h *APIHandler) GetMap(ctx context.Context, input *MapInput) (*GeoJSONOutput, error) {
	data, err := h.svc.MapFeatures(input.Width, input.Height).MarshalJSON()
	if err != nil {
		return nil, huma.Error500InternalServerError("encode map", err)
	}
	return &GeoJSONOutput{ContentType: "application/geo+json", Body: data}, nil
}
