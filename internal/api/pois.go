package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/survey"
)

var poiActions = []humastar.ActionDef{
	{Rel: "edit", Pattern: "/api/v1/pois/%s", Method: "PUT", Title: "Edit point of interest"},
	{Rel: "delete", Pattern: "/api/v1/pois/%s", Method: "DELETE", Title: "Delete point of interest"},
}

type POIBody struct {
	survey.POI
}

func (b POIBody) Actions() []humastar.Action {
	return humastar.ActionsFor(b.ID, poiActions)
}

type POIOutput struct {
	Body POIBody
}

type POIsOutput struct {
	Body []survey.POI
}

// POIFields are the editable values of a point of interest. An empty name
// is replaced by the type's symbol and label.
type POIFields struct {
	Station float64 `json:"station" minimum:"0" doc:"Position along the route in meters" example:"12.5"`
	Name    string  `json:"name,omitempty" doc:"Label"`
	Type    string  `json:"type,omitempty" doc:"Marker type, Beginn when empty" example:"Brücke"`
}

// PlaceFields place a point of interest by a click on the map backdrop.
type PlaceFields struct {
	X        float64 `json:"x" minimum:"0" doc:"Click position in map pixels" example:"300"`
	MapWidth float64 `json:"mapWidth" exclusiveMinimum:"0" doc:"Rendered map width in pixels" example:"600"`
	Name     string  `json:"name,omitempty" doc:"Label"`
	Type     string  `json:"type,omitempty" doc:"Marker type, Beginn when empty"`
}

// RegisterPOIs registers point of interest routes.
func (h *APIHandler) RegisterPOIs(api huma.API) {
	tags := huma.OperationTags("pois")
	huma.Get(api, "/api/v1/pois", h.GetPOIs, tags)
	huma.Post(api, "/api/v1/pois", h.CreatePOI, tags)
	huma.Post(api, "/api/v1/pois/place", h.PlacePOI, tags)
	huma.Get(api, "/api/v1/pois/{id}", h.GetPOI, tags)
	huma.Put(api, "/api/v1/pois/{id}", h.PutPOI, tags)
	huma.Delete(api, "/api/v1/pois/{id}", h.DeletePOI, tags)
}

func (h *APIHandler) GetPOIs(ctx context.Context, input *struct{}) (*POIsOutput, error) {
	return &POIsOutput{Body: h.svc.POIs()}, nil
}

func (h *APIHandler) CreatePOI(ctx context.Context, input *struct{ Body POIFields }) (*POIOutput, error) {
	p, err := h.svc.AddPOI(ftoa(input.Body.Station), input.Body.Name, survey.POIType(input.Body.Type))
	if err != nil {
		return nil, apiError(err)
	}
	return &POIOutput{Body: POIBody{p}}, nil
}

func (h *APIHandler) PlacePOI(ctx context.Context, input *struct{ Body PlaceFields }) (*POIOutput, error) {
	p, err := h.svc.PlacePOI(input.Body.X, input.Body.MapWidth, input.Body.Name, survey.POIType(input.Body.Type))
	if err != nil {
		return nil, apiError(err)
	}
	return &POIOutput{Body: POIBody{p}}, nil
}

func (h *APIHandler) GetPOI(ctx context.Context, input *IDInput) (*POIOutput, error) {
	p, ok := h.svc.POI(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("point of interest not found")
	}
	return &POIOutput{Body: POIBody{p}}, nil
}

func (h *APIHandler) PutPOI(ctx context.Context, input *struct {
	IDInput
	Body POIFields
}) (*POIOutput, error) {
	typ := survey.POIType(input.Body.Type)
	if typ == "" {
		typ = survey.POIStart
	}
	name := input.Body.Name
	if strings.TrimSpace(name) == "" {
		name = typ.DefaultName()
	}
	var (
		p   survey.POI
		err error
	)
	for _, f := range [][2]string{
		{survey.FieldType, string(typ)},
		{survey.FieldName, name},
		{survey.FieldStation, ftoa(input.Body.Station)},
	} {
		if p, err = h.svc.UpdatePOI(input.ID, f[0], f[1]); err != nil {
			return nil, apiError(err)
		}
	}
	return &POIOutput{Body: POIBody{p}}, nil
}

func (h *APIHandler) DeletePOI(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := h.svc.DeletePOI(input.ID); err != nil {
		return nil, apiError(err)
	}
	return &MessageOutput{Body: MessageBody{Message: "Point of interest deleted"}}, nil
}
