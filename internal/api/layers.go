package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/survey"
)

var layerActions = []humastar.ActionDef{
	{Rel: "edit", Pattern: "/api/v1/layers/%s", Method: "PUT", Title: "Edit layer"},
	{Rel: "delete", Pattern: "/api/v1/layers/%s", Method: "DELETE", Title: "Delete layer"},
}

// LayerBody is a layer with its action links. Values are SI.
type LayerBody struct {
	survey.Layer
}

func (b LayerBody) Actions() []humastar.Action {
	return humastar.ActionsFor(b.ID, layerActions)
}

type LayerOutput struct {
	Body LayerBody
}

type LayersOutput struct {
	Body []survey.Layer
}

// LayerFields are the editable values of a layer. Density and thickness
// are in the project's input units (see GET /api/v1/project).
type LayerFields struct {
	Name      string  `json:"name" minLength:"1" doc:"Display name" example:"Asphaltdeckschicht"`
	Recipe    string  `json:"recipe" minLength:"1" doc:"Material recipe code" example:"AC 11 D S"`
	Density   float64 `json:"density" exclusiveMinimum:"0" doc:"Density in input units" example:"2.3"`
	Thickness float64 `json:"thickness" exclusiveMinimum:"0" doc:"Thickness in input units" example:"4"`
}

// RegisterLayers registers layer CRUD routes.
func (h *APIHandler) RegisterLayers(api huma.API) {
	tags := huma.OperationTags("layers")
	huma.Get(api, "/api/v1/layers", h.GetLayers, tags)
	huma.Post(api, "/api/v1/layers", h.CreateLayer, tags)
	huma.Get(api, "/api/v1/layers/{id}", h.GetLayer, tags)
	huma.Put(api, "/api/v1/layers/{id}", h.PutLayer, tags)
	huma.Delete(api, "/api/v1/layers/{id}", h.DeleteLayer, tags)
}

func (h *APIHandler) GetLayers(ctx context.Context, input *struct{}) (*LayersOutput, error) {
	return &LayersOutput{Body: h.svc.Layers()}, nil
}

func (h *APIHandler) CreateLayer(ctx context.Context, input *struct{ Body LayerFields }) (*LayerOutput, error) {
	l, err := h.svc.AddLayer(survey.LayerInput{
		Name:      input.Body.Name,
		Recipe:    input.Body.Recipe,
		Density:   ftoa(input.Body.Density),
		Thickness: ftoa(input.Body.Thickness),
		Units:     h.svc.Units(),
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &LayerOutput{Body: LayerBody{l}}, nil
}

func (h *APIHandler) GetLayer(ctx context.Context, input *IDInput) (*LayerOutput, error) {
	l, ok := h.svc.Layer(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("layer not found")
	}
	return &LayerOutput{Body: LayerBody{l}}, nil
}

func (h *APIHandler) PutLayer(ctx context.Context, input *struct {
	IDInput
	Body LayerFields
}) (*LayerOutput, error) {
	var (
		l   survey.Layer
		err error
	)
	for _, f := range [][2]string{
		{survey.FieldName, input.Body.Name},
		{survey.FieldRecipe, input.Body.Recipe},
		{survey.FieldDensity, ftoa(input.Body.Density)},
		{survey.FieldThickness, ftoa(input.Body.Thickness)},
	} {
		if l, err = h.svc.UpdateLayer(input.ID, f[0], f[1]); err != nil {
			return nil, apiError(err)
		}
	}
	return &LayerOutput{Body: LayerBody{l}}, nil
}

func (h *APIHandler) DeleteLayer(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := h.svc.DeleteLayer(input.ID); err != nil {
		return nil, apiError(err)
	}
	return &MessageOutput{Body: MessageBody{Message: "Layer deleted"}}, nil
}
