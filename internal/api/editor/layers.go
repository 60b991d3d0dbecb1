package editor

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
)

// SectionInput names one cell of the activation matrix.
type SectionInput struct {
	Layer string `path:"layer" doc:"Layer ID"`
	Key   string `path:"key" doc:"Section key"`
}

// AddLayer adds a layer from the layer form signals. Density and
// thickness are taken in the project's input units.
func (h *Handler) AddLayer(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	return h.Stream(func(sse humastar.SSE) {
		l, err := h.svc.AddLayer(survey.LayerInput{
			Name:      signals.String("layername"),
			Recipe:    signals.String("recipe"),
			Density:   signals.Text("density"),
			Thickness: signals.Text("thickness"),
			Units:     h.svc.Units(),
		})
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Signals(map[string]any{
			"layername": "", "recipe": "", "density": "", "thickness": "", "error": "",
			"success": fmt.Sprintf("Schicht „%s“ hinzugefügt", l.Name),
		})
		h.patch(sse, panelsFor(service.ResourceLayers), false)
	}), nil
}

// UpdateLayer edits one field of a layer.
func (h *Handler) UpdateLayer(ctx context.Context, input *FieldInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if _, err := h.svc.UpdateLayer(input.ID, input.Field, input.Value); err != nil {
			sse.Error(err.Error())
			h.patch(sse, panelLayers, false)
			return
		}
		h.patch(sse, panelsFor(service.ResourceLayers), false)
	}), nil
}

// DeleteLayer removes a layer and its activation row.
func (h *Handler) DeleteLayer(ctx context.Context, input *IDInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if err := h.svc.DeleteLayer(input.ID); err != nil {
			sse.Error(err.Error())
			return
		}
		sse.RemoveElementByID("layer-" + input.ID)
		h.patch(sse, panelsFor(service.ResourceLayers), false)
	}), nil
}

// ToggleSection flips whether a layer is built on a section.
func (h *Handler) ToggleSection(ctx context.Context, input *SectionInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if _, err := h.svc.ToggleSection(input.Layer, input.Key); err != nil {
			sse.Error(err.Error())
			return
		}
		h.patch(sse, panelsFor(service.ResourceSections), false)
	}), nil
}
