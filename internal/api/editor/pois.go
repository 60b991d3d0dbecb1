package editor

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
)

// PlaceInput is a click on the map backdrop.
type PlaceInput struct {
	X       float64 `query:"x" doc:"Click position in map pixels"`
	Width   float64 `query:"width" doc:"Rendered map width in pixels"`
	RawBody []byte
}

// AddPOI adds a point of interest from the POI form signals.
func (h *Handler) AddPOI(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	return h.Stream(func(sse humastar.SSE) {
		p, err := h.svc.AddPOI(signals.Text("poistation"), signals.String("poiname"), survey.POIType(signals.String("poitype")))
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Signals(map[string]any{
			"poistation": "", "poiname": "", "error": "",
			"success": fmt.Sprintf("%s bei %g m hinzugefügt", p.Name, p.Station),
		})
		h.patch(sse, panelsFor(service.ResourcePOIs), false)
	}), nil
}

// PlacePOI adds a point of interest where the map was clicked.
func (h *Handler) PlacePOI(ctx context.Context, input *PlaceInput) (*huma.StreamResponse, error) {
	signals, err := humastar.ParseSignals(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid request data: " + err.Error())
	}
	return h.Stream(func(sse humastar.SSE) {
		p, err := h.svc.PlacePOI(input.X, input.Width, signals.String("poiname"), survey.POIType(signals.String("poitype")))
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Success(fmt.Sprintf("%s bei %.2f m gesetzt", p.Name, p.Station))
		h.patch(sse, panelsFor(service.ResourcePOIs), false)
	}), nil
}

// UpdatePOI edits one field of a point of interest.
func (h *Handler) UpdatePOI(ctx context.Context, input *FieldInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if _, err := h.svc.UpdatePOI(input.ID, input.Field, input.Value); err != nil {
			sse.Error(err.Error())
			h.patch(sse, panelPOIs, false)
			return
		}
		h.patch(sse, panelsFor(service.ResourcePOIs), false)
	}), nil
}

// DeletePOI removes a point of interest.
func (h *Handler) DeletePOI(ctx context.Context, input *IDInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if err := h.svc.DeletePOI(input.ID); err != nil {
			sse.Error(err.Error())
			return
		}
		sse.RemoveElementByID("poi-" + input.ID)
		h.patch(sse, panelsFor(service.ResourcePOIs), false)
	}), nil
}
