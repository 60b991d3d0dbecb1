package editor

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
)

// PointerInput is a pointer position on the profile, in SVG pixels.
type PointerInput struct {
	X float64 `query:"x" doc:"Pointer x in profile pixels"`
	Y float64 `query:"y" doc:"Pointer y in profile pixels"`
}

// PointerDownInput is a press on a profile element.
type PointerDownInput struct {
	Target string `query:"target" enum:"bar,action" default:"bar" doc:"Element under the pointer"`
	ID     string `query:"id" required:"true" doc:"Station ID"`
	PointerInput
}

// PointerDown starts dragging a station's width bar. A press on a delete
// control is consumed without starting a drag.
func (h *Handler) PointerDown(ctx context.Context, input *PointerDownInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		err := h.svc.PointerDown(survey.Target(input.Target), input.ID, input.X, input.Y)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		_, dragging := h.svc.Dragging()
		sse.Signals(map[string]any{"dragging": dragging})
		if dragging {
			h.patch(sse, panelProfile|panelStations, true)
		}
	}), nil
}

// PointerMove moves or resizes the dragged station.
func (h *Handler) PointerMove(ctx context.Context, input *PointerInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		_, ok, err := h.svc.PointerMove(input.X, input.Y)
		switch {
		case errors.Is(err, survey.ErrNotFound):
			// the station was deleted mid-drag; the drag is over
			sse.Signals(map[string]any{"dragging": false})
			h.patch(sse, panelsFor(service.ResourceStations), true)
		case err != nil:
			sse.Error(err.Error())
		case ok:
			h.patch(sse, panelsFor(service.ResourceStations), true)
		}
	}), nil
}

// PointerUp ends a drag.
func (h *Handler) PointerUp(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		_, was := h.svc.PointerUp()
		sse.Signals(map[string]any{"dragging": false})
		if was {
			h.patch(sse, panelsFor(service.ResourceStations), false)
		}
	}), nil
}
