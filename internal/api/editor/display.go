package editor

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/survey"
)

// UpdateDisplay applies the display signals that are present.
func (h *Handler) UpdateDisplay(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	return h.display(func(d *survey.Display) {
		if signals.Has("zoom") {
			d.Zoom = signals.Float("zoom")
		}
		if signals.Has("showmeasurement") {
			d.ShowMeasurement = signals.Bool("showmeasurement")
		}
		if signals.Has("showlayers") {
			d.ShowLayers = signals.Bool("showlayers")
		}
		if signals.Has("showpoi") {
			d.ShowPOI = signals.Bool("showpoi")
		}
		if signals.Has("fixed") {
			d.Fixed = signals.Bool("fixed")
		}
	}), nil
}

// ZoomIn raises the profile zoom by one step.
func (h *Handler) ZoomIn(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.display((*survey.Display).ZoomIn), nil
}

// ZoomOut lowers the profile zoom by one step.
func (h *Handler) ZoomOut(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.display((*survey.Display).ZoomOut), nil
}

func (h *Handler) display(fn func(d *survey.Display)) *huma.StreamResponse {
	return h.Stream(func(sse humastar.SSE) {
		d := h.svc.UpdateDisplay(fn)
		sse.Signals(map[string]any{
			"zoom":            d.Zoom,
			"showmeasurement": d.ShowMeasurement,
			"showlayers":      d.ShowLayers,
			"showpoi":         d.ShowPOI,
			"fixed":           d.Fixed,
		})
		h.patch(sse, panelProfile, false)
	})
}
