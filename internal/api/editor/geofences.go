package editor

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/service"
)

// AddGeofence stores the path drawn on the map. The fencepath signal holds
// the pointer positions as [x, y] pairs.
func (h *Handler) AddGeofence(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	var raw [][]float64
	if err := signals.Decode("fencepath", &raw); err != nil {
		return nil, huma.Error400BadRequest("Invalid fence path: " + err.Error())
	}
	path := make([]orb.Point, 0, len(raw))
	for _, p := range raw {
		if len(p) != 2 {
			return nil, huma.Error400BadRequest(fmt.Sprintf("Invalid fence point %v", p))
		}
		path = append(path, orb.Point{p[0], p[1]})
	}
	return h.Stream(func(sse humastar.SSE) {
		// the drawn path is cleared either way; short paths are discarded
		g, err := h.svc.AddGeofence(signals.String("fencename"), path)
		if err != nil {
			sse.Signals(map[string]any{"fencepath": []any{}, "drawing": false})
			return
		}
		sse.Signals(map[string]any{
			"fencepath": []any{}, "drawing": false, "fencename": "", "error": "",
			"success": g.Name + " gespeichert",
		})
		h.patch(sse, panelsFor(service.ResourceGeofences), false)
	}), nil
}

// DeleteGeofence removes one geofence.
func (h *Handler) DeleteGeofence(ctx context.Context, input *IDInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if err := h.svc.DeleteGeofence(input.ID); err != nil {
			sse.Error(err.Error())
			return
		}
		sse.RemoveElementByID("geofence-" + input.ID)
		h.patch(sse, panelsFor(service.ResourceGeofences), false)
	}), nil
}

// ClearGeofences removes all geofences.
func (h *Handler) ClearGeofences(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		h.svc.ClearGeofences()
		h.patch(sse, panelsFor(service.ResourceGeofences), false)
	}), nil
}
