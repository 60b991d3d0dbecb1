package editor

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/metrics"
	"github.com/joeblew999/plat-road/internal/service"
)

// Events renders the page state, then streams project changes to the
// Datastar UI until the client goes away.
func (h *Handler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		bus := h.svc.Bus()
		ch := bus.Subscribe()
		metrics.SetEventSubscribers(bus.Subscribers())
		defer func() {
			bus.Unsubscribe(ch)
			metrics.SetEventSubscribers(bus.Subscribers())
		}()

		h.patch(sse, panelAll, false)
		sse.Signals(h.stateSignals())

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				h.patch(sse, panelsFor(ev.Resource), ev.Action == service.ActionMoved)
				if ev.Resource == service.ResourceProject || ev.Resource == service.ResourceDisplay {
					sse.Signals(h.stateSignals())
				}
				sse.DispatchCustomEvent("project-changed", map[string]any{
					"resource": ev.Resource,
					"action":   ev.Action,
					"id":       ev.ID,
					"seq":      ev.Seq,
				})
			}
		}
	}), nil
}
