package editor

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
)

// RenameProject applies the project signal.
func (h *Handler) RenameProject(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	return h.Stream(func(sse humastar.SSE) {
		if err := h.svc.Rename(signals.String("project")); err != nil {
			sse.Signals(map[string]any{"project": h.svc.Name(), "error": err.Error()})
			return
		}
		sse.Success("Projekt umbenannt")
	}), nil
}

// SaveProject writes a snapshot to the configured store.
func (h *Handler) SaveProject(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		snap, err := h.svc.Save(ctx)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Success(fmt.Sprintf("Projekt „%s“ gespeichert (%d Stationen, %d Schichten)",
			snap.Name, len(snap.Stations), len(snap.Layers)))
	}), nil
}
