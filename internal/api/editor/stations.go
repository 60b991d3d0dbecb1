package editor

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/service"
)

// IDInput names a resource in the path.
type IDInput struct {
	ID string `path:"id" doc:"Resource ID"`
}

// FieldInput is an inline edit of one field.
type FieldInput struct {
	ID    string `path:"id" doc:"Resource ID"`
	Field string `path:"field" doc:"Field name" example:"station"`
	Value string `query:"value" doc:"New value as entered"`
}

// AddStation adds a station from the station and width signals.
func (h *Handler) AddStation(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	return h.Stream(func(sse humastar.SSE) {
		st, err := h.svc.AddStation(signals.Text("station"), signals.Text("width"))
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Signals(map[string]any{
			"station": "", "width": "", "error": "",
			"success": fmt.Sprintf("Station %g m hinzugefügt", st.Station),
		})
		h.patch(sse, panelsFor(service.ResourceStations), false)
	}), nil
}

// UpdateStation edits the station or width of a station. An invalid value
// leaves the station unchanged and redraws the row with the stored value.
func (h *Handler) UpdateStation(ctx context.Context, input *FieldInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if _, err := h.svc.UpdateStation(input.ID, input.Field, input.Value); err != nil {
			sse.Error(err.Error())
			h.patch(sse, panelStations, false)
			return
		}
		h.patch(sse, panelsFor(service.ResourceStations), false)
	}), nil
}

// DuplicateStation copies a station a few meters further along.
func (h *Handler) DuplicateStation(ctx context.Context, input *IDInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		st, err := h.svc.DuplicateStation(input.ID)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Success(fmt.Sprintf("Station %g m dupliziert", st.Station))
		h.patch(sse, panelsFor(service.ResourceStations), false)
	}), nil
}

// DeleteStation removes a station.
func (h *Handler) DeleteStation(ctx context.Context, input *IDInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		if err := h.svc.DeleteStation(input.ID); err != nil {
			sse.Error(err.Error())
			return
		}
		sse.RemoveElementByID("station-" + input.ID)
		h.patch(sse, panelsFor(service.ResourceStations), false)
	}), nil
}
