package api

import (
	"context"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/report"
	"github.com/joeblew999/plat-road/internal/survey"
)

// LayerSections lists the sections of one layer with their activation.
type LayerSections struct {
	LayerID  string                 `json:"layerId" doc:"Layer identifier"`
	Name     string                 `json:"name" doc:"Layer name"`
	Sections []survey.SectionResult `json:"sections"`
}

type SectionsOutput struct {
	Body []LayerSections
}

type SectionInput struct {
	Layer string `path:"layer" doc:"Layer ID"`
	Key   string `path:"key" doc:"Section key"`
	Body  struct {
		Active bool `json:"active" doc:"Whether the section counts toward the tonnage"`
	}
}

type TonnageOutput struct {
	Body survey.Report
}

type ReportInput struct {
	Format string `query:"format" default:"xlsx" enum:"xlsx,pdf,yaml,yml,json" doc:"Export format"`
}

// ReportOutput is a rendered report file.
type ReportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// RegisterTonnage registers section, tonnage and report routes.
func (h *APIHandler) RegisterTonnage(api huma.API) {
	huma.Get(api, "/api/v1/sections", h.GetSections, huma.OperationTags("sections"))
	huma.Put(api, "/api/v1/sections/{layer}/{key}", h.PutSection, huma.OperationTags("sections"))
	huma.Get(api, "/api/v1/tonnage", h.GetTonnage, huma.OperationTags("tonnage"))
	huma.Get(api, "/api/v1/report", h.GetReport, huma.OperationTags("tonnage"))
}

func (h *APIHandler) GetSections(ctx context.Context, input *struct{}) (*SectionsOutput, error) {
	r := h.svc.Tonnage()
	out := &SectionsOutput{Body: make([]LayerSections, 0, len(r.Layers))}
	for _, l := range r.Layers {
		out.Body = append(out.Body, LayerSections{LayerID: l.LayerID, Name: l.Name, Sections: l.Sections})
	}
	return out, nil
}

func (h *APIHandler) PutSection(ctx context.Context, input *SectionInput) (*MessageOutput, error) {
	if err := h.svc.SetSection(input.Layer, input.Key, input.Body.Active); err != nil {
		return nil, apiError(err)
	}
	state := "inactive"
	if input.Body.Active {
		state = "active"
	}
	return &MessageOutput{Body: MessageBody{Message: fmt.Sprintf("Section %s is %s", input.Key, state)}}, nil
}

func (h *APIHandler) GetTonnage(ctx context.Context, input *struct{}) (*TonnageOutput, error) {
	return &TonnageOutput{Body: h.svc.Tonnage()}, nil
}

// GetReport renders the tonnage report of the open project.
func (h *APIHandler) GetReport(ctx context.Context, input *ReportInput) (*ReportOutput, error) {
	f, err := report.ParseFormat(input.Format)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	name := h.svc.Name()
	data, err := report.Build(f, report.New(name, h.svc.Tonnage(), time.Now()))
	if err != nil {
		return nil, huma.Error500InternalServerError("render report", err)
	}
	return &ReportOutput{
		ContentType:        f.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", f.Filename(name)),
		Body:               data,
	}, nil
}
