// Package api defines the Huma REST routes and handlers.
package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
)

// Version is reported by the health and info endpoints.
const Version = "1.0.0"

// Types

type IDInput struct {
	ID string `path:"id" doc:"Resource ID"`
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type MessageOutput struct {
	Body MessageBody
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *service.ProjectService
}

func NewAPIHandler(svc *service.ProjectService) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: Version}}, nil
}

// apiError maps domain errors to HTTP problems.
func apiError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, survey.ErrNotFound), errors.Is(err, service.ErrNoSnapshot):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, survey.ErrUnknownField):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, survey.ErrValidation), errors.Is(err, survey.ErrParse):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, service.ErrNoStore):
		return huma.Error503ServiceUnavailable(err.Error())
	case errors.Is(err, service.ErrNoHistory):
		return huma.Error501NotImplemented(err.Error())
	}
	return huma.Error500InternalServerError("internal error", err)
}

// ftoa renders a number for the text-based store inputs.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
