// Package editor serves the Datastar SSE endpoints of the station editor.
//
// Every mutation endpoint answers with patches for the panels it affects.
// The events stream re-renders panels for changes made elsewhere, so a
// second browser tab follows along.
package editor

import (
	"context"
	"log"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/humastar"
	"github.com/joeblew999/plat-road/internal/report"
	"github.com/joeblew999/plat-road/internal/service"
	"github.com/joeblew999/plat-road/internal/survey"
	"github.com/joeblew999/plat-road/internal/templates"
)

// BasePath prefixes every editor route.
const BasePath = "/api/v1/editor"

// Tag marks editor operations in the OpenAPI document.
const Tag = "editor"

// panel is a set of page regions to re-render.
type panel uint

const (
	panelStations panel = 1 << iota
	panelLayers
	panelTonnage
	panelProfile
	panelPOIs
	panelMap
	panelGeofences

	panelAll = panelStations | panelLayers | panelTonnage | panelProfile | panelPOIs | panelMap | panelGeofences
)

// panelsFor returns the regions affected by a change to resource.
func panelsFor(resource string) panel {
	switch resource {
	case service.ResourceStations:
		return panelStations | panelLayers | panelTonnage | panelProfile
	case service.ResourceLayers, service.ResourceSections:
		return panelLayers | panelTonnage | panelProfile
	case service.ResourcePOIs:
		return panelPOIs | panelProfile | panelMap
	case service.ResourceGeofences:
		return panelMap | panelGeofences
	case service.ResourceDisplay:
		return panelProfile
	case service.ResourceProject:
		return panelAll
	}
	return 0
}

// Handler serves the editor page and its SSE endpoints.
type Handler struct {
	humastar.Handler
	svc    *service.ProjectService
	logger *log.Logger
}

// New creates an editor handler.
func New(svc *service.ProjectService, renderer *templates.Renderer, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		Handler: humastar.Handler{Renderer: renderer},
		svc:     svc,
		logger:  logger,
	}
}

// RegisterRoutes registers every editor route.
func (h *Handler) RegisterRoutes(api huma.API) {
	tags := huma.OperationTags(Tag)

	huma.Get(api, BasePath+"/events", h.Events, tags)
	huma.Get(api, BasePath+"/refresh", h.Refresh, tags)

	huma.Put(api, BasePath+"/project", h.RenameProject, tags)
	huma.Post(api, BasePath+"/project/save", h.SaveProject, tags)

	huma.Post(api, BasePath+"/stations", h.AddStation, tags)
	huma.Put(api, BasePath+"/stations/{id}/{field}", h.UpdateStation, tags)
	huma.Post(api, BasePath+"/stations/{id}/duplicate", h.DuplicateStation, tags)
	huma.Delete(api, BasePath+"/stations/{id}", h.DeleteStation, tags)

	huma.Post(api, BasePath+"/layers", h.AddLayer, tags)
	huma.Put(api, BasePath+"/layers/{id}/{field}", h.UpdateLayer, tags)
	huma.Delete(api, BasePath+"/layers/{id}", h.DeleteLayer, tags)

	huma.Post(api, BasePath+"/sections/{layer}/{key}/toggle", h.ToggleSection, tags)

	huma.Post(api, BasePath+"/pois", h.AddPOI, tags)
	huma.Post(api, BasePath+"/pois/place", h.PlacePOI, tags)
	huma.Put(api, BasePath+"/pois/{id}/{field}", h.UpdatePOI, tags)
	huma.Delete(api, BasePath+"/pois/{id}", h.DeletePOI, tags)

	huma.Post(api, BasePath+"/geofences", h.AddGeofence, tags)
	huma.Delete(api, BasePath+"/geofences", h.ClearGeofences, tags)
	huma.Delete(api, BasePath+"/geofences/{id}", h.DeleteGeofence, tags)

	huma.Post(api, BasePath+"/drag/down", h.PointerDown, tags)
	huma.Post(api, BasePath+"/drag/move", h.PointerMove, tags)
	huma.Post(api, BasePath+"/drag/up", h.PointerUp, tags)

	huma.Put(api, BasePath+"/display", h.UpdateDisplay, tags)
	huma.Post(api, BasePath+"/display/zoom-in", h.ZoomIn, tags)
	huma.Post(api, BasePath+"/display/zoom-out", h.ZoomOut, tags)
}

// PageView is the data of the editor page.
type PageView struct {
	Title         string
	Signals       string
	DataInit      string
	Display       survey.Display
	POITypes      []survey.POIType
	Formats       []report.Format
	DensityUnit   string
	ThicknessUnit string
}

// ServePage renders the full editor page. The panels are filled by the
// events stream on load.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	page := humastar.Page{
		Signals: h.pageSignals(),
		Inits:   []string{BasePath + "/events"},
	}
	signals, err := page.SignalsJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	densityUnit, thicknessUnit := UnitLabels(h.svc.Units())
	html, err := h.Renderer.Render("editor-page", PageView{
		Title:         h.svc.Name(),
		Signals:       signals,
		DataInit:      page.DataInit(),
		Display:       h.svc.Display(),
		POITypes:      survey.POITypes,
		Formats:       report.Formats,
		DensityUnit:   densityUnit,
		ThicknessUnit: thicknessUnit,
	})
	if err != nil {
		h.logger.Printf("render editor page: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// pageSignals are the initial signals of the page: form inputs, notices,
// drag and map state, and the display toggles.
func (h *Handler) pageSignals() map[string]any {
	signals := map[string]any{
		"error": "", "success": "",
		"station": "", "width": "",
		"layername": "", "recipe": "", "density": "", "thickness": "",
		"poistation": "", "poiname": "", "poitype": string(survey.POIStart),
		"mapmode": "poi", "drawing": false, "fencepath": []any{}, "fencename": "",
	}
	for k, v := range h.stateSignals() {
		signals[k] = v
	}
	return signals
}

// stateSignals mirror server state the page binds to.
func (h *Handler) stateSignals() map[string]any {
	d := h.svc.Display()
	_, dragging := h.svc.Dragging()
	return map[string]any{
		"project":         h.svc.Name(),
		"dragging":        dragging,
		"zoom":            d.Zoom,
		"showmeasurement": d.ShowMeasurement,
		"showlayers":      d.ShowLayers,
		"showpoi":         d.ShowPOI,
		"fixed":           d.Fixed,
	}
}

// patch re-renders the panels in p. Drag moves pass now to skip view
// transitions.
func (h *Handler) patch(sse humastar.SSE, p panel, now bool) {
	send := sse.Patch
	if now {
		send = sse.PatchNow
	}
	drag, _ := h.svc.Dragging()

	if p&panelStations != 0 {
		send(h.Render("station-rows", stationRows(h.svc.Stations(), drag.StationID)), "#stations")
	}
	if p&(panelLayers|panelTonnage) != 0 {
		r := h.svc.Tonnage()
		if p&panelLayers != 0 {
			cards := layerCards(h.svc.Layers(), h.svc.Units(), r)
			send(h.RenderList("layer-card", humastar.Items(cards), "Keine Schichten", "Name, Rezeptur, Dichte und Dicke eingeben."), "#layers")
		}
		if p&panelTonnage != 0 {
			send(h.Render("tonnage-panel", r), "#tonnage")
		}
	}
	if p&panelProfile != 0 {
		send(h.Render("profile", h.svc.Profile()), "#profile")
	}
	if p&panelPOIs != 0 {
		send(h.RenderList("poi-card", humastar.Items(h.svc.POIs()), "Keine POIs", "Station eingeben oder auf die Karte klicken."), "#pois")
	}
	if p&(panelMap|panelGeofences) != 0 {
		view := mapView(h.svc.POIs(), h.svc.Geofences(), h.svc.Settings().MapRange)
		if p&panelMap != 0 {
			send(h.Render("map", view), "#map")
		}
		if p&panelGeofences != 0 {
			send(h.RenderList("geofence-card", humastar.Items(view.Geofences), "Keine Geofences", "Im Modus „Geofence zeichnen“ eine Fläche auf der Karte umfahren."), "#geofences")
		}
	}
}

// Refresh re-renders the whole page state.
func (h *Handler) Refresh(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		h.patch(sse, panelAll, false)
		sse.Signals(h.stateSignals())
	}), nil
}
