package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-road/internal/api/editor"
	"github.com/joeblew999/plat-road/internal/humastar"
)

// related links resources whose values feed each other, on top of the
// links derived from the route tree.
var related = []struct{ from, to, rel string }{
	{"/api/v1/stations", "/api/v1/sections", "sections"},
	{"/api/v1/stations", "/api/v1/tonnage", "tonnage"},
	{"/api/v1/layers", "/api/v1/sections", "sections"},
	{"/api/v1/layers", "/api/v1/tonnage", "tonnage"},
	{"/api/v1/sections", "/api/v1/tonnage", "tonnage"},
	{"/api/v1/tonnage", "/api/v1/report", "report"},
	{"/api/v1/pois", "/api/v1/map", "map"},
	{"/api/v1/geofences", "/api/v1/map", "map"},
	{"/api/v1/project", "/api/v1/project/snapshot", "snapshot"},
	{"/api/v1/project", "/api/v1/project/history", "history"},
	{"/api/v1/project", "/editor", "editor"},
	{"/health", "/api/v1/info", "info"},
	{"/health", "/metrics", "metrics"},
}

// AddLinks fills links from the registered routes. The editor's SSE
// endpoints are left out. Call after every route is registered; links is
// the map the LinkTransformer was built with.
func AddLinks(api huma.API, links humastar.Links) {
	for from, vals := range humastar.AutoLinks(api, editor.Tag) {
		links[from] = append(links[from], vals...)
	}
	for _, r := range related {
		links.Add(r.from, r.to, r.rel)
	}
}
