package survey

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// DefaultMapRange is the route length in meters shown across the map backdrop.
const DefaultMapRange = 60.0

// MapStation converts a click on the map backdrop to a station position.
// The backdrop spans 0..mapRange meters from left to right.
func MapStation(x, mapWidth, mapRange float64) float64 {
	if mapWidth <= 0 {
		return 0
	}
	if mapRange <= 0 {
		mapRange = DefaultMapRange
	}
	return x / mapWidth * mapRange
}

// Geofence is a closed area drawn on the map backdrop, in map pixels.
type Geofence struct {
	ID   string   `json:"id" doc:"Geofence identifier"`
	Name string   `json:"name" doc:"Label" example:"Geofence 1"`
	Path orb.Ring `json:"path" doc:"Closed outline as [x, y] map coordinates"`
}

// Area is the enclosed area in square map pixels.
func (g Geofence) Area() float64 {
	return math.Abs(planar.Area(orb.Polygon{g.Path}))
}

// Contains reports whether a map point lies inside the geofence.
func (g Geofence) Contains(p orb.Point) bool {
	return planar.RingContains(g.Path, p)
}

// GeofenceStore keeps geofences in drawing order.
type GeofenceStore struct {
	items []Geofence
}

// NewGeofenceStore returns a store holding a copy of fences.
func NewGeofenceStore(fences ...Geofence) *GeofenceStore {
	return &GeofenceStore{items: slices.Clone(fences)}
}

// List returns a copy of the geofences.
func (s *GeofenceStore) List() []Geofence {
	return slices.Clone(s.items)
}

// AddPath closes a freehand path and stores it. Paths with fewer than three
// points cannot enclose anything and are rejected.
func (s *GeofenceStore) AddPath(name string, path []orb.Point) (Geofence, error) {
	if len(path) <= 2 {
		return Geofence{}, fmt.Errorf("%w: a geofence needs at least 3 points", ErrValidation)
	}
	path = thin(path)
	ring := make(orb.Ring, 0, len(path)+1)
	ring = append(ring, path...)
	if !ring.Closed() {
		ring = append(ring, path[0])
	}
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Geofence %d", len(s.items)+1)
	}
	g := Geofence{ID: NewID(), Name: name, Path: ring}
	s.items = append(s.items, g)
	return g, nil
}

// Freehand paths longer than thinAbove points are simplified with
// tolerance thinTolerance map pixels.
const (
	thinAbove     = 16
	thinTolerance = 1.0
)

// thin drops pointer samples that do not change the outline. The path is
// kept as drawn when simplifying would leave too few points.
func thin(path []orb.Point) []orb.Point {
	if len(path) <= thinAbove {
		return path
	}
	ls := simplify.DouglasPeucker(thinTolerance).LineString(slices.Clone(orb.LineString(path)))
	if len(ls) <= 2 {
		return path
	}
	return ls
}

// Delete removes a geofence.
func (s *GeofenceStore) Delete(id string) error {
	i := slices.IndexFunc(s.items, func(g Geofence) bool { return g.ID == id })
	if i < 0 {
		return fmt.Errorf("geofence %q: %w", id, ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// Clear removes all geofences.
func (s *GeofenceStore) Clear() {
	s.items = nil
}

// Covering returns the geofences containing p.
func (s *GeofenceStore) Covering(p orb.Point) []Geofence {
	var out []Geofence
	for _, g := range s.items {
		if g.Contains(p) {
			out = append(out, g)
		}
	}
	return out
}

// MapFeatures exports points of interest and geofences as GeoJSON in map
// pixel coordinates. Points sit on the horizontal centre line of the map.
func MapFeatures(pois []POI, fences []Geofence, mapWidth, mapHeight, mapRange float64) *geojson.FeatureCollection {
	if mapRange <= 0 {
		mapRange = DefaultMapRange
	}
	fc := geojson.NewFeatureCollection()
	for _, p := range pois {
		f := geojson.NewFeature(orb.Point{p.Station / mapRange * mapWidth, mapHeight / 2})
		f.ID = p.ID
		f.Properties["kind"] = "poi"
		f.Properties["name"] = p.Name
		f.Properties["type"] = string(p.Type)
		f.Properties["symbol"] = p.Type.Symbol()
		f.Properties["station"] = p.Station
		fc.Append(f)
	}
	for _, g := range fences {
		f := geojson.NewFeature(orb.Polygon{g.Path})
		f.ID = g.ID
		f.Properties["kind"] = "geofence"
		f.Properties["name"] = g.Name
		f.Properties["area"] = g.Area()
		fc.Append(f)
	}
	return fc
}
