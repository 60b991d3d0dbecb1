package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/joeblew999/plat-road/internal/survey"
)

// Size of the map backdrop in pixels.
const (
	MapWidth  = 600.0
	MapHeight = 300.0
	mapTick   = 10.0 // meters between grid lines
)

// StationRow is one row of the station table.
type StationRow struct {
	survey.Station
	Dragged bool
}

// LayerCard is a layer as shown in the layer list, with density and
// thickness converted back to the input units.
type LayerCard struct {
	survey.Layer
	Color          string
	InputDensity   float64
	InputThickness float64
	DensityUnit    string
	ThicknessUnit  string
	ActiveSections int
	TotalSections  int
	Tonnage        float64
}

// MapView is the map backdrop with points and geofences.
type MapView struct {
	Width     float64
	Height    float64
	Range     float64
	Ticks     []MapTick
	POIs      []MapPOI
	Geofences []GeofenceCard
}

// MapTick is a vertical grid line of the map.
type MapTick struct {
	X       float64
	Station float64
}

// MapPOI is a point of interest on the map.
type MapPOI struct {
	ID     string
	Name   string
	Symbol string
	X      float64
	Y      float64
}

// GeofenceCard is a geofence in the map overlay and the geofence list.
type GeofenceCard struct {
	ID      string
	Name    string
	Points  string
	Corners int
	Area    float64
}

// UnitLabels returns the density and thickness unit labels of u.
func UnitLabels(u survey.Units) (density, thickness string) {
	if u == survey.UnitsSI {
		return "kg/m³", "m"
	}
	return "g/cm³", "cm"
}

// round6 hides float noise from unit conversion in input fields.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func stationRows(stations []survey.Station, dragged string) []StationRow {
	rows := make([]StationRow, len(stations))
	for i, st := range stations {
		rows[i] = StationRow{Station: st, Dragged: st.ID == dragged}
	}
	return rows
}

func layerCards(layers []survey.Layer, units survey.Units, r survey.Report) []LayerCard {
	results := make(map[string]survey.LayerResult, len(r.Layers))
	for _, lr := range r.Layers {
		results[lr.LayerID] = lr
	}
	densityUnit, thicknessUnit := UnitLabels(units)
	cards := make([]LayerCard, len(layers))
	for i, l := range layers {
		d, t := units.FromSI(l.Density, l.Thickness)
		lr := results[l.ID]
		cards[i] = LayerCard{
			Layer:          l,
			Color:          survey.LayerColor(i),
			InputDensity:   round6(d),
			InputThickness: round6(t),
			DensityUnit:    densityUnit,
			ThicknessUnit:  thicknessUnit,
			ActiveSections: lr.ActiveSections,
			TotalSections:  lr.TotalSections,
			Tonnage:        lr.Tonnage,
		}
	}
	return cards
}

func geofenceCard(g survey.Geofence) GeofenceCard {
	pts := make([]string, 0, len(g.Path))
	for _, p := range g.Path {
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", p[0], p[1]))
	}
	corners := len(g.Path)
	if g.Path.Closed() {
		corners--
	}
	return GeofenceCard{ID: g.ID, Name: g.Name, Points: strings.Join(pts, " "), Corners: corners, Area: g.Area()}
}

func mapView(pois []survey.POI, fences []survey.Geofence, mapRange float64) MapView {
	if mapRange <= 0 {
		mapRange = survey.DefaultMapRange
	}
	v := MapView{Width: MapWidth, Height: MapHeight, Range: mapRange}
	for s := 0.0; s <= mapRange; s += mapTick {
		v.Ticks = append(v.Ticks, MapTick{X: s / mapRange * MapWidth, Station: s})
	}
	for _, p := range pois {
		v.POIs = append(v.POIs, MapPOI{
			ID:     p.ID,
			Name:   p.Name,
			Symbol: p.Type.Symbol(),
			X:      p.Station / mapRange * MapWidth,
			Y:      MapHeight / 2,
		})
	}
	for _, g := range fences {
		v.Geofences = append(v.Geofences, geofenceCard(g))
	}
	return v
}
