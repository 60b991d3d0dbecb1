package survey

import "math"

// SectionArea is the trapezoidal area between two cross-sections in m².
func SectionArea(a, b Station) float64 {
	return math.Abs(b.Station-a.Station) * (a.Width + b.Width) / 2
}

// SectionResult is one section of a layer in a tonnage report.
type SectionResult struct {
	Key    string  `json:"key" doc:"Section key"`
	From   float64 `json:"from" doc:"Start station in m"`
	To     float64 `json:"to" doc:"End station in m"`
	Area   float64 `json:"area" doc:"Section area in m²"`
	Active bool    `json:"active" doc:"Whether the section counts toward the tonnage"`
}

// LayerResult is the tonnage of one layer.
type LayerResult struct {
	LayerID         string          `json:"layerId"`
	Name            string          `json:"name"`
	Recipe          string          `json:"recipe"`
	InstalledWeight float64         `json:"installedWeight" doc:"kg/m²"`
	Area            float64         `json:"area" doc:"Active area in m²"`
	Mass            float64         `json:"mass" doc:"Mass in kg"`
	Tonnage         float64         `json:"tonnage" doc:"Mass in t"`
	ActiveSections  int             `json:"activeSections"`
	TotalSections   int             `json:"totalSections"`
	Sections        []SectionResult `json:"sections"`
}

// Report is the tonnage of a whole project.
type Report struct {
	Layers    []LayerResult `json:"layers"`
	TotalMass float64       `json:"totalMass" doc:"Mass of all layers in kg"`
	Total     float64       `json:"total" doc:"Tonnage of all layers in t"`
	Stations  int           `json:"stations"`
}

// LayerArea sums the areas of the sections active for layer.
func LayerArea(stations []Station, layer Layer, act *Activation) float64 {
	var area float64
	for _, sec := range Sections(stations) {
		if act.Get(layer.ID, sec.Key()) {
			area += SectionArea(sec.From, sec.To)
		}
	}
	return area
}

// LayerTonnage is the active area times the installed weight, in tonnes.
func LayerTonnage(stations []Station, layer Layer, act *Activation) float64 {
	return LayerArea(stations, layer, act) * layer.InstalledWeight / 1000
}

// ProjectTotal sums LayerTonnage over all layers.
func ProjectTotal(stations []Station, layers []Layer, act *Activation) float64 {
	var total float64
	for _, l := range layers {
		total += LayerTonnage(stations, l, act)
	}
	return total
}

// Compute builds the full report. stations must be in route order.
func Compute(stations []Station, layers []Layer, act *Activation) Report {
	sections := Sections(stations)
	r := Report{Layers: make([]LayerResult, 0, len(layers)), Stations: len(stations)}
	for _, l := range layers {
		lr := LayerResult{
			LayerID:         l.ID,
			Name:            l.Name,
			Recipe:          l.Recipe,
			InstalledWeight: l.InstalledWeight,
			TotalSections:   len(sections),
			Sections:        make([]SectionResult, 0, len(sections)),
		}
		for _, sec := range sections {
			sr := SectionResult{
				Key:    sec.Key(),
				From:   sec.From.Station,
				To:     sec.To.Station,
				Area:   SectionArea(sec.From, sec.To),
				Active: act.Get(l.ID, sec.Key()),
			}
			if sr.Active {
				lr.Area += sr.Area
				lr.ActiveSections++
			}
			lr.Sections = append(lr.Sections, sr)
		}
		lr.Mass = lr.Area * l.InstalledWeight
		lr.Tonnage = lr.Mass / 1000
		r.TotalMass += lr.Mass
		r.Total += lr.Tonnage
		r.Layers = append(r.Layers, lr)
	}
	return r
}
