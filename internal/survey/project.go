package survey

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
)

// Settings are the tunable constants of a project.
type Settings struct {
	DefaultActive   bool
	Units           Units
	Surface         Surface
	DragSensitivity float64
	MinWidth        float64
	AxisMode        AxisMode
	DuplicateOffset float64
	MapRange        float64
}

// DefaultSettings activates new sections and takes layer input in g/cm³ and cm.
func DefaultSettings() Settings {
	return Settings{
		DefaultActive:   true,
		Units:           UnitsGramCentimeter,
		Surface:         DefaultSurface,
		DragSensitivity: DefaultDragSensitivity,
		MinWidth:        DefaultMinWidth,
		AxisMode:        AxisDynamic,
		DuplicateOffset: DefaultDuplicateOffset,
		MapRange:        DefaultMapRange,
	}
}

// Project ties the stores together. Every mutation that can create a
// section or a layer reconciles the activation matrix before returning, so
// Tonnage always sees a complete matrix.
type Project struct {
	Name       string
	Settings   Settings
	Stations   *StationStore
	Layers     *LayerStore
	POIs       *POIStore
	Geofences  *GeofenceStore
	Activation *Activation
	Editor     *Editor
	Display    Display
}

// NewProject returns an empty project.
func NewProject(name string, s Settings) *Project {
	p := &Project{
		Name:       name,
		Settings:   s,
		Stations:   NewStationStore(),
		Layers:     NewLayerStore(s.Units),
		POIs:       NewPOIStore(),
		Geofences:  NewGeofenceStore(),
		Activation: NewActivation(s.DefaultActive),
		Display:    DefaultDisplay(),
	}
	p.wire()
	return p
}

func (p *Project) wire() {
	p.Stations.DuplicateOffset = p.Settings.DuplicateOffset
	p.Editor = NewEditor(p.Stations)
	if p.Settings.DragSensitivity > 0 {
		p.Editor.Sensitivity = p.Settings.DragSensitivity
	}
	if p.Settings.MinWidth > 0 {
		p.Editor.MinWidth = p.Settings.MinWidth
	}
	if p.Settings.AxisMode != "" {
		p.Editor.Mode = p.Settings.AxisMode
	}
	if p.Settings.Surface.Width == 0 {
		p.Settings.Surface = DefaultSurface
	}
}

// Reconcile brings the activation matrix up to date with the stores.
func (p *Project) Reconcile() {
	p.Activation.Reconcile(p.Stations.List(), p.Layers.List())
}

// AddStation adds a station from form input.
func (p *Project) AddStation(station, width string) (Station, error) {
	st, err := p.Stations.AddText(station, width)
	if err != nil {
		return Station{}, err
	}
	p.Reconcile()
	return st, nil
}

// UpdateStation edits one field of a station.
func (p *Project) UpdateStation(id, field, value string) (Station, error) {
	st, err := p.Stations.Update(id, field, value)
	if err != nil {
		return Station{}, err
	}
	p.Reconcile()
	return st, nil
}

// DeleteStation removes a station. Its activation entries stay behind.
func (p *Project) DeleteStation(id string) error {
	if err := p.Stations.Delete(id); err != nil {
		return err
	}
	// the neighbours now form a new section
	p.Reconcile()
	return nil
}

// DuplicateStation adds a copy of a station a few meters further on.
func (p *Project) DuplicateStation(id string) (Station, error) {
	st, err := p.Stations.DuplicateAfter(id)
	if err != nil {
		return Station{}, err
	}
	p.Reconcile()
	return st, nil
}

// AddLayer adds a layer on top of the stack.
func (p *Project) AddLayer(in LayerInput) (Layer, error) {
	l, err := p.Layers.Add(in)
	if err != nil {
		return Layer{}, err
	}
	p.Reconcile()
	return l, nil
}

// UpdateLayer edits one field of a layer.
func (p *Project) UpdateLayer(id, field, value string) (Layer, error) {
	return p.Layers.Update(id, field, value)
}

// DeleteLayer removes a layer. Its activation entries stay behind.
func (p *Project) DeleteLayer(id string) error {
	return p.Layers.Delete(id)
}

// ToggleSection flips a section of a layer.
func (p *Project) ToggleSection(layerID, key string) (bool, error) {
	if _, ok := p.Layers.Get(layerID); !ok {
		return false, fmt.Errorf("layer %q: %w", layerID, ErrNotFound)
	}
	return p.Activation.Toggle(layerID, key), nil
}

// SetSection sets a section of a layer.
func (p *Project) SetSection(layerID, key string, active bool) error {
	if _, ok := p.Layers.Get(layerID); !ok {
		return fmt.Errorf("layer %q: %w", layerID, ErrNotFound)
	}
	p.Activation.Set(layerID, key, active)
	return nil
}

// AddPOI adds a point of interest from form input.
func (p *Project) AddPOI(station, name string, typ POIType) (POI, error) {
	return p.POIs.Add(station, name, typ)
}

// PlacePOI adds a point of interest where the map backdrop was clicked.
func (p *Project) PlacePOI(x, mapWidth float64, name string, typ POIType) POI {
	return p.POIs.AddAt(MapStation(x, mapWidth, p.Settings.MapRange), name, typ)
}

// AddGeofence stores a freehand path drawn on the map.
func (p *Project) AddGeofence(name string, path []orb.Point) (Geofence, error) {
	return p.Geofences.AddPath(name, path)
}

// Scale returns the current station scale.
func (p *Project) Scale() Scale {
	return NewScale(p.Stations.List(), p.Settings.Surface)
}

// Tonnage computes the current report.
func (p *Project) Tonnage() Report {
	p.Reconcile()
	return Compute(p.Stations.List(), p.Layers.List(), p.Activation)
}

// Profile derives the drawing of the current state.
func (p *Project) Profile() Profile {
	var dragged string
	if d, ok := p.Editor.Dragging(); ok {
		dragged = d.StationID
	}
	return BuildProfile(p.Stations.List(), p.Layers.List(), p.POIs.List(), p.Activation, p.Settings.Surface, p.Display, dragged)
}

// PointerDown starts dragging a station at surface coordinates x, y.
func (p *Project) PointerDown(target Target, stationID string, x, y float64) error {
	return p.Editor.PointerDown(target, stationID, x, y, p.Scale())
}

// PointerMove continues a drag. A move can reorder stations, so the matrix
// is reconciled for the new sections.
func (p *Project) PointerMove(x, y float64) (Station, bool, error) {
	st, ok, err := p.Editor.PointerMove(x, y)
	if ok {
		p.Reconcile()
	}
	return st, ok, err
}

// PointerUp ends a drag.
func (p *Project) PointerUp() {
	p.Editor.PointerUp()
}

// Snapshot is the saved form of a project.
type Snapshot struct {
	Name              string                     `json:"name" yaml:"name"`
	Stations          []Station                  `json:"stations" yaml:"stations"`
	Layers            []Layer                    `json:"layers" yaml:"layers"`
	SectionActivation map[string]map[string]bool `json:"sectionActivation" yaml:"sectionActivation"`
	PointsOfInterest  []POI                      `json:"pointsOfInterest" yaml:"pointsOfInterest"`
	Geofences         []Geofence                 `json:"geofences" yaml:"-"`
	SavedAt           string                     `json:"savedAt" yaml:"savedAt"`
}

// Snapshot captures the project at now.
func (p *Project) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Name:              p.Name,
		Stations:          p.Stations.List(),
		Layers:            p.Layers.List(),
		SectionActivation: p.Activation.Snapshot(),
		PointsOfInterest:  p.POIs.List(),
		Geofences:         p.Geofences.List(),
		SavedAt:           now.UTC().Format(time.RFC3339),
	}
}

// FromSnapshot builds a detached project from a saved payload, for reports
// and previews. Installed weights are recomputed from density and thickness.
func FromSnapshot(snap Snapshot, s Settings) *Project {
	p := &Project{
		Name:       snap.Name,
		Settings:   s,
		Stations:   NewStationStore(snap.Stations...),
		Layers:     NewLayerStore(s.Units, snap.Layers...),
		POIs:       NewPOIStore(snap.PointsOfInterest...),
		Geofences:  NewGeofenceStore(snap.Geofences...),
		Activation: NewActivation(s.DefaultActive),
		Display:    DefaultDisplay(),
	}
	p.Activation.Restore(snap.SectionActivation)
	p.wire()
	p.Reconcile()
	return p
}
