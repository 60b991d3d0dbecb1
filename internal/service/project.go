// Package service serializes access to the open project, publishes change
// events and persists snapshots.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/plat-road/internal/metrics"
	"github.com/joeblew999/plat-road/internal/survey"
)

// ErrNoStore is returned by Save and Load when no snapshot store is configured.
var ErrNoStore = errors.New("no snapshot store configured")

// ErrNoHistory is returned by History when the store keeps only the latest save.
var ErrNoHistory = errors.New("snapshot store keeps no history")

// ProjectOptions configures a ProjectService.
type ProjectOptions struct {
	Name     string
	Settings survey.Settings
	Store    SnapshotStore
	Bus      *EventBus
	Logger   *log.Logger
}

// ProjectService owns the open project. Every call runs to completion under
// the service lock, so mutations are applied one at a time in arrival order.
type ProjectService struct {
	mu      sync.RWMutex
	project *survey.Project
	store   SnapshotStore
	bus     *EventBus
	logger  *log.Logger
	now     func() time.Time
}

// NewProjectService creates a service around an empty project.
func NewProjectService(opts ProjectOptions) *ProjectService {
	if opts.Bus == nil {
		opts.Bus = NewEventBus()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &ProjectService{
		project: survey.NewProject(opts.Name, opts.Settings),
		store:   opts.Store,
		bus:     opts.Bus,
		logger:  opts.Logger,
		now:     time.Now,
	}
}

// Bus returns the event bus mutations are published on.
func (s *ProjectService) Bus() *EventBus {
	return s.bus
}

// record counts a mutation and publishes it when it succeeded.
// Callers hold the lock.
func (s *ProjectService) record(resource, action, id string, err error) {
	metrics.ObserveMutation(resource, action, err)
	if err != nil {
		return
	}
	s.bus.Publish(Event{Resource: resource, Action: action, ID: id})
}

// Project

// Name returns the project name.
func (s *ProjectService) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Name
}

// Rename sets the project name.
func (s *ProjectService) Rename(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if name = strings.TrimSpace(name); name == "" {
		err = fmt.Errorf("%w: project name is required", survey.ErrValidation)
	} else {
		s.project.Name = name
	}
	s.record(ResourceProject, ActionUpdated, "", err)
	return err
}

// Settings returns the project settings.
func (s *ProjectService) Settings() survey.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Settings
}

// Seed fills an empty project with the demo route. It reports whether
// anything was added.
func (s *ProjectService) Seed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.project.Stations.Len() > 0 || s.project.Layers.Len() > 0 {
		return false, nil
	}
	err := survey.Seed(s.project)
	s.record(ResourceProject, ActionCreated, "", err)
	if err != nil {
		return false, err
	}
	s.logger.Printf("seeded sample data: %d stations, %d layers", s.project.Stations.Len(), s.project.Layers.Len())
	return true, nil
}

// Stations

// Stations returns the stations in route order.
func (s *ProjectService) Stations() []survey.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Stations.List()
}

// Station returns a station by ID.
func (s *ProjectService) Station(id string) (survey.Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Stations.Get(id)
}

// AddStation adds a station from form input.
func (s *ProjectService) AddStation(station, width string) (survey.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.project.AddStation(station, width)
	s.record(ResourceStations, ActionCreated, st.ID, err)
	return st, err
}

// UpdateStation edits one field of a station.
func (s *ProjectService) UpdateStation(id, field, value string) (survey.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.project.UpdateStation(id, field, value)
	s.record(ResourceStations, ActionUpdated, id, err)
	return st, err
}

// DeleteStation removes a station.
func (s *ProjectService) DeleteStation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.project.DeleteStation(id)
	s.record(ResourceStations, ActionDeleted, id, err)
	return err
}

// DuplicateStation copies a station a few meters further along the route.
func (s *ProjectService) DuplicateStation(id string) (survey.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.project.DuplicateStation(id)
	s.record(ResourceStations, ActionCreated, st.ID, err)
	return st, err
}

// Layers

// Layers returns the layers, bottom of the stack first.
func (s *ProjectService) Layers() []survey.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Layers.List()
}

// Layer returns a layer by ID.
func (s *ProjectService) Layer(id string) (survey.Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Layers.Get(id)
}

// Units returns the input units of layer density and thickness.
func (s *ProjectService) Units() survey.Units {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Layers.Units()
}

// AddLayer adds a layer on top of the stack.
func (s *ProjectService) AddLayer(in survey.LayerInput) (survey.Layer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.project.AddLayer(in)
	s.record(ResourceLayers, ActionCreated, l.ID, err)
	return l, err
}

// UpdateLayer edits one field of a layer.
func (s *ProjectService) UpdateLayer(id, field, value string) (survey.Layer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.project.UpdateLayer(id, field, value)
	s.record(ResourceLayers, ActionUpdated, id, err)
	return l, err
}

// DeleteLayer removes a layer.
func (s *ProjectService) DeleteLayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.project.DeleteLayer(id)
	s.record(ResourceLayers, ActionDeleted, id, err)
	return err
}

// Sections

// Activation returns a copy of the activation matrix.
func (s *ProjectService) Activation() map[string]map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project.Reconcile()
	return s.project.Activation.Snapshot()
}

// ToggleSection flips a section of a layer and returns the new state.
func (s *ProjectService) ToggleSection(layerID, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, err := s.project.ToggleSection(layerID, key)
	s.record(ResourceSections, ActionUpdated, layerID+"/"+key, err)
	return active, err
}

// SetSection sets a section of a layer.
func (s *ProjectService) SetSection(layerID, key string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.project.SetSection(layerID, key, active)
	s.record(ResourceSections, ActionUpdated, layerID+"/"+key, err)
	return err
}

// Tonnage

// Tonnage computes the tonnage report of the current state.
func (s *ProjectService) Tonnage() survey.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	r := s.project.Tonnage()
	metrics.ObserveTonnage(r.Total, r.Stations, len(r.Layers), time.Since(start))
	return r
}

// Points of interest

// POIs returns the points of interest in route order.
func (s *ProjectService) POIs() []survey.POI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.POIs.List()
}

// POI returns a point of interest by ID.
func (s *ProjectService) POI(id string) (survey.POI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.POIs.Get(id)
}

// AddPOI adds a point of interest from form input.
func (s *ProjectService) AddPOI(station, name string, typ survey.POIType) (survey.POI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.project.AddPOI(station, name, typ)
	s.record(ResourcePOIs, ActionCreated, p.ID, err)
	return p, err
}

// PlacePOI adds a point of interest where the map backdrop was clicked.
func (s *ProjectService) PlacePOI(x, mapWidth float64, name string, typ survey.POIType) (survey.POI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if mapWidth <= 0 {
		err = fmt.Errorf("%w: map width must be positive", survey.ErrValidation)
	}
	var p survey.POI
	if err == nil {
		p = s.project.PlacePOI(x, mapWidth, name, typ)
	}
	s.record(ResourcePOIs, ActionCreated, p.ID, err)
	return p, err
}

// UpdatePOI edits one field of a point of interest.
func (s *ProjectService) UpdatePOI(id, field, value string) (survey.POI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.project.POIs.Update(id, field, value)
	s.record(ResourcePOIs, ActionUpdated, id, err)
	return p, err
}

// DeletePOI removes a point of interest.
func (s *ProjectService) DeletePOI(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.project.POIs.Delete(id)
	s.record(ResourcePOIs, ActionDeleted, id, err)
	return err
}

// Geofences

// Geofences returns the geofences in drawing order.
func (s *ProjectService) Geofences() []survey.Geofence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Geofences.List()
}

// AddGeofence stores a freehand path as a closed geofence.
func (s *ProjectService) AddGeofence(name string, path []orb.Point) (survey.Geofence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.project.AddGeofence(name, path)
	s.record(ResourceGeofences, ActionCreated, g.ID, err)
	return g, err
}

// DeleteGeofence removes a geofence.
func (s *ProjectService) DeleteGeofence(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.project.Geofences.Delete(id)
	s.record(ResourceGeofences, ActionDeleted, id, err)
	return err
}

// ClearGeofences removes all geofences.
func (s *ProjectService) ClearGeofences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project.Geofences.Clear()
	s.record(ResourceGeofences, ActionDeleted, "", nil)
}

// MapFeatures exports points of interest and geofences as GeoJSON.
func (s *ProjectService) MapFeatures(mapWidth, mapHeight float64) *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return survey.MapFeatures(s.project.POIs.List(), s.project.Geofences.List(), mapWidth, mapHeight, s.project.Settings.MapRange)
}

// Display and profile

// Display returns the view settings.
func (s *ProjectService) Display() survey.Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Display
}

// UpdateDisplay changes the view settings with fn. The zoom is clamped
// afterwards.
func (s *ProjectService) UpdateDisplay(fn func(d *survey.Display)) survey.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.project.Display)
	s.project.Display.SetZoom(s.project.Display.Zoom)
	s.record(ResourceDisplay, ActionUpdated, "", nil)
	return s.project.Display
}

// Profile derives the station profile drawing.
func (s *ProjectService) Profile() survey.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Profile()
}

// Scale returns the current station scale.
func (s *ProjectService) Scale() survey.Scale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Scale()
}

// Drag

// PointerDown starts dragging a station.
func (s *ProjectService) PointerDown(target survey.Target, stationID string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.PointerDown(target, stationID, x, y)
}

// PointerMove continues a drag. ok is false when no drag is in progress.
func (s *ProjectService) PointerMove(x, y float64) (st survey.Station, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok, err = s.project.PointerMove(x, y)
	if !ok && err == nil {
		return st, false, nil
	}
	if d, dragging := s.project.Editor.Dragging(); dragging {
		metrics.IncDragMove(string(d.Axis))
	}
	s.record(ResourceStations, ActionMoved, st.ID, err)
	return st, ok, err
}

// PointerUp ends a drag. It returns the station that was dragged, if any.
func (s *ProjectService) PointerUp() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.project.Editor.Dragging()
	s.project.PointerUp()
	return d.StationID, ok
}

// Dragging returns the current drag, if any.
func (s *ProjectService) Dragging() (survey.Drag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project.Editor.Dragging()
}

// Snapshots

// Snapshot captures the current project.
func (s *ProjectService) Snapshot() survey.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project.Reconcile()
	return s.project.Snapshot(s.now())
}

// Save writes the snapshot to the store under SnapshotKey.
func (s *ProjectService) Save(ctx context.Context) (survey.Snapshot, error) {
	if s.store == nil {
		return survey.Snapshot{}, ErrNoStore
	}
	snap := s.Snapshot()
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return survey.Snapshot{}, err
	}

	start := time.Now()
	savedAt, _ := time.Parse(time.RFC3339, snap.SavedAt)
	err = s.store.Put(ctx, SnapshotKey, payload, savedAt)
	metrics.ObserveSnapshotSave(s.store.Backend(), err, time.Since(start))
	if err != nil {
		s.logger.Printf("save snapshot (%s): %v", s.store.Backend(), err)
		return survey.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Printf("saved snapshot %q (%s, %d bytes)", snap.Name, s.store.Backend(), len(payload))

	s.mu.Lock()
	s.record(ResourceProject, ActionSaved, SnapshotKey, nil)
	s.mu.Unlock()
	return snap, nil
}

// Load returns the last saved snapshot. The open project is not changed.
func (s *ProjectService) Load(ctx context.Context) (survey.Snapshot, error) {
	if s.store == nil {
		return survey.Snapshot{}, ErrNoStore
	}
	payload, err := s.store.Get(ctx, SnapshotKey)
	if err != nil {
		return survey.Snapshot{}, err
	}
	var snap survey.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return survey.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// History lists earlier saves, newest first.
func (s *ProjectService) History(ctx context.Context, limit int) ([]SnapshotRecord, error) {
	hs, ok := s.store.(HistoryStore)
	if !ok {
		return nil, ErrNoHistory
	}
	return hs.History(ctx, SnapshotKey, limit)
}

// Backend names the snapshot store, or "none".
func (s *ProjectService) Backend() string {
	if s.store == nil {
		return "none"
	}
	return s.store.Backend()
}
