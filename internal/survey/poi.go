package survey

import (
	"fmt"
	"slices"
	"strings"
)

// POIType is the kind of a point of interest.
type POIType string

// Known point of interest types.
const (
	POIStart       POIType = "Beginn"
	POIEnd         POIType = "Ende"
	POIEntrance    POIType = "Einfahrt"
	POITurnaround  POIType = "Wendeplatz"
	POICleaning    POIType = "Putzplatz"
	POIHighVoltage POIType = "Hochspannung"
	POIBridge      POIType = "Brücke"
	POICustom      POIType = "Custom"
)

// POITypes lists the types in display order.
var POITypes = []POIType{
	POIStart, POIEnd, POIEntrance, POITurnaround,
	POICleaning, POIHighVoltage, POIBridge, POICustom,
}

var poiSymbols = map[POIType]string{
	POIStart:       "🚀",
	POIEnd:         "🏁",
	POIEntrance:    "🚪",
	POITurnaround:  "🔄",
	POICleaning:    "🧹",
	POIHighVoltage: "⚡",
	POIBridge:      "🌉",
	POICustom:      "📍",
}

// Symbol returns the marker symbol of t. Unknown types use the custom pin.
func (t POIType) Symbol() string {
	if s, ok := poiSymbols[t]; ok {
		return s
	}
	return poiSymbols[POICustom]
}

// Known reports whether t is one of POITypes.
func (t POIType) Known() bool {
	_, ok := poiSymbols[t]
	return ok
}

// DefaultName is used for points added without a name.
func (t POIType) DefaultName() string {
	return t.Symbol() + " " + string(t)
}

// POI is a labelled marker at a station position.
type POI struct {
	ID      string  `json:"id" doc:"POI identifier"`
	Station float64 `json:"station" doc:"Position along the route in meters" example:"12.5"`
	Name    string  `json:"name" doc:"Label" example:"🌉 Brücke"`
	Type    POIType `json:"type" doc:"Marker type" example:"Brücke"`
}

// POI fields accepted by POIStore.Update.
const FieldType = "type"

// POIStore keeps points of interest sorted by station.
type POIStore struct {
	items []POI
}

// NewPOIStore returns a store holding a sorted copy of pois.
func NewPOIStore(pois ...POI) *POIStore {
	s := &POIStore{items: slices.Clone(pois)}
	s.sort()
	return s
}

// List returns a copy of the points in route order.
func (s *POIStore) List() []POI {
	return slices.Clone(s.items)
}

// Get returns a point by id.
func (s *POIStore) Get(id string) (POI, bool) {
	i := s.index(id)
	if i < 0 {
		return POI{}, false
	}
	return s.items[i], true
}

// Add inserts a point. The station is required; the type defaults to
// Beginn and the name to the type's symbol and name.
func (s *POIStore) Add(station, name string, typ POIType) (POI, error) {
	if strings.TrimSpace(station) == "" {
		return POI{}, fmt.Errorf("%w: station is required", ErrValidation)
	}
	pos, err := ParseNumber(station)
	if err != nil {
		return POI{}, fmt.Errorf("station: %w", err)
	}
	return s.AddAt(pos, name, typ), nil
}

// AddAt inserts a point at an already parsed position.
func (s *POIStore) AddAt(station float64, name string, typ POIType) POI {
	if typ == "" {
		typ = POIStart
	}
	if strings.TrimSpace(name) == "" {
		name = typ.DefaultName()
	}
	p := POI{ID: NewID(), Station: station, Name: name, Type: typ}
	s.items = append(s.items, p)
	s.sort()
	return p
}

// Update assigns one field; a station change re-sorts.
func (s *POIStore) Update(id, field, value string) (POI, error) {
	i := s.index(id)
	if i < 0 {
		return POI{}, fmt.Errorf("poi %q: %w", id, ErrNotFound)
	}
	switch field {
	case FieldStation:
		f, err := ParseNumber(value)
		if err != nil {
			return POI{}, fmt.Errorf("station: %w", err)
		}
		s.items[i].Station = f
	case FieldName:
		s.items[i].Name = value
	case FieldType:
		s.items[i].Type = POIType(value)
	default:
		return POI{}, fmt.Errorf("poi field %q: %w", field, ErrUnknownField)
	}
	p := s.items[i]
	s.sort()
	return p, nil
}

// Delete removes a point.
func (s *POIStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("poi %q: %w", id, ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *POIStore) sort() {
	slices.SortStableFunc(s.items, func(a, b POI) int {
		switch {
		case a.Station < b.Station:
			return -1
		case a.Station > b.Station:
			return 1
		}
		return 0
	})
}

func (s *POIStore) index(id string) int {
	return slices.IndexFunc(s.items, func(p POI) bool { return p.ID == id })
}
