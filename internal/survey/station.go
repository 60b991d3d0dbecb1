package survey

import (
	"fmt"
	"slices"
)

// Station is a cross-section measured at a position along the route.
type Station struct {
	ID      string  `json:"id" doc:"Station identifier"`
	Station float64 `json:"station" doc:"Position along the route in meters" example:"10.5"`
	Width   float64 `json:"width" doc:"Cross-section width in meters" example:"3.2"`
}

// Station fields accepted by StationStore.Update.
const (
	FieldStation = "station"
	FieldWidth   = "width"
)

// DefaultDuplicateOffset is the distance in meters between a station and
// the copy created by DuplicateAfter.
const DefaultDuplicateOffset = 5.0

// StationStore keeps stations sorted by position.
type StationStore struct {
	items []Station
	// DuplicateOffset overrides DefaultDuplicateOffset when non-zero.
	DuplicateOffset float64
}

// NewStationStore returns a store holding a sorted copy of stations.
func NewStationStore(stations ...Station) *StationStore {
	s := &StationStore{items: slices.Clone(stations)}
	s.sort()
	return s
}

// List returns a copy of the stations in route order.
func (s *StationStore) List() []Station {
	return slices.Clone(s.items)
}

// Len returns the number of stations.
func (s *StationStore) Len() int {
	return len(s.items)
}

// Get returns a station by id.
func (s *StationStore) Get(id string) (Station, bool) {
	i := s.index(id)
	if i < 0 {
		return Station{}, false
	}
	return s.items[i], true
}

// Add inserts a new station. Both values must be present and the width
// must be positive.
func (s *StationStore) Add(station, width float64) (Station, error) {
	if !finite(station) || !finite(width) {
		return Station{}, fmt.Errorf("%w: station and width are required", ErrValidation)
	}
	if width <= 0 {
		return Station{}, fmt.Errorf("%w: width must be greater than 0", ErrValidation)
	}
	st := Station{ID: NewID(), Station: station, Width: width}
	s.insert(st)
	return st, nil
}

// AddText parses both values before adding, as entered in a form.
func (s *StationStore) AddText(station, width string) (Station, error) {
	pos, err := ParseNumber(station)
	if err != nil {
		return Station{}, fmt.Errorf("%w: station is required", ErrValidation)
	}
	w, err := ParseNumber(width)
	if err != nil {
		return Station{}, fmt.Errorf("%w: width is required", ErrValidation)
	}
	return s.Add(pos, w)
}

// Update parses value and assigns it to field, then re-sorts.
func (s *StationStore) Update(id, field, value string) (Station, error) {
	f, err := ParseNumber(value)
	if err != nil {
		return Station{}, err
	}
	return s.Set(id, field, f)
}

// Set assigns a numeric field and re-sorts the whole collection.
func (s *StationStore) Set(id, field string, value float64) (Station, error) {
	i := s.index(id)
	if i < 0 {
		return Station{}, fmt.Errorf("station %q: %w", id, ErrNotFound)
	}
	switch field {
	case FieldStation:
		s.items[i].Station = value
	case FieldWidth:
		if value <= 0 {
			return Station{}, fmt.Errorf("%w: width must be greater than 0", ErrValidation)
		}
		s.items[i].Width = value
	default:
		return Station{}, fmt.Errorf("station field %q: %w", field, ErrUnknownField)
	}
	st := s.items[i]
	s.sort()
	return st, nil
}

// Delete removes a station. Remaining stations keep their ids.
func (s *StationStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("station %q: %w", id, ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// DuplicateAfter adds a station a fixed offset after id with the same width.
func (s *StationStore) DuplicateAfter(id string) (Station, error) {
	src, ok := s.Get(id)
	if !ok {
		return Station{}, fmt.Errorf("station %q: %w", id, ErrNotFound)
	}
	offset := s.DuplicateOffset
	if offset == 0 {
		offset = DefaultDuplicateOffset
	}
	st := Station{ID: NewID(), Station: src.Station + offset, Width: src.Width}
	s.insert(st)
	return st, nil
}

// Sections returns the consecutive station pairs in route order.
func (s *StationStore) Sections() []Section {
	return Sections(s.items)
}

// MinMax returns the smallest and largest position. An empty store
// reports 0 and 1.
func (s *StationStore) MinMax() (lo, hi float64) {
	if len(s.items) == 0 {
		return 0, 1
	}
	// sorted, so the ends are the extremes
	return s.items[0].Station, s.items[len(s.items)-1].Station
}

func (s *StationStore) insert(st Station) {
	s.items = append(s.items, st)
	s.sort()
}

func (s *StationStore) sort() {
	slices.SortStableFunc(s.items, func(a, b Station) int {
		switch {
		case a.Station < b.Station:
			return -1
		case a.Station > b.Station:
			return 1
		}
		return 0
	})
}

func (s *StationStore) index(id string) int {
	return slices.IndexFunc(s.items, func(st Station) bool { return st.ID == id })
}

// Section is the route segment between two consecutive stations.
type Section struct {
	From Station
	To   Station
}

// Key identifies the section in the activation matrix.
func (sec Section) Key() string {
	return SectionKey(sec.From.ID, sec.To.ID)
}

// SectionKey builds the activation key of two station ids in route order.
func SectionKey(fromID, toID string) string {
	return fromID + "-" + toID
}

// Sections pairs up consecutive stations. stations must already be sorted.
func Sections(stations []Station) []Section {
	if len(stations) < 2 {
		return nil
	}
	out := make([]Section, 0, len(stations)-1)
	for i := 0; i+1 < len(stations); i++ {
		out = append(out, Section{From: stations[i], To: stations[i+1]})
	}
	return out
}
