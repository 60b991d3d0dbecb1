package survey

import (
	"fmt"
	"slices"
	"strings"
)

// Layer is a material course. Density, Thickness and InstalledWeight are
// stored in SI units: kg/m³, m and kg/m².
type Layer struct {
	ID              string  `json:"id" doc:"Layer identifier"`
	Name            string  `json:"name" doc:"Display name" example:"Asphaltdeckschicht"`
	Recipe          string  `json:"recipe" doc:"Material recipe code" example:"AC 11 D S"`
	Density         float64 `json:"density" doc:"Density in kg/m³" example:"2300"`
	Thickness       float64 `json:"thickness" doc:"Thickness in m" example:"0.04"`
	InstalledWeight float64 `json:"installedWeight" doc:"Installed weight in kg/m² (derived)" example:"92"`
}

// Units selects how density and thickness are entered.
type Units string

const (
	// UnitsGramCentimeter takes density in g/cm³ and thickness in cm.
	UnitsGramCentimeter Units = "g/cm3,cm"
	// UnitsSI takes density in kg/m³ and thickness in m.
	UnitsSI Units = "kg/m3,m"
)

// ParseUnits accepts the canonical names plus a few spellings.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "", "g/cm3,cm", "g/cm³,cm", "gcm":
		return UnitsGramCentimeter, nil
	case "kg/m3,m", "kg/m³,m", "si":
		return UnitsSI, nil
	}
	return "", fmt.Errorf("%w: unknown units %q", ErrValidation, s)
}

// ToSI converts a density/thickness pair entered in u to kg/m³ and m.
func (u Units) ToSI(density, thickness float64) (float64, float64) {
	if u == UnitsSI {
		return density, thickness
	}
	return density * 1000, thickness / 100
}

// FromSI converts SI values back to u.
func (u Units) FromSI(density, thickness float64) (float64, float64) {
	if u == UnitsSI {
		return density, thickness
	}
	return density / 1000, thickness * 100
}

// InstalledWeight is the mass per area of a course in kg/m² for a density
// in kg/m³ and a thickness in m.
func InstalledWeight(density, thickness float64) float64 {
	return density * thickness
}

// LayerInput is a layer as entered in a form, in the given units.
type LayerInput struct {
	Name      string
	Recipe    string
	Density   string
	Thickness string
	Units     Units
}

// Layer fields accepted by LayerStore.Update.
const (
	FieldName      = "name"
	FieldRecipe    = "recipe"
	FieldDensity   = "density"
	FieldThickness = "thickness"
)

// LayerStore keeps layers in insertion order, which is the stacking order.
type LayerStore struct {
	items []Layer
	units Units
}

// NewLayerStore returns a store whose Update converts numeric input from units.
func NewLayerStore(units Units, layers ...Layer) *LayerStore {
	if units == "" {
		units = UnitsGramCentimeter
	}
	s := &LayerStore{units: units, items: slices.Clone(layers)}
	for i := range s.items {
		s.items[i].InstalledWeight = InstalledWeight(s.items[i].Density, s.items[i].Thickness)
	}
	return s
}

// Units returns the input units of the store.
func (s *LayerStore) Units() Units {
	return s.units
}

// List returns a copy of the layers in stacking order.
func (s *LayerStore) List() []Layer {
	return slices.Clone(s.items)
}

// Len returns the number of layers.
func (s *LayerStore) Len() int {
	return len(s.items)
}

// Get returns a layer by id.
func (s *LayerStore) Get(id string) (Layer, bool) {
	i := s.index(id)
	if i < 0 {
		return Layer{}, false
	}
	return s.items[i], true
}

// Add validates in and appends the layer on top of the stack.
func (s *LayerStore) Add(in LayerInput) (Layer, error) {
	name := strings.TrimSpace(in.Name)
	recipe := strings.TrimSpace(in.Recipe)
	if name == "" || recipe == "" || strings.TrimSpace(in.Density) == "" || strings.TrimSpace(in.Thickness) == "" {
		return Layer{}, fmt.Errorf("%w: name, recipe, density and thickness are required", ErrValidation)
	}
	density, err := ParseNumber(in.Density)
	if err != nil {
		return Layer{}, fmt.Errorf("density: %w", err)
	}
	thickness, err := ParseNumber(in.Thickness)
	if err != nil {
		return Layer{}, fmt.Errorf("thickness: %w", err)
	}
	if density <= 0 || thickness <= 0 {
		return Layer{}, fmt.Errorf("%w: density and thickness must be greater than 0", ErrValidation)
	}
	units := in.Units
	if units == "" {
		units = s.units
	}
	density, thickness = units.ToSI(density, thickness)
	l := Layer{
		ID:        NewID(),
		Name:      name,
		Recipe:    recipe,
		Density:   density,
		Thickness: thickness,
	}
	l.InstalledWeight = InstalledWeight(l.Density, l.Thickness)
	s.items = append(s.items, l)
	return l, nil
}

// Update assigns one field. Numeric fields are read in the store units and
// refresh the installed weight.
func (s *LayerStore) Update(id, field, value string) (Layer, error) {
	i := s.index(id)
	if i < 0 {
		return Layer{}, fmt.Errorf("layer %q: %w", id, ErrNotFound)
	}
	l := s.items[i]
	switch field {
	case FieldName:
		l.Name = value
	case FieldRecipe:
		l.Recipe = value
	case FieldDensity, FieldThickness:
		f, err := ParseNumber(value)
		if err != nil {
			return Layer{}, fmt.Errorf("%s: %w", field, err)
		}
		if f <= 0 {
			return Layer{}, fmt.Errorf("%w: %s must be greater than 0", ErrValidation, field)
		}
		density, thickness := s.units.ToSI(f, f)
		if field == FieldDensity {
			l.Density = density
		} else {
			l.Thickness = thickness
		}
	default:
		return Layer{}, fmt.Errorf("layer field %q: %w", field, ErrUnknownField)
	}
	l.InstalledWeight = InstalledWeight(l.Density, l.Thickness)
	s.items[i] = l
	return l, nil
}

// Delete removes a layer.
func (s *LayerStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("layer %q: %w", id, ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// Index returns the stacking index of a layer, or -1.
func (s *LayerStore) Index(id string) int {
	return s.index(id)
}

func (s *LayerStore) index(id string) int {
	return slices.IndexFunc(s.items, func(l Layer) bool { return l.ID == id })
}
