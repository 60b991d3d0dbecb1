// Package survey contains the station survey model: stations, material
// layers, section activation, points of interest and the tonnage engine.
//
// Nothing in this package locks. Callers serialize mutations (see
// service.ProjectService), which mirrors a single UI event loop.
package survey

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrValidation is returned when a required field is missing on add.
	ErrValidation = errors.New("validation failed")
	// ErrParse is returned when a numeric field cannot be parsed.
	ErrParse = errors.New("not a number")
	// ErrNotFound is returned for unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrUnknownField is returned by Update for fields that do not exist.
	ErrUnknownField = errors.New("unknown field")
)

// ParseNumber parses a user-entered number. Commas are accepted as the
// decimal separator. Blank, NaN and infinite values are rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrParse)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return f, nil
}

// NewID returns a fresh unique identifier.
func NewID() string {
	return uuid.NewString()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
