package humastar

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Page is the Datastar bootstrap of a full page: the initial signal values
// and the SSE endpoints fetched on load.
type Page struct {
	Signals map[string]any
	Inits   []string
}

// SignalsJSON returns the data-signals attribute value.
func (p Page) SignalsJSON() (string, error) {
	signals := p.Signals
	if signals == nil {
		signals = map[string]any{}
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return "", fmt.Errorf("marshal signals: %w", err)
	}
	return string(data), nil
}

// DataInit returns the data-init attribute value, e.g.
// "@get('/api/v1/editor/events')".
func (p Page) DataInit() string {
	parts := make([]string, 0, len(p.Inits))
	for _, url := range p.Inits {
		parts = append(parts, fmt.Sprintf("@get('%s')", url))
	}
	return strings.Join(parts, "; ")
}
