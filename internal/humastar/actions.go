package humastar

import (
	"fmt"
	"strings"
)

// Action is a hypermedia action that applies to one resource, emitted as an
// RFC 8288 Link header with method and title parameters:
//
//	</api/v1/stations/abc/duplicate>; rel="duplicate"; method="POST"; title="Duplicate station"
type Action struct {
	Rel    string
	Href   string
	Method string
	Title  string
	Schema string // JSON Schema of the request body, if any
}

// Actor is implemented by response bodies that carry their own actions.
type Actor interface {
	Actions() []Action
}

// LinkHeader formats the action as a Link header value.
func (a Action) LinkHeader() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<%s>; rel="%s"`, a.Href, a.Rel)
	if a.Method != "" {
		fmt.Fprintf(&b, `; method="%s"`, a.Method)
	}
	if a.Title != "" {
		fmt.Fprintf(&b, `; title="%s"`, a.Title)
	}
	if a.Schema != "" {
		fmt.Fprintf(&b, `; schema="%s"`, a.Schema)
	}
	return b.String()
}

// ActionDef is an action template. Pattern holds one %s for the resource ID.
type ActionDef struct {
	Rel     string
	Pattern string
	Method  string
	Title   string
	Schema  string
}

// ActionsFor expands defs for one resource ID.
func ActionsFor(id string, defs []ActionDef) []Action {
	actions := make([]Action, len(defs))
	for i, d := range defs {
		actions[i] = Action{
			Rel:    d.Rel,
			Href:   fmt.Sprintf(d.Pattern, id),
			Method: d.Method,
			Title:  d.Title,
			Schema: d.Schema,
		}
	}
	return actions
}
