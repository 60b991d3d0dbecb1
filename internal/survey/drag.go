package survey

import (
	"fmt"
	"math"
)

// Pointer handling of the station profile. A drag on a station's width bar
// moves the station along the route (horizontal gesture) or changes its
// width (vertical gesture).

// Target is the element under the pointer on pointer-down.
type Target string

const (
	// TargetWidthBar is a station's width bar; pressing it starts a drag.
	TargetWidthBar Target = "bar"
	// TargetAction is a delete or edit control; it consumes the press.
	TargetAction Target = "action"
)

// Axis is the classified direction of a drag gesture.
type Axis string

const (
	AxisNone       Axis = ""
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// AxisMode controls when a gesture is classified.
type AxisMode string

const (
	// AxisDynamic reclassifies on every move, so a gesture may switch
	// between moving and resizing.
	AxisDynamic AxisMode = "dynamic"
	// AxisLocked keeps the axis of the first move until release.
	AxisLocked AxisMode = "locked"
)

// Drag defaults.
const (
	DefaultDragSensitivity = 0.02 // meters of width per pixel
	DefaultMinWidth        = 0.1  // meters
)

// StationMover is the part of a station store the editor mutates.
type StationMover interface {
	Get(id string) (Station, bool)
	Set(id, field string, value float64) (Station, error)
}

// Drag is the state of an ongoing drag.
type Drag struct {
	StationID    string  `json:"stationId"`
	StartX       float64 `json:"startX"`
	StartY       float64 `json:"startY"`
	StartStation float64 `json:"startStation"`
	StartWidth   float64 `json:"startWidth"`
	// Range and Drawable are taken from the scale at pointer-down.
	Range    float64 `json:"range"`
	Drawable float64 `json:"drawable"`
	Axis     Axis    `json:"axis"`
}

// Editor is the drag state machine. The zero value is not usable; use
// NewEditor.
type Editor struct {
	Sensitivity float64
	MinWidth    float64
	Mode        AxisMode

	stations StationMover
	drag     *Drag
}

// NewEditor returns an idle editor mutating stations.
func NewEditor(stations StationMover) *Editor {
	return &Editor{
		Sensitivity: DefaultDragSensitivity,
		MinWidth:    DefaultMinWidth,
		Mode:        AxisDynamic,
		stations:    stations,
	}
}

// Dragging returns the current drag, if any.
func (e *Editor) Dragging() (Drag, bool) {
	if e.drag == nil {
		return Drag{}, false
	}
	return *e.drag, true
}

// PointerDown starts a drag of stationID. Presses on action controls are
// consumed and leave the editor idle. x is in surface pixels; y may be in
// any vertical unit consistent with later moves.
func (e *Editor) PointerDown(target Target, stationID string, x, y float64, sc Scale) error {
	if target == TargetAction {
		return nil
	}
	st, ok := e.stations.Get(stationID)
	if !ok {
		return fmt.Errorf("station %q: %w", stationID, ErrNotFound)
	}
	e.drag = &Drag{
		StationID:    stationID,
		StartX:       x,
		StartY:       y,
		StartStation: st.Station,
		StartWidth:   st.Width,
		Range:        sc.Range(),
		Drawable:     sc.Surface.Drawable(),
	}
	return nil
}

// PointerMove applies the gesture to the dragged station and returns it.
// ok is false when no drag is in progress.
func (e *Editor) PointerMove(x, y float64) (st Station, ok bool, err error) {
	d := e.drag
	if d == nil {
		return Station{}, false, nil
	}
	dx := x - d.StartX
	dy := d.StartY - y // upward increases width

	axis := classify(dx, dy)
	if e.Mode == AxisLocked {
		if d.Axis == AxisNone && (dx != 0 || dy != 0) {
			d.Axis = axis
		}
		if d.Axis != AxisNone {
			axis = d.Axis
		}
	} else {
		d.Axis = axis
	}

	if axis == AxisHorizontal {
		var delta float64
		if d.Drawable != 0 {
			delta = dx / d.Drawable * d.Range
		}
		st, err = e.stations.Set(d.StationID, FieldStation, math.Max(0, d.StartStation+delta))
	} else {
		minWidth := e.MinWidth
		if minWidth <= 0 {
			minWidth = DefaultMinWidth
		}
		st, err = e.stations.Set(d.StationID, FieldWidth, math.Max(minWidth, d.StartWidth+dy*e.Sensitivity))
	}
	if err != nil {
		// the station was deleted mid-drag
		e.drag = nil
		return Station{}, false, err
	}
	return st, true, nil
}

// PointerUp ends the drag. Changes already applied are kept.
func (e *Editor) PointerUp() {
	e.drag = nil
}

// PointerLeave is handled like PointerUp.
func (e *Editor) PointerLeave() {
	e.PointerUp()
}

func classify(dx, dy float64) Axis {
	if math.Abs(dx) > math.Abs(dy) {
		return AxisHorizontal
	}
	return AxisVertical
}
