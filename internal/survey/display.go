package survey

import "math"

// Zoom limits of the station profile.
const (
	MinZoom     = 0.2
	MaxZoom     = 1.5
	ZoomStep    = 0.1
	DefaultZoom = 0.5
)

// Display holds the view toggles of the editor page.
type Display struct {
	Zoom            float64 `json:"zoom" doc:"Profile height factor" minimum:"0.2" maximum:"1.5"`
	ShowMeasurement bool    `json:"showMeasurement" doc:"Show the measured profile"`
	ShowLayers      bool    `json:"showLayers" doc:"Show the layer stack"`
	ShowPOI         bool    `json:"showPoi" doc:"Show points of interest"`
	Fixed           bool    `json:"fixed" doc:"Pin the profile to the top of the page"`
}

// DefaultDisplay shows everything at half height.
func DefaultDisplay() Display {
	return Display{Zoom: DefaultZoom, ShowMeasurement: true, ShowLayers: true, ShowPOI: true}
}

// ZoomIn raises the zoom by one step.
func (d *Display) ZoomIn() {
	d.SetZoom(d.Zoom + ZoomStep)
}

// ZoomOut lowers the zoom by one step.
func (d *Display) ZoomOut() {
	d.SetZoom(d.Zoom - ZoomStep)
}

// SetZoom clamps z to the zoom limits and rounds it to a step.
func (d *Display) SetZoom(z float64) {
	z = math.Round(z*10) / 10
	d.Zoom = math.Min(MaxZoom, math.Max(MinZoom, z))
}
