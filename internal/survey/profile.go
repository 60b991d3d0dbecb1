package survey

import (
	"fmt"
	"strings"
)

// Drawing scales of the profile at zoom 1.
const (
	widthPixelsPerMeter     = 20.0
	thicknessPixelsPerMeter = 150.0
)

// layerColors cycles through the stack, bottom first.
var layerColors = []string{"#ef4444", "#f97316", "#eab308"}

// LayerColor returns the display color of the layer at stacking index i.
func LayerColor(i int) string {
	return layerColors[i%len(layerColors)]
}

// StationMark is a station as drawn on the profile.
type StationMark struct {
	ID         string
	Station    float64
	Width      float64
	X          float64
	HalfHeight float64
	Top        float64
	Bottom     float64
	Dragged    bool
}

// SectionBand is one section of a layer band.
type SectionBand struct {
	Key    string
	X1     float64
	X2     float64
	Active bool
}

// LayerBand is a layer in the stack. Offset is the summed thickness of the
// layers below, in meters; Y and Height are pixels.
type LayerBand struct {
	ID        string
	Name      string
	Index     int
	Color     string
	Offset    float64
	Thickness float64
	Y         float64
	Height    float64
	Sections  []SectionBand
}

// POIMark is a point of interest positioned on the profile.
type POIMark struct {
	ID     string
	Name   string
	Type   POIType
	Symbol string
	X      float64
}

// Profile carries every value the profile renderer needs. It has no state
// of its own and is rebuilt after each change.
type Profile struct {
	Surface  Surface
	Scale    Scale
	Display  Display
	CenterY  float64
	Height   float64
	BaseY    float64
	Stations []StationMark
	Layers   []LayerBand
	POIs     []POIMark
	TopPath  string
	BotPath  string
	FillPath string
}

// StackOffsets returns, per layer, the cumulative thickness of the layers
// below it. Index 0 is the bottom of the stack.
func StackOffsets(layers []Layer) []float64 {
	out := make([]float64, len(layers))
	var sum float64
	for i, l := range layers {
		out[i] = sum
		sum += l.Thickness
	}
	return out
}

// BuildProfile derives the drawing of stations, layers and points.
func BuildProfile(stations []Station, layers []Layer, pois []POI, act *Activation, surface Surface, display Display, dragged string) Profile {
	zoom := display.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	sc := NewScale(stations, surface)
	p := Profile{
		Surface: surface,
		Scale:   sc,
		Display: display,
		Height:  surface.Height,
		CenterY: surface.Height / 2,
	}

	var maxHalf float64
	for _, st := range stations {
		half := st.Width * widthPixelsPerMeter * zoom
		if half > maxHalf {
			maxHalf = half
		}
		p.Stations = append(p.Stations, StationMark{
			ID:         st.ID,
			Station:    st.Station,
			Width:      st.Width,
			X:          sc.X(st.Station),
			HalfHeight: half,
			Top:        p.CenterY - half,
			Bottom:     p.CenterY + half,
			Dragged:    st.ID == dragged,
		})
	}
	if len(p.Stations) > 1 {
		var top, bot, back []string
		for i, m := range p.Stations {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			top = append(top, fmt.Sprintf("%s %.2f %.2f", cmd, m.X, m.Top))
			bot = append(bot, fmt.Sprintf("%s %.2f %.2f", cmd, m.X, m.Bottom))
		}
		for i := len(p.Stations) - 1; i >= 0; i-- {
			m := p.Stations[i]
			back = append(back, fmt.Sprintf("L %.2f %.2f", m.X, m.Bottom))
		}
		p.TopPath = strings.Join(top, " ")
		p.BotPath = strings.Join(bot, " ")
		p.FillPath = p.TopPath + " " + strings.Join(back, " ") + " Z"
	}

	// the stack is drawn under the widest cross-section, growing upward
	p.BaseY = p.CenterY + maxHalf + 40
	for i, off := range StackOffsets(layers) {
		l := layers[i]
		height := l.Thickness * thicknessPixelsPerMeter * zoom
		band := LayerBand{
			ID:        l.ID,
			Name:      l.Name,
			Index:     i,
			Color:     LayerColor(i),
			Offset:    off,
			Thickness: l.Thickness,
			Y:         p.BaseY - (off+l.Thickness)*thicknessPixelsPerMeter*zoom,
			Height:    height,
		}
		for _, sec := range Sections(stations) {
			band.Sections = append(band.Sections, SectionBand{
				Key:    sec.Key(),
				X1:     sc.X(sec.From.Station),
				X2:     sc.X(sec.To.Station),
				Active: act.Get(l.ID, sec.Key()),
			})
		}
		p.Layers = append(p.Layers, band)
	}
	if p.BaseY+20 > p.Height {
		p.Height = p.BaseY + 20
	}

	for _, poi := range pois {
		p.POIs = append(p.POIs, POIMark{
			ID:     poi.ID,
			Name:   poi.Name,
			Type:   poi.Type,
			Symbol: poi.Type.Symbol(),
			X:      sc.X(poi.Station),
		})
	}
	return p
}
