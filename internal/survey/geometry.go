package survey

// Surface describes the drawing area of the station profile in pixels.
type Surface struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Margin float64 `yaml:"margin" json:"margin"`
}

// DefaultSurface matches the editor SVG viewBox.
var DefaultSurface = Surface{Width: 800, Height: 400, Margin: 50}

// Drawable is the horizontal extent available to stations.
func (s Surface) Drawable() float64 {
	return s.Width - 2*s.Margin
}

// Scale maps station positions to horizontal pixel coordinates.
type Scale struct {
	Min     float64
	Max     float64
	Surface Surface
}

// NewScale spans the positions of stations, which must be sorted.
func NewScale(stations []Station, surface Surface) Scale {
	sc := Scale{Min: 0, Max: 1, Surface: surface}
	if len(stations) > 0 {
		sc.Min = stations[0].Station
		sc.Max = stations[len(stations)-1].Station
	}
	return sc
}

// Range is the station span, clamped to 1 when it is zero.
func (sc Scale) Range() float64 {
	r := sc.Max - sc.Min
	if r == 0 {
		return 1
	}
	return r
}

// X returns the pixel coordinate of a station position.
func (sc Scale) X(station float64) float64 {
	return sc.Surface.Margin + (station-sc.Min)/sc.Range()*sc.Surface.Drawable()
}

// Station is the inverse of X.
func (sc Scale) Station(x float64) float64 {
	d := sc.Surface.Drawable()
	if d == 0 {
		return sc.Min
	}
	return sc.Min + (x-sc.Surface.Margin)/d*sc.Range()
}
