package survey

import (
	"math"
	"math/rand"
	"testing"
)

// scenario builds the three-station route with one 92 kg/m² layer.
func scenario(t *testing.T) (*Project, Layer) {
	t.Helper()
	p := NewProject("test", DefaultSettings())
	for _, st := range [][2]string{{"0", "2.5"}, {"10.5", "3.2"}, {"25", "2.8"}} {
		if _, err := p.AddStation(st[0], st[1]); err != nil {
			t.Fatal(err)
		}
	}
	l, err := p.AddLayer(LayerInput{Name: "Deck", Recipe: "AC 11 D S", Density: "2300", Thickness: "0.04", Units: UnitsSI})
	if err != nil {
		t.Fatal(err)
	}
	return p, l
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func TestSectionArea(t *testing.T) {
	a := Station{Station: 0, Width: 2.5}
	b := Station{Station: 10.5, Width: 3.2}
	if got := SectionArea(a, b); !approx(got, 29.925) {
		t.Fatalf("area=%v, want 29.925", got)
	}
	if got := SectionArea(b, a); !approx(got, 29.925) {
		t.Fatalf("reversed area=%v, want 29.925", got)
	}
	if got := SectionArea(a, Station{Station: 0, Width: 9}); got != 0 {
		t.Fatalf("coincident area=%v, want 0", got)
	}
}

func TestSectionAreaNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := Station{Station: rng.Float64()*200 - 100, Width: rng.Float64() * 10}
		b := Station{Station: rng.Float64()*200 - 100, Width: rng.Float64() * 10}
		if SectionArea(a, b) < 0 {
			t.Fatalf("negative area for %+v %+v", a, b)
		}
	}
}

func TestTonnageScenario(t *testing.T) {
	p, l := scenario(t)
	r := p.Tonnage()
	if len(r.Layers) != 1 {
		t.Fatalf("layers=%d, want 1", len(r.Layers))
	}
	lr := r.Layers[0]
	if !approx(lr.Area, 73.425) {
		t.Fatalf("area=%v, want 73.425", lr.Area)
	}
	if got := round3(lr.Tonnage); got != 6.755 {
		t.Fatalf("tonnage=%v, want 6.755", got)
	}
	if lr.ActiveSections != 2 || lr.TotalSections != 2 {
		t.Fatalf("sections=%d/%d, want 2/2", lr.ActiveSections, lr.TotalSections)
	}

	// deactivate the second section
	key := lr.Sections[1].Key
	if active, err := p.ToggleSection(l.ID, key); err != nil || active {
		t.Fatalf("toggle=%v,%v, want false,nil", active, err)
	}
	r = p.Tonnage()
	if got := round3(r.Layers[0].Tonnage); got != 2.753 {
		t.Fatalf("tonnage=%v, want 2.753", got)
	}
	if got := round3(LayerTonnage(p.Stations.List(), l, p.Activation)); got != 2.753 {
		t.Fatalf("LayerTonnage=%v, want 2.753", got)
	}
}

func TestTonnageAdditivity(t *testing.T) {
	p, _ := scenario(t)
	if _, err := p.AddLayer(LayerInput{Name: "Base", Recipe: "STS", Density: "2.2", Thickness: "20"}); err != nil {
		t.Fatal(err)
	}
	stations, layers := p.Stations.List(), p.Layers.List()
	secs := Sections(stations)

	// every combination of active sections over both layers
	n := len(secs) * len(layers)
	for mask := 0; mask < 1<<n; mask++ {
		act := NewActivation(false)
		bit := 0
		for _, l := range layers {
			for _, sec := range secs {
				act.Set(l.ID, sec.Key(), mask&(1<<bit) != 0)
				bit++
			}
		}
		var sum float64
		for _, l := range layers {
			sum += LayerTonnage(stations, l, act)
		}
		if total := ProjectTotal(stations, layers, act); total != sum {
			t.Fatalf("mask %b: total=%v, sum=%v", mask, total, sum)
		}
		if r := Compute(stations, layers, act); r.Total != sum {
			t.Fatalf("mask %b: report total=%v, sum=%v", mask, r.Total, sum)
		}
		if mask == 0 && sum != 0 {
			t.Fatalf("all inactive total=%v, want 0", sum)
		}
	}
}

func TestTonnageDegenerate(t *testing.T) {
	act := NewActivation(true)
	layer := Layer{ID: "l", InstalledWeight: 92}
	if got := Compute(nil, []Layer{layer}, act).Total; got != 0 {
		t.Fatalf("no stations total=%v", got)
	}
	one := []Station{{ID: "a", Station: 3, Width: 2}}
	act.Reconcile(one, []Layer{layer})
	r := Compute(one, []Layer{layer}, act)
	if r.Total != 0 || r.Layers[0].TotalSections != 0 {
		t.Fatalf("one station report=%+v", r)
	}
	if got := Compute(nil, nil, act); got.Total != 0 || len(got.Layers) != 0 {
		t.Fatalf("empty report=%+v", got)
	}
	// garbage layer values compute to zero instead of failing
	zero := Layer{ID: "z"}
	two := []Station{{ID: "a", Station: 0, Width: 1}, {ID: "b", Station: 5, Width: 1}}
	act.Reconcile(two, []Layer{zero})
	if got := LayerTonnage(two, zero, act); got != 0 {
		t.Fatalf("zero weight tonnage=%v", got)
	}
}
