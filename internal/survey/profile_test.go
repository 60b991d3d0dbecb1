package survey

import "testing"

func TestStackOffsets(t *testing.T) {
	layers := []Layer{{Thickness: 0.2}, {Thickness: 0.08}, {Thickness: 0.04}}
	got := StackOffsets(layers)
	want := []float64{0, 0.2, 0.28}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("offset[%d]=%v, want %v", i, got[i], want[i])
		}
	}
	if len(StackOffsets(nil)) != 0 {
		t.Fatal("offsets for empty stack")
	}
}

func TestBuildProfile(t *testing.T) {
	p := NewProject("profile", DefaultSettings())
	if err := Seed(p); err != nil {
		t.Fatal(err)
	}
	first := p.Stations.List()[0]
	poi, _ := p.AddPOI("27.85", "", POIBridge)
	p.PointerDown(TargetWidthBar, first.ID, 50, 0)

	pr := p.Profile()
	if len(pr.Stations) != 5 || len(pr.Layers) != 3 || len(pr.POIs) != 1 {
		t.Fatalf("profile counts: %d stations %d layers %d pois", len(pr.Stations), len(pr.Layers), len(pr.POIs))
	}
	if !pr.Stations[0].Dragged || pr.Stations[1].Dragged {
		t.Fatal("dragged flag on wrong station")
	}
	if pr.Stations[0].X != 50 || pr.Stations[4].X != 750 {
		t.Fatalf("station x=%v..%v, want 50..750", pr.Stations[0].X, pr.Stations[4].X)
	}
	if !approx(pr.POIs[0].X, 400) || pr.POIs[0].ID != poi.ID {
		t.Fatalf("poi mark=%+v, want x 400", pr.POIs[0])
	}
	// the bottom layer is drawn lowest, upper layers sit on top of it
	for i := 1; i < len(pr.Layers); i++ {
		below, above := pr.Layers[i-1], pr.Layers[i]
		if !approx(above.Y+above.Height, below.Y) {
			t.Fatalf("layer %d not stacked on %d: %+v %+v", i, i-1, above, below)
		}
	}
	if pr.Layers[0].Color != LayerColor(0) || len(pr.Layers[0].Sections) != 4 {
		t.Fatalf("band=%+v", pr.Layers[0])
	}
	if pr.FillPath == "" {
		t.Fatal("no outline for five stations")
	}
}

func TestBuildProfileEmpty(t *testing.T) {
	pr := BuildProfile(nil, nil, nil, NewActivation(true), DefaultSurface, DefaultDisplay(), "")
	if pr.FillPath != "" || len(pr.Stations) != 0 {
		t.Fatalf("empty profile=%+v", pr)
	}
	if pr.Height != DefaultSurface.Height {
		t.Fatalf("height=%v, want %v", pr.Height, DefaultSurface.Height)
	}
}
