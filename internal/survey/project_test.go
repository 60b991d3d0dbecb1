package survey

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

func TestSeed(t *testing.T) {
	p := NewProject("demo", DefaultSettings())
	if err := Seed(p); err != nil {
		t.Fatal(err)
	}
	r := p.Tonnage()
	if r.Stations != 5 || len(r.Layers) != 3 {
		t.Fatalf("report=%d stations %d layers", r.Stations, len(r.Layers))
	}
	// 184.73 m² under 92 + 192 + 440 kg/m²
	if math.Abs(r.Total-133.74452) > 1e-6 {
		t.Fatalf("total=%v, want 133.74452", r.Total)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p := NewProject("Hauptstraße", DefaultSettings())
	if err := Seed(p); err != nil {
		t.Fatal(err)
	}
	l := p.Layers.List()[1]
	sec := p.Stations.Sections()[2]
	if err := p.SetSection(l.ID, sec.Key(), false); err != nil {
		t.Fatal(err)
	}
	p.AddPOI("10", "", POIEntrance)
	p.AddGeofence("", []orb.Point{{0, 0}, {4, 0}, {4, 4}})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := p.Snapshot(now)
	if snap.SavedAt != "2026-03-01T12:00:00Z" {
		t.Fatalf("savedAt=%q", snap.SavedAt)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	q := FromSnapshot(decoded, DefaultSettings())

	if diff := cmp.Diff(p.Tonnage(), q.Tonnage()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if q.Activation.Get(l.ID, sec.Key()) {
		t.Fatal("deactivated section restored as active")
	}
	if q.Name != p.Name || len(q.POIs.List()) != 1 || len(q.Geofences.List()) != 1 {
		t.Fatalf("restored project=%+v", q)
	}
}

func TestProjectSectionUnknownLayer(t *testing.T) {
	p := NewProject("x", DefaultSettings())
	if _, err := p.ToggleSection("nope", "a-b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if err := p.SetSection("nope", "a-b", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
