package survey

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
)

func sorted(stations []Station) bool {
	for i := 1; i < len(stations); i++ {
		if stations[i-1].Station > stations[i].Station {
			return false
		}
	}
	return true
}

func TestStationAddKeepsOrder(t *testing.T) {
	s := NewStationStore()
	for _, pos := range []float64{25, 0, 10.5, 40.3, 10.5} {
		if _, err := s.Add(pos, 3); err != nil {
			t.Fatal(err)
		}
		if !sorted(s.List()) {
			t.Fatalf("not sorted after add %v: %+v", pos, s.List())
		}
	}
	if s.Len() != 5 {
		t.Fatalf("len=%d, want 5", s.Len())
	}
}

func TestStationSortInvariantRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewStationStore()
	var ids []string
	for i := 0; i < 200; i++ {
		switch {
		case len(ids) == 0 || rng.Intn(3) == 0:
			st, err := s.Add(rng.Float64()*100, 1+rng.Float64()*3)
			if err != nil {
				t.Fatal(err)
			}
			ids = append(ids, st.ID)
		case rng.Intn(2) == 0:
			id := ids[rng.Intn(len(ids))]
			if _, err := s.Update(id, FieldStation, strconv.FormatFloat(rng.Float64()*100, 'f', 2, 64)); err != nil {
				t.Fatal(err)
			}
		default:
			id := ids[rng.Intn(len(ids))]
			if _, err := s.Update(id, FieldWidth, "2.75"); err != nil {
				t.Fatal(err)
			}
		}
		if !sorted(s.List()) {
			t.Fatalf("step %d: not sorted: %+v", i, s.List())
		}
	}
}

func TestStationAddValidation(t *testing.T) {
	s := NewStationStore()
	for _, tc := range [][2]string{{"", "2"}, {"10", ""}, {"abc", "2"}, {"10", "0"}, {"10", "-1"}} {
		if _, err := s.AddText(tc[0], tc[1]); !errors.Is(err, ErrValidation) {
			t.Fatalf("AddText(%q, %q) err=%v, want ErrValidation", tc[0], tc[1], err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("store changed on failed add: %+v", s.List())
	}
}

func TestStationUpdateReorders(t *testing.T) {
	s := NewStationStore()
	a, _ := s.Add(0, 2)
	b, _ := s.Add(10, 2)
	c, _ := s.Add(20, 2)

	if _, err := s.Update(a.ID, FieldStation, "15"); err != nil {
		t.Fatal(err)
	}
	got := s.List()
	want := []string{b.ID, a.ID, c.ID}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order[%d]=%s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestStationUpdateErrors(t *testing.T) {
	s := NewStationStore()
	a, _ := s.Add(0, 2)
	if _, err := s.Update(a.ID, FieldStation, "x"); !errors.Is(err, ErrParse) {
		t.Fatalf("err=%v, want ErrParse", err)
	}
	if _, err := s.Update("nope", FieldStation, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if _, err := s.Update(a.ID, "height", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err=%v, want ErrUnknownField", err)
	}
	if _, err := s.Update(a.ID, FieldWidth, "0"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v, want ErrValidation", err)
	}
	if _, err := s.Update(a.ID, FieldWidth, "3,5"); err != nil {
		t.Fatalf("comma decimal: %v", err)
	}
	if got, _ := s.Get(a.ID); got.Width != 3.5 {
		t.Fatalf("width=%v, want 3.5", got.Width)
	}
}

func TestStationDeleteKeepsIDs(t *testing.T) {
	s := NewStationStore()
	a, _ := s.Add(0, 2)
	b, _ := s.Add(10, 2)
	c, _ := s.Add(20, 2)
	if err := s.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	got := s.List()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("after delete: %+v", got)
	}
	if err := s.Delete(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err=%v, want ErrNotFound", err)
	}
}

func TestStationDuplicateAfter(t *testing.T) {
	s := NewStationStore()
	a, _ := s.Add(10, 3.2)
	_, _ = s.Add(12, 1)
	d, err := s.DuplicateAfter(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Station != 15 || d.Width != 3.2 {
		t.Fatalf("duplicate=%+v, want station 15 width 3.2", d)
	}
	if d.ID == a.ID {
		t.Fatal("duplicate reused the id")
	}
	got := s.List()
	if got[2].ID != d.ID {
		t.Fatalf("duplicate not sorted last: %+v", got)
	}
}

func TestSections(t *testing.T) {
	s := NewStationStore()
	if len(s.Sections()) != 0 {
		t.Fatal("empty store has sections")
	}
	a, _ := s.Add(0, 1)
	if len(s.Sections()) != 0 {
		t.Fatal("single station has sections")
	}
	b, _ := s.Add(5, 1)
	secs := s.Sections()
	if len(secs) != 1 || secs[0].Key() != a.ID+"-"+b.ID {
		t.Fatalf("sections=%+v", secs)
	}
}
