package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveBeforeInitIsNoop(t *testing.T) {
	if mutationsTotal != nil {
		t.Skip("collectors already registered")
	}
	ObserveMutation("stations", "created", nil)
	ObserveTonnage(1, 2, 3, time.Millisecond)
	IncDragMove("")
}

func TestCollectors(t *testing.T) {
	Init()
	Init() // second call must not re-register

	before := testutil.ToFloat64(mutationsTotal.WithLabelValues("layers", "created", ResultError))
	ObserveMutation("layers", "created", errors.New("boom"))
	if got := testutil.ToFloat64(mutationsTotal.WithLabelValues("layers", "created", ResultError)); got != before+1 {
		t.Fatalf("mutations=%v, want %v", got, before+1)
	}

	ObserveTonnage(6.755, 3, 1, time.Microsecond)
	if got := testutil.ToFloat64(projectTonnes); got != 6.755 {
		t.Fatalf("tonnes=%v, want 6.755", got)
	}
	if got := testutil.ToFloat64(projectCounts.WithLabelValues("stations")); got != 3 {
		t.Fatalf("stations=%v, want 3", got)
	}

	ObserveReportExport("xlsx", nil, time.Millisecond)
	SetEventSubscribers(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, name := range []string{"road_mutations_total", "road_project_tonnes", "road_report_export_total", "road_event_subscribers"} {
		if !strings.Contains(body, name) {
			t.Fatalf("metrics output missing %s", name)
		}
	}
}
