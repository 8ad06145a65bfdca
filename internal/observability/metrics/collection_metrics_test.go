package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"regionview/internal/collection"
)

func TestCollectionCollectorObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollectionCollector(reg, "regionview_test")

	diag := collection.Diagnostics{
		Regions:           4,
		PendingMessages:   2,
		EventsCreated:     10,
		EventsUpdated:     5,
		EventsDestroyed:   1,
		EventsRoleChanged: 3,
		SeeksFound:        7,
		SeeksLimited:      2,
		SeeksEnded:        1,
	}
	collector.Observe(diag)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics to be registered")
	}
	for _, mf := range mfs {
		if mf.GetName() == "regionview_test_regions" {
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 4 {
				t.Fatalf("regions gauge = %v, want 4", got)
			}
		}
	}
}

func TestStartServerEmptyAddress(t *testing.T) {
	if err := StartServer(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestStartServerShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, "127.0.0.1:0")
	}()

	// Give the listener a moment to come up before asking it to stop.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("server exit: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down after cancel")
	}
}
