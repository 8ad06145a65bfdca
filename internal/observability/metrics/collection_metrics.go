package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regionview/internal/collection"
)

// CollectionCollector exposes region collection diagnostics as
// Prometheus metrics.
type CollectionCollector struct {
	regions           prometheus.Gauge
	pendingMessages   prometheus.Gauge
	eventsCreated     prometheus.Gauge
	eventsUpdated     prometheus.Gauge
	eventsDestroyed   prometheus.Gauge
	eventsRoleChanged prometheus.Gauge
	seeksFound        prometheus.Gauge
	seeksLimited      prometheus.Gauge
	seeksEnded        prometheus.Gauge
}

// NewCollectionCollector creates a collector registered on the provided registry (default if nil).
func NewCollectionCollector(reg prometheus.Registerer, namespace string) *CollectionCollector {
	if namespace == "" {
		namespace = "regionview"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	builder := promauto.With(reg)
	return &CollectionCollector{
		regions: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regions",
			Help:      "Number of regions currently tracked by the collection.",
		}),
		pendingMessages: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_messages",
			Help:      "Messages waiting in the collection mailbox.",
		}),
		eventsCreated: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_created",
			Help:      "Create events applied since startup.",
		}),
		eventsUpdated: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_updated",
			Help:      "Update events applied since startup.",
		}),
		eventsDestroyed: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_destroyed",
			Help:      "Destroy events applied since startup.",
		}),
		eventsRoleChanged: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_role_changed",
			Help:      "Role change events applied since startup.",
		}),
		seeksFound: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seeks_found",
			Help:      "Seek queries answered with a matching region.",
		}),
		seeksLimited: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seeks_limit_exceeded",
			Help:      "Seek queries that ran out of scan budget.",
		}),
		seeksEnded: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seeks_ended",
			Help:      "Seek queries that exhausted the keyspace without a match.",
		}),
	}
}

// Observe updates metrics from the supplied diagnostics sample.
func (c *CollectionCollector) Observe(diag collection.Diagnostics) {
	c.regions.Set(float64(diag.Regions))
	c.pendingMessages.Set(float64(diag.PendingMessages))
	c.eventsCreated.Set(float64(diag.EventsCreated))
	c.eventsUpdated.Set(float64(diag.EventsUpdated))
	c.eventsDestroyed.Set(float64(diag.EventsDestroyed))
	c.eventsRoleChanged.Set(float64(diag.EventsRoleChanged))
	c.seeksFound.Set(float64(diag.SeeksFound))
	c.seeksLimited.Set(float64(diag.SeeksLimited))
	c.seeksEnded.Set(float64(diag.SeeksEnded))
}

// Poll samples the collection on the given interval until the context
// is canceled.
func (c *CollectionCollector) Poll(ctx context.Context, col *collection.Collection, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Observe(col.Diagnostics())
		case <-ctx.Done():
			return
		}
	}
}

// StartServer serves Prometheus metrics on the provided address until the context is canceled.
func StartServer(ctx context.Context, addr string) error {
	if addr == "" {
		return fmt.Errorf("metrics address is empty")
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
