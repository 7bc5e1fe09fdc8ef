// Package metrics turns bus events into Prometheus metrics and exports
// them in the node_exporter textfile format.
package metrics

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pranshuparmar/renderwatch/internal/events"
)

const namespace = "renderwatch"

// Recorder owns a private registry so several recorders never clash.
type Recorder struct {
	registry *prometheus.Registry
	observed atomic.Uint64

	commands          *prometheus.CounterVec
	commandDuration   prometheus.Histogram
	listings          *prometheus.CounterVec
	snapshotProcesses prometheus.Gauge
	snapshotsBypassed prometheus.Counter
	kills             prometheus.Counter
	killsSkipped      prometheus.Counter
	killsFailed       prometheus.Counter
}

// NewRecorder registers every metric on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "commands_total",
			Help:      "External commands run, by launch result",
		}, []string{"result"}),
		commandDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "executor",
			Name:      "command_duration_seconds",
			Help:      "Wall time of external commands",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		listings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "listings_total",
			Help:      "Directory listings, by outcome",
		}, []string{"outcome"}),
		snapshotProcesses: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "render_processes",
			Help:      "Render processes seen in the latest snapshot",
		}),
		snapshotsBypassed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "snapshots_bypassed_total",
			Help:      "Snapshots skipped by bypass mode",
		}),
		kills: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "kills_total",
			Help:      "Kill commands issued after validation",
		}),
		killsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "kills_skipped_total",
			Help:      "Kills dropped because the pid no longer validated",
		}),
		killsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "kills_failed_total",
			Help:      "Kill commands that ran but did not terminate the process",
		}),
	}
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Attach subscribes the recorder to bus. Call the returned func to detach.
func (r *Recorder) Attach(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(r.onCommand),
		bus.Subscribe(r.onListing),
		bus.Subscribe(r.onSnapshot),
		bus.Subscribe(r.onKill),
		bus.Subscribe(r.onKillSkipped),
		bus.Subscribe(r.onKillFailed),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (r *Recorder) onCommand(e events.CommandExecutedEvent) {
	result := "launched"
	if !e.Launched {
		result = "failed"
	}
	r.commands.WithLabelValues(result).Inc()
	r.commandDuration.Observe(e.Seconds)
	r.observed.Add(1)
}

func (r *Recorder) onListing(e events.ListingCompletedEvent) {
	r.listings.WithLabelValues(e.Outcome).Inc()
	r.observed.Add(1)
}

func (r *Recorder) onSnapshot(e events.SnapshotTakenEvent) {
	if e.Bypassed {
		r.snapshotsBypassed.Inc()
	}
	r.snapshotProcesses.Set(float64(e.Processes))
	r.observed.Add(1)
}

func (r *Recorder) onKill(events.ProcessKilledEvent) {
	r.kills.Inc()
	r.observed.Add(1)
}

func (r *Recorder) onKillSkipped(events.KillSkippedEvent) {
	r.killsSkipped.Inc()
	r.observed.Add(1)
}

func (r *Recorder) onKillFailed(events.KillFailedEvent) {
	r.killsFailed.Inc()
	r.observed.Add(1)
}

// Sync waits until the recorder has handled at least n events. Bus
// delivery is asynchronous, so call it with bus.Published() before
// exporting.
func (r *Recorder) Sync(ctx context.Context, n uint64) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for r.observed.Load() < n {
		select {
		case <-ctx.Done():
			return fmt.Errorf("metrics sync: %w", ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
