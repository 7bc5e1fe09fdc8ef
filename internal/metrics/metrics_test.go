package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pranshuparmar/renderwatch/internal/events"
)

func TestRecorderHandlers(t *testing.T) {
	r := NewRecorder()

	r.onCommand(events.CommandExecutedEvent{Command: "ps aux", Seconds: 0.2, Launched: true})
	r.onCommand(events.CommandExecutedEvent{Command: "nope", Seconds: 0.01, Launched: false})
	r.onListing(events.ListingCompletedEvent{Outcome: "ok", Records: 3})
	r.onListing(events.ListingCompletedEvent{Outcome: "invalid_path"})
	r.onSnapshot(events.SnapshotTakenEvent{Active: true, Processes: 2})
	r.onSnapshot(events.SnapshotTakenEvent{Bypassed: true})
	r.onKill(events.ProcessKilledEvent{PID: "1"})
	r.onKillSkipped(events.KillSkippedEvent{PID: "2"})
	r.onKillSkipped(events.KillSkippedEvent{PID: "3"})
	r.onKillFailed(events.KillFailedEvent{PID: "4", Output: "kill: (4) - Operation not permitted"})

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"launched", testutil.ToFloat64(r.commands.WithLabelValues("launched")), 1},
		{"failed", testutil.ToFloat64(r.commands.WithLabelValues("failed")), 1},
		{"listings ok", testutil.ToFloat64(r.listings.WithLabelValues("ok")), 1},
		{"listings invalid", testutil.ToFloat64(r.listings.WithLabelValues("invalid_path")), 1},
		{"processes", testutil.ToFloat64(r.snapshotProcesses), 0},
		{"bypassed", testutil.ToFloat64(r.snapshotsBypassed), 1},
		{"kills", testutil.ToFloat64(r.kills), 1},
		{"skipped", testutil.ToFloat64(r.killsSkipped), 2},
		{"failed kills", testutil.ToFloat64(r.killsFailed), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if n := testutil.CollectAndCount(r.commandDuration); n != 1 {
		t.Errorf("duration histogram series = %d, want 1", n)
	}
}

func TestRecorderAttach(t *testing.T) {
	r := NewRecorder()
	bus := events.New()
	detach := r.Attach(bus)
	defer detach()

	bus.Publish(events.ProcessKilledEvent{PID: "4242"})

	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(r.kills) != 1 {
		if time.Now().After(deadline) {
			t.Fatal("kill event never reached the recorder")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRecorderWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.onListing(events.ListingCompletedEvent{Outcome: "error"})

	path := filepath.Join(t.TempDir(), "renderwatch.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading textfile: %v", err)
	}
	if !strings.Contains(string(data), `renderwatch_directory_listings_total{outcome="error"} 1`) {
		t.Errorf("textfile missing listing counter:\n%s", data)
	}
}

func TestRecorderSync(t *testing.T) {
	r := NewRecorder()
	bus := events.New()
	defer r.Attach(bus)()

	bus.Publish(events.ListingCompletedEvent{Outcome: "ok"})
	bus.Publish(events.KillSkippedEvent{PID: "1"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Sync(ctx, bus.Published()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got := testutil.ToFloat64(r.killsSkipped); got != 1 {
		t.Errorf("kills skipped = %v, want 1", got)
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if err := r.Sync(short, bus.Published()+1); err == nil {
		t.Error("Sync() returned nil for an event that never arrives")
	}
}
