package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadOptions(path string) (Options, error) {
	opts := Defaults()
	opts.Config = path
	err := LoadConfig(&opts, nil)
	return opts, err
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "[monitor]\nbypass = \"off\"\n")

	received := make(chan Options, 4)
	w := NewWatcher(path, loadOptions, quietLogger(), WithDebounce[Options](20*time.Millisecond))
	w.OnReload(func(o Options) { received <- o })

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[monitor]\nbypass = \"on\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case o := <-received:
		if o.MonitorBypass != "on" {
			t.Errorf("reloaded bypass = %q, want on", o.MonitorBypass)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload handler was not called")
	}
}

func TestWatcherReloadsOnAtomicReplace(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \"info\"\n")

	received := make(chan Options, 4)
	w := NewWatcher(path, loadOptions, quietLogger(), WithDebounce[Options](20*time.Millisecond))
	w.OnReload(func(o Options) { received <- o })

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	tmp := filepath.Join(filepath.Dir(path), "renderwatch.toml.swp")
	if err := os.WriteFile(tmp, []byte("[logging]\nlevel = \"debug\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case o := <-received:
		if o.LoggingLevel != "debug" {
			t.Errorf("reloaded level = %q, want debug", o.LoggingLevel)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload handler was not called")
	}
}

func TestWatcherErrorHandlerAndUnsubscribe(t *testing.T) {
	path := writeConfig(t, "")

	errs := make(chan error, 4)
	calls := make(chan Options, 4)
	loader := func(string) (Options, error) { return Options{}, errors.New("boom") }

	w := NewWatcher(path, loader, quietLogger(),
		WithDebounce[Options](20*time.Millisecond),
		WithErrorHandler[Options](func(err error) { errs <- err }),
	)
	unsub := w.OnReload(func(o Options) { calls <- o })
	unsub()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("# touched\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errs:
		if err.Error() != "boom" {
			t.Errorf("error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("error handler was not called")
	}
	select {
	case <-calls:
		t.Error("unsubscribed handler was called")
	default:
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w := NewWatcher("/nonexistent/renderwatch.toml", loadOptions, quietLogger())
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
