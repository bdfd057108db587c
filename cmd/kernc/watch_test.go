package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"
)

func TestWatcherStartStopNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)
	setupGlobals()

	w, err := newWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestWatcherStartAndStopAreIdempotent(t *testing.T) {
	setupGlobals()

	w, err := newWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	w.Stop()
	w.Stop()
}

func TestWatcherStopBeforeStart(t *testing.T) {
	setupGlobals()

	w, err := newWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	w.Stop()
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	setupGlobals()

	if _, err := newWatcher(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestWatcherEventFiltering(t *testing.T) {
	setupGlobals()

	w, err := newWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	defer w.Stop()

	w.handleEvent(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: "farm.kern", Op: fsnotify.Chmod})
	w.handleEvent(fsnotify.Event{Name: "farm.kern", Op: fsnotify.Remove})

	w.mu.Lock()
	pending := len(w.debounceMap)
	w.mu.Unlock()
	if pending != 0 {
		t.Fatalf("ignored events were recorded, map has %d entries", pending)
	}

	w.handleEvent(fsnotify.Event{Name: "farm.kern", Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: "market.kern", Op: fsnotify.Create})

	w.mu.Lock()
	pending = len(w.debounceMap)
	w.mu.Unlock()
	if pending != 2 {
		t.Fatalf("got %d pending entries, want 2", pending)
	}
}

func TestWatcherProcessSettled(t *testing.T) {
	setupGlobals()

	dir := t.TempDir()
	path := filepath.Join(dir, "farm.kern")
	if err := os.WriteFile(path, []byte("entity Farmer { id }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := newWatcher(dir)
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	defer w.Stop()

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

	// too fresh to settle yet
	w.processSettled()
	w.mu.Lock()
	pending := len(w.debounceMap)
	w.mu.Unlock()
	if pending != 1 {
		t.Fatalf("entry settled too early, map has %d entries", pending)
	}

	w.mu.Lock()
	w.debounceMap[path] = time.Now().Add(-time.Second)
	w.mu.Unlock()

	w.processSettled()
	w.mu.Lock()
	pending = len(w.debounceMap)
	w.mu.Unlock()
	if pending != 0 {
		t.Fatalf("settled entry not drained, map has %d entries", pending)
	}
}

func TestWatcherSettledFileGone(t *testing.T) {
	setupGlobals()

	w, err := newWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	defer w.Stop()

	gone := filepath.Join(t.TempDir(), "gone.kern")
	w.mu.Lock()
	w.debounceMap[gone] = time.Now().Add(-time.Second)
	w.mu.Unlock()

	// must log and drain, not panic
	w.processSettled()

	w.mu.Lock()
	pending := len(w.debounceMap)
	w.mu.Unlock()
	if pending != 0 {
		t.Fatalf("missing file left in map, %d entries", pending)
	}
}

func TestWatcherSeesWrites(t *testing.T) {
	setupGlobals()

	dir := t.TempDir()
	w, err := newWatcher(dir)
	if err != nil {
		t.Fatalf("newWatcher failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "farm.kern")
	if err := os.WriteFile(path, []byte("entity Farmer { id }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w.mu.Lock()
		_, seen := w.debounceMap[path]
		w.mu.Unlock()
		if seen {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("write event never reached the debounce map")
}
