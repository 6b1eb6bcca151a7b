package fsevent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zoobzio/tether"
)

func TestChanges_EmitsWriteEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("v: 1"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("create watcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		t.Fatalf("watch dir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := tether.Events[fsnotify.Event](ctx,
		Changes(watcher, FilterOps(fsnotify.Write|fsnotify.Create)),
		tether.WithCapacity[fsnotify.Event](tether.Unlimited()))
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("v: 2"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Name == path {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for filesystem event")
		}
	}
}

func TestChanges_FilterDropsOtherOps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("create watcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		t.Fatalf("watch dir: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := tether.Events[fsnotify.Event](ctx,
		Changes(watcher, FilterOps(fsnotify.Remove)),
		tether.WithCapacity[fsnotify.Event](tether.Unlimited()))
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove file: %v", err)
	}

	select {
	case ev := <-events:
		if !ev.Has(fsnotify.Remove) {
			t.Errorf("expected only remove events, got %v", ev.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for remove event")
	}
}

func TestChanges_DetachStopsPump(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("create watcher: %v", err)
	}
	defer watcher.Close()

	src := Changes(watcher)
	h, err := src.Attach(func(fsnotify.Event) bool { return true })
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Detach closes the stop channel; the pump must exit without
	// closing the watcher itself.
	src.Detach(h)

	if err := watcher.Add(t.TempDir()); err != nil {
		t.Errorf("watcher should remain usable after detach: %v", err)
	}
}
