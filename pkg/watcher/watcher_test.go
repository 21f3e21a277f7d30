package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	if err := os.WriteFile(path, []byte("solid a\nendsolid a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 4)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("solid b\nendsolid b\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	want, _ := filepath.Abs(path)
	select {
	case got := <-changed:
		if got != want {
			t.Errorf("changed path = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case extra := <-changed:
		t.Errorf("burst of writes reported twice: %q", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 1)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.stl"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected change for %q", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRemoveAllStopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 1)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	if err := fw.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("solid a\nendsolid a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("change reported after RemoveAll: %q", p)
	case <-time.After(300 * time.Millisecond):
	}

	// the same file can be watched again afterwards
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch after RemoveAll: %v", err)
	}
}
