package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	if err := os.WriteFile(path, []byte("solid a\nendsolid a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	fw.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("solid b\nendsolid b\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("callback path = %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-changed:
		t.Error("burst of writes reported more than once")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.stl")
	other := filepath.Join(dir, "other.stl")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	fw.Start()

	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected callback for %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	fw.Start()
	if err := fw.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filepath.Join(t.TempDir(), "nope", "x.stl")}, func(string) {}); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
