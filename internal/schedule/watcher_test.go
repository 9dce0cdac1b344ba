package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	if err := os.WriteFile(path, []byte("resources: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan string, 4)
	w, err := NewWatcher(func(p string) { changes <- p })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := w.AddFile(path); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	// Adding the same file again is a no-op
	if err := w.AddFile(path); err != nil {
		t.Fatalf("AddFile again: %v", err)
	}

	if err := os.WriteFile(path, []byte("resources: []\nevents: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-changes:
		abs, _ := filepath.Abs(path)
		if changed != abs {
			t.Errorf("changed = %s, want %s", changed, abs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := NewWatcher(nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
