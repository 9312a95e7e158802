package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestTracked(t *testing.T) {
	w := New([]string{"data/faq_kb.csv"}, time.Millisecond, func(context.Context) {}, zap.NewNop())
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write tracked", fsnotify.Event{Name: "data/faq_kb.csv", Op: fsnotify.Write}, true},
		{"unclean path", fsnotify.Event{Name: "data/./faq_kb.csv", Op: fsnotify.Create}, true},
		{"other file", fsnotify.Event{Name: "data/other.csv", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "data/faq_kb.csv", Op: fsnotify.Chmod}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.tracked(tc.event); got != tc.want {
				t.Errorf("tracked = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRun_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq_kb.csv")
	if err := os.WriteFile(path, []byte("topic,content\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	changed := make(chan struct{}, 4)
	w := New([]string{path}, 50*time.Millisecond, func(context.Context) {
		calls.Add(1)
		changed <- struct{}{}
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("topic,content\nparking,Free lot\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange not called")
	}
	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one debounced call, got %d", n)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_MissingDir(t *testing.T) {
	w := New([]string{"/does/not/exist/faq.csv"}, time.Millisecond, func(context.Context) {}, zap.NewNop())
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
