package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_Coalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	if !d.Pending() {
		t.Fatal("expected a pending call")
	}

	waitFor(t, func() bool { return calls.Load() == 1 })
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly one call, got %d", got)
	}
	if d.Pending() {
		t.Error("nothing should be pending after firing")
	}
	if d.Fired() != 1 {
		t.Errorf("Fired = %d, want 1", d.Fired())
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	d.Trigger()
	d.Cancel()
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("cancelled call ran")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	d := NewDebouncer(0, nil)
	if d.Duration() != DefaultDebounceDuration {
		t.Errorf("Duration = %v", d.Duration())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNew_NoFiles(t *testing.T) {
	if _, err := New(nil, func() {}, Options{}); err == nil {
		t.Fatal("expected error")
	}
}

func testWatch(t *testing.T, opts Options) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := New([]string{path}, func() { calls.Add(1) }, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	// second Start is a no-op
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("unrelated file triggered reload")
	}

	if err := os.WriteFile(path, []byte("{}\n{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return calls.Load() >= 1 })
}

func TestWatcher_Notify(t *testing.T) {
	testWatch(t, Options{Debounce: 20 * time.Millisecond})
}

func TestWatcher_Poll(t *testing.T) {
	testWatch(t, Options{Debounce: 20 * time.Millisecond, PollInterval: 25 * time.Millisecond, ForcePoll: true})
}

func TestWatcher_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	w, err := New([]string{path}, nil, Options{ForcePoll: true, PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	w.Stop()
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !w.Polling() {
		t.Error("expected polling mode")
	}
	w.Stop()
	w.Stop()
}
