package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerShowsProgress(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Refining layout...")
	s.SetProgress(1, 4)
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Refining layout...") {
		t.Errorf("output missing message: %q", got)
	}
	if !strings.Contains(got, "25.0%") {
		t.Errorf("output missing progress: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line not cleared on stop: %q", got)
	}
}

func TestSpinnerIgnoresEmptyTotal(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Working")
	s.SetProgress(0, 0)
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if strings.Contains(out.String(), "%") {
		t.Errorf("progress shown for zero total: %q", out.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	s := newSpinnerTo(ctx, &out, "Working")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Working")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Working")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
	if out.String() != "" {
		t.Errorf("unexpected output %q", out.String())
	}
}
