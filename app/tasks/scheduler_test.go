package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ilyakh/newsdigest/app/ingest"
)

type fakeRunner struct {
	mu       sync.Mutex
	keywords []string
	ran      chan struct{}
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{ran: make(chan struct{}, 16)}
}

func (r *fakeRunner) Run(ctx context.Context, keyword string) (ingest.Result, error) {
	r.mu.Lock()
	r.keywords = append(r.keywords, keyword)
	r.mu.Unlock()
	r.ran <- struct{}{}
	return ingest.Result{}, nil
}

func (r *fakeRunner) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keywords)
}

func TestScheduler_RunsAtStartup(t *testing.T) {
	runner := newFakeRunner()
	scheduler := NewScheduler(runner, "markets", time.Hour)

	scheduler.Start()
	defer scheduler.Stop()

	select {
	case <-runner.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected an ingestion run at startup")
	}

	runner.mu.Lock()
	keyword := runner.keywords[0]
	runner.mu.Unlock()

	if keyword != "markets" {
		t.Errorf("Expected configured keyword 'markets', got '%s'", keyword)
	}
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	runner := newFakeRunner()
	scheduler := NewScheduler(runner, "markets", 20*time.Millisecond)

	scheduler.Start()
	defer scheduler.Stop()

	// Startup run plus at least one tick
	for i := 0; i < 2; i++ {
		select {
		case <-runner.ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("Expected at least %d ingestion runs", i+1)
		}
	}
}

func TestScheduler_StopHaltsRuns(t *testing.T) {
	runner := newFakeRunner()
	scheduler := NewScheduler(runner, "markets", 10*time.Millisecond)

	scheduler.Start()

	select {
	case <-runner.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected an ingestion run at startup")
	}

	scheduler.Stop()

	countAfterStop := runner.runCount()
	time.Sleep(50 * time.Millisecond)

	if got := runner.runCount(); got != countAfterStop {
		t.Errorf("Expected no runs after Stop, count went from %d to %d", countAfterStop, got)
	}
}
