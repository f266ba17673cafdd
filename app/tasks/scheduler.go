package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ilyakh/newsdigest/app/ingest"
)

const runTimeout = 5 * time.Minute

type IngestRunner interface {
	Run(ctx context.Context, keyword string) (ingest.Result, error)
}

var _ IngestRunner = (*ingest.Ingester)(nil)

// Scheduler triggers periodic ingestion runs for the configured keyword.
// The first run happens at startup, then every interval. Ingestion is a
// single non-concurrent job; the ingester serializes runs internally, so
// a tick that fires while a manual fetch is in flight simply waits its
// turn.
type Scheduler struct {
	ingester IngestRunner
	keyword  string
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewScheduler creates a new ingestion scheduler
func NewScheduler(ingester IngestRunner, keyword string, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		ingester: ingester,
		keyword:  keyword,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runIngestion()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runIngestion()
			}
		}
	}()

	slog.Info("Ingestion scheduler started", "keyword", s.keyword, "interval", s.interval.String())
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) runIngestion() {
	runCtx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	started := time.Now()

	result, err := s.ingester.Run(runCtx, s.keyword)
	if err != nil {
		slog.Error("Scheduled ingestion failed", "keyword", s.keyword, "error", err)
		return
	}

	slog.Info("Scheduled ingestion completed",
		"keyword", s.keyword,
		"duration", time.Since(started),
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"failed", result.Failed)
}
