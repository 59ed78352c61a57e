package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"run_and_monitor/internal/inventory"
)

// Sampler periodically totals resident memory across the host and folds
// the result into a Peak.
type Sampler struct {
	// Verbose logs every sample total, not just failures. Set before Start.
	Verbose bool

	src      inventory.Source
	peak     *Peak
	interval time.Duration
	log      *logger.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a Sampler reading from src on the given interval.
func New(src inventory.Source, peak *Peak, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sampler{
		src:      src,
		peak:     peak,
		interval: interval,
		log:      logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "sampler")),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins sampling in a goroutine. It returns immediately; the loop
// runs until ctx is cancelled or Stop is called. It never blocks the
// caller, and a slow or failing inventory source only costs individual
// ticks.
func (s *Sampler) Start(ctx context.Context) {
	go s.loop(ctx)
}

// Stop signals the loop to finish and blocks until it has. A sample that
// is mid-snapshot when Stop is called still lands in the peak before Stop
// returns, so a reader of the peak after Stop sees every sample taken
// while the supervised tree was alive. Call at most once.
func (s *Sampler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Sampler) loop(ctx context.Context) {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		s.sample()
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
		}
	}
}

// sample takes one snapshot and folds it into the peak. Inventory failures
// are logged and skipped; the next tick retries from scratch.
func (s *Sampler) sample() {
	entries, err := s.src.Snapshot()
	if err != nil {
		s.log.Debugln("skipping sample:", err)
		return
	}
	total := inventory.TotalMB(entries)
	if s.Verbose {
		s.log.Infoln(fmt.Sprintf("%d processes, %.3fMb resident", len(entries), total))
	}
	s.peak.Observe(total)
}
