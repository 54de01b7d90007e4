package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
)

// DefaultMirrorInterval is used when a job is started without a positive
// interval.
const DefaultMirrorInterval = 5 * time.Minute

type mirrorJob struct {
	mirror MirrorService
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMirrorJob creates a job that calls mirror.PullAll on a ticker. The job
// is idle until Start is called.
func NewMirrorJob(mirror MirrorService, log *logger.Logger) MirrorJob {
	return &mirrorJob{mirror: mirror, logger: log}
}

// Start implements MirrorJob. It stops any previously running job, then
// launches a background goroutine that calls PullAll every interval. If
// interval is zero or negative it defaults to [DefaultMirrorInterval]. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *mirrorJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultMirrorInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.mirror.PullAll(jobCtx); err != nil {
					j.logger.Err(err).
						Str("func", "mirrorJob.Start").
						Msg("mirror cycle failed")
				}
			}
		}
	}()
}

// Stop implements MirrorJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the
// job is not running.
func (j *mirrorJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
