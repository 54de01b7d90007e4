package client

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
)

type App struct {
	mirror   service.MirrorService
	job      service.MirrorJob
	interval time.Duration

	logger *logger.Logger
}

func NewApp(mirror service.MirrorService, job service.MirrorJob, interval time.Duration, log *logger.Logger) *App {
	return &App{
		mirror:   mirror,
		job:      job,
		interval: interval,
		logger:   log,
	}
}

// Run performs an initial pull, then hands over to the periodic job. A
// failed initial pull is logged and does not stop the client.
func (a *App) Run(ctx context.Context) error {
	if err := a.mirror.PullAll(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("initial pull failed")
	}

	a.job.Start(ctx, a.interval)
	defer a.job.Stop()

	a.logger.Info().Dur("interval", a.interval).Msg("mirror client started")
	<-ctx.Done()
	a.logger.Info().Msg("mirror client stopping")

	return nil
}
