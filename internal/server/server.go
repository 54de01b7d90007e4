package server

import (
	"github.com/MKhiriev/go-pim-sync/internal/config"
	handler "github.com/MKhiriev/go-pim-sync/internal/handler/http"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
)

func NewServer(h *handler.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" || h == nil {
		return nil, errNoServersAreCreated
	}

	return newHTTPServer(h.Init(), cfg, logger), nil
}
