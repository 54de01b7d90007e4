package http

import (
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
)

type Handler struct {
	sessions service.SessionProvider
	appInfo  service.AppInfoService

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Strs("collections", services.Collections()).Msg("http handler created")
	return &Handler{
		sessions: services,
		appInfo:  services.AppInfoService,
		logger:   logger,
	}
}
