package http

import (
	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/service"
)

// Handler carries the service layer and the session-cookie settings shared by
// all route handlers and middleware of the HTTP transport.
type Handler struct {
	services *service.Services
	cookie   config.SessionCookie

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(services *service.Services, cookie config.SessionCookie, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cookie:   cookie,
		logger:   logger,
	}
}
