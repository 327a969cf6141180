package handler

import (
	"github.com/mkhasanov/go-user-guard/internal/config"
	"github.com/mkhasanov/go-user-guard/internal/handler/http"
	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
