package app

import (
	"context"
	"net/http"

	"minigames_backend/internal/config"
	"minigames_backend/internal/logger"

	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	// .env необязателен, переменные могут прийти из окружения
	loadErr := config.Load(".env")

	s.initServiceProvider()

	if err := logger.Init(s.ServiceProvider.SessionCfg().LogLevel()); err != nil {
		return err
	}
	defer logger.Sync()

	if loadErr != nil {
		logger.Log.Warn("failed to load .env file", zap.Error(loadErr))
	}

	ctx := context.Background()
	r := s.ServiceProvider.Router(ctx)

	addr := s.ServiceProvider.HTTPCfg().Address()
	logger.Log.Info("starting server", zap.String("address", addr))
	return http.ListenAndServe(addr, r)
}
