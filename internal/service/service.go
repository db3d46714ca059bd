package service

import (
	"context"

	"minigames_backend/internal/model"
)

// GameService ставки в мини-игры. Игрок берётся из контекста
type GameService interface {
	// PlaceBet override != nil рассчитывает ставку с подменённой вероятностью
	PlaceBet(ctx context.Context, game string, req model.BetRequest, override *float64) (*model.BetResult, error)
	Snapshot(ctx context.Context, game string) (*model.SessionSnapshot, error)
	Reset(ctx context.Context, game string) (*model.SessionSnapshot, error)
	Stats(game string) (*model.HouseStats, error)
	Games() []model.GameConfig
}
