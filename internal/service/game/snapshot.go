package game

import (
	"context"
	"fmt"

	"minigames_backend/internal/engine"
	"minigames_backend/internal/logger"
	"minigames_backend/internal/model"

	"go.uber.org/zap"
)

// Snapshot баланс, итоги и история сессии игрока
func (s *serv) Snapshot(ctx context.Context, game string) (*model.SessionSnapshot, error) {
	userID, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(ctx, userID, game)
	if err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	return &snap, nil
}

// Reset явный сброс сессии. Итоги и история обнуляются, баланс берётся из кошелька
func (s *serv) Reset(ctx context.Context, game string) (*model.SessionSnapshot, error) {
	userID, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(ctx, userID, game)
	if err != nil {
		return nil, err
	}

	if !s.acquire(userID) {
		return nil, engine.ErrConcurrentBet
	}
	defer s.release(userID)

	balance, err := s.walletBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Reset(balance); err != nil {
		return nil, err
	}

	logger.Log.Info("session reset", zap.Int("user_id", userID), zap.String("game", game))

	snap := sess.Snapshot()
	return &snap, nil
}

// Stats статистика казино по игре
func (s *serv) Stats(game string) (*model.HouseStats, error) {
	cfg, ok := s.gamesCfg.Game(game)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}

	stats, ok := s.statsRepo.Stats(game)
	if !ok {
		stats = model.HouseStats{Game: game, TargetRTP: cfg.TargetRTP}
	}
	return &stats, nil
}
