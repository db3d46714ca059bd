package game

import (
	"context"
	"errors"
	"fmt"

	"minigames_backend/internal/engine"
	"minigames_backend/internal/logger"
	"minigames_backend/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceBet рассчитывает ставку и переносит итог в кошелёк в одной транзакции.
// Сессия меняется только после записи в кошелёк
func (s *serv) PlaceBet(ctx context.Context, game string, req model.BetRequest, override *float64) (*model.BetResult, error) {
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

	var opts []engine.BetOption
	if override != nil {
		logger.Log.Warn("bet with odds override",
			zap.Int("user_id", userID),
			zap.String("game", game),
			zap.Float64("probability", *override),
		)
		opts = append(opts, engine.WithOverride(*override))
	}

	var ticket *engine.Ticket
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Баланс мог измениться в другой игре или на другом инстансе
		balance, err := s.lockedBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if err := sess.SyncBalance(balance); err != nil {
			return err
		}

		t, err := sess.Prepare(req, opts...)
		if err != nil {
			return err
		}
		ticket = t

		return s.settle(txCtx, userID, t.Outcome())
	})
	if err != nil {
		if ticket != nil {
			ticket.Discard()
			logger.Log.Error("failed to settle bet",
				zap.Int("user_id", userID),
				zap.String("bet_id", ticket.Outcome().ID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to settle bet %s: %w", ticket.Outcome().ID, err)
		}
		if isRejection(err) {
			logger.Log.Debug("bet rejected",
				zap.Int("user_id", userID),
				zap.String("game", game),
				zap.Float64("stake", req.Stake),
				zap.Error(err),
			)
		} else {
			logger.Log.Error("failed to place bet", zap.Int("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	res := ticket.Commit()
	o := res.Outcome
	s.statsRepo.Record(game, o.Stake, o.CappedPayout)

	logger.Log.Info("bet resolved",
		zap.Int("user_id", userID),
		zap.String("game", game),
		zap.String("bet_id", o.ID),
		zap.String("mode", string(o.Mode)),
		zap.Float64("stake", o.Stake),
		zap.Bool("won", o.Won),
		zap.Float64("multiplier", o.Multiplier),
		zap.Float64("profit", o.Profit),
	)

	return &res, nil
}

// settle применяет изменение баланса и пишет транзакцию
func (s *serv) settle(ctx context.Context, userID int, o model.BetOutcome) error {
	balance, err := s.walletRepo.ApplyDelta(ctx, userID, o.Profit)
	if err != nil {
		return err
	}

	return s.walletRepo.AppendTransaction(ctx, model.Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Game:         o.Game,
		BetID:        o.ID,
		Stake:        o.Stake,
		Payout:       o.CappedPayout,
		Delta:        o.Profit,
		BalanceAfter: balance,
		CreatedAt:    o.PlacedAt,
	})
}

func isRejection(err error) bool {
	return errors.Is(err, engine.ErrInvalidStake) ||
		errors.Is(err, engine.ErrInvalidSelection) ||
		errors.Is(err, engine.ErrInvalidOverride) ||
		errors.Is(err, engine.ErrConcurrentBet)
}
