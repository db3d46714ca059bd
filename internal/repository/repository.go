package repository

import (
	"context"
	"errors"

	"minigames_backend/internal/model"
)

// ErrWalletNotFound у игрока ещё нет кошелька
var ErrWalletNotFound = errors.New("wallet not found")

// WalletRepository внешний кошелёк. Движок о нём не знает, сервис применяет к нему итог ставки
type WalletRepository interface {
	CreateWallet(ctx context.Context, userID int, balance float64) error
	GetBalance(ctx context.Context, userID int) (float64, error)
	// LockBalance читает баланс под блокировкой, вызывается внутри транзакции
	LockBalance(ctx context.Context, userID int) (float64, error)
	ApplyDelta(ctx context.Context, userID int, delta float64) (float64, error)
	AppendTransaction(ctx context.Context, tx model.Transaction) error
}

// HouseStatsRepository статистика казино по играм
type HouseStatsRepository interface {
	Record(game string, stake, payout float64)
	Stats(game string) (model.HouseStats, bool)
}
