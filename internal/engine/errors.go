package engine

import "errors"

var (
	// ErrInvalidStake ставка не положительная, не число, больше лимита или больше баланса
	ErrInvalidStake = errors.New("invalid stake")
	// ErrInvalidSelection выбор игрока не подходит игре
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrConcurrentBet предыдущая ставка ещё рассчитывается
	ErrConcurrentBet = errors.New("bet already in progress")
	// ErrInvalidOverride подменённая вероятность вне [0,1]
	ErrInvalidOverride = errors.New("invalid odds override")
	// ErrInvalidConfig некорректные константы игры
	ErrInvalidConfig = errors.New("invalid game config")
)
