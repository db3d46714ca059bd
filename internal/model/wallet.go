package model

import "time"

// Transaction запись об изменении кошелька после ставки
type Transaction struct {
	ID           string
	UserID       int
	Game         string
	BetID        string
	Stake        float64
	Payout       float64
	Delta        float64
	BalanceAfter float64
	CreatedAt    time.Time
}

// HouseStats статистика казино по одной игре
type HouseStats struct {
	Game        string
	TotalBets   int
	TotalStake  float64
	TotalPayout float64
	CurrentRTP  float64
	TargetRTP   float64
	WindowRTP   float64
	WindowSize  int
	AlertMode   bool
}
