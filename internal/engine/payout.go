package engine

import (
	"math"

	"minigames_backend/pkg/money"
)

// PayoutResult выплата по ставке
type PayoutResult struct {
	Gross  float64 // stake * multiplier без ограничений
	Capped float64 // Не больше баланса игрока до ставки
	Profit float64
}

// Payout считает выплату и прибыль. Выплата не может превышать текущий баланс игрока
func Payout(stake, multiplier float64, won bool, currentBalance float64) PayoutResult {
	if !won {
		return PayoutResult{Profit: -stake}
	}

	gross := money.Round2(stake * multiplier)
	capped := math.Max(0, math.Min(gross, currentBalance))

	return PayoutResult{
		Gross:  gross,
		Capped: capped,
		Profit: money.Round2(capped - stake),
	}
}
