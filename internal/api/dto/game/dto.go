package game

type BetRequest struct {
	Stake  float64 `json:"stake"`            // Размер ставки (> 0, не больше max_bet и баланса)
	Number int     `json:"number,omitempty"` // Кубик: 1-6
	Side   string  `json:"side,omitempty"`   // Монетка: heads / tails
	Move   string  `json:"move,omitempty"`   // КНБ: rock / paper / scissors
	Target float64 `json:"target,omitempty"` // Лимбо: целевой множитель > 1

	// Подмена вероятности, только для токенов с dev
	OverrideProbability *float64 `json:"override_probability,omitempty"`
}

type Outcome struct {
	ID               string    `json:"id"`
	Game             string    `json:"game"`
	Mode             string    `json:"mode"`
	Stake            string    `json:"stake"`
	Won              bool      `json:"won"`
	Multiplier       string    `json:"multiplier"`
	PayoutMultiplier string    `json:"payout_multiplier"`
	RawPayout        string    `json:"raw_payout"`
	Payout           string    `json:"payout"`
	Profit           string    `json:"profit"`
	BalanceAfter     string    `json:"balance_after"`
	Rolled           int       `json:"rolled,omitempty"`
	Landed           string    `json:"landed,omitempty"`
	HouseMove        string    `json:"house_move,omitempty"`
	Candidates       []float64 `json:"candidates,omitempty"`
	PlacedAt         string    `json:"placed_at"`
}

type Totals struct {
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Profit string `json:"profit"`
}

type BetResponse struct {
	Outcome Outcome   `json:"outcome"`
	Balance string    `json:"balance"`
	Totals  Totals    `json:"totals"`
	History []Outcome `json:"history"`
}

type SessionResponse struct {
	Game    string    `json:"game"`
	Balance string    `json:"balance"`
	Totals  Totals    `json:"totals"`
	History []Outcome `json:"history"`
}

type StatsResponse struct {
	Game        string  `json:"game"`
	TotalBets   int     `json:"total_bets"`
	TotalStake  string  `json:"total_stake"`
	TotalPayout string  `json:"total_payout"`
	CurrentRTP  float64 `json:"current_rtp"`
	TargetRTP   float64 `json:"target_rtp"`
	WindowRTP   float64 `json:"window_rtp"`
	WindowSize  int     `json:"window_size"`
	Alert       bool    `json:"alert"`
}

type GameInfo struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	MaxBet      string  `json:"max_bet"`
	Multiplier  float64 `json:"multiplier,omitempty"`
	HistorySize int     `json:"history_size"`
}
