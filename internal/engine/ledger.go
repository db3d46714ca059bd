package engine

import (
	"fmt"

	"minigames_backend/internal/model"
	"minigames_backend/pkg/money"
)

// Ledger ограниченная история ставок и накопленные итоги сессии.
// Итоги не пересчитываются из истории и переживают вытеснение старых записей.
type Ledger struct {
	retention int
	history   []model.BetOutcome // От старых к новым
	totals    model.Totals
}

// NewLedger создаёт журнал, хранящий последние retention ставок
func NewLedger(retention int) (*Ledger, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("%w: history size must be positive, got %d", ErrInvalidConfig, retention)
	}
	return &Ledger{
		retention: retention,
		history:   make([]model.BetOutcome, 0, retention),
	}, nil
}

// Record добавляет исход, самый старый вытесняется при переполнении
func (l *Ledger) Record(outcome model.BetOutcome) {
	l.history = append(l.history, outcome)
	if len(l.history) > l.retention {
		l.history = l.history[1:]
	}

	if outcome.Won {
		l.totals.Wins++
	} else {
		l.totals.Losses++
	}
	l.totals.Profit = money.Round2(l.totals.Profit + outcome.Profit)
}

// RecentHistory последние ставки, самая новая первой. При limit <= 0 вся история
func (l *Ledger) RecentHistory(limit int) []model.BetOutcome {
	n := len(l.history)
	if limit > 0 && limit < n {
		n = limit
	}

	res := make([]model.BetOutcome, 0, n)
	for i := len(l.history) - 1; i >= len(l.history)-n; i-- {
		res = append(res, l.history[i])
	}
	return res
}

// Totals итоги за всю сессию
func (l *Ledger) Totals() model.Totals {
	return l.totals
}

// Retention размер окна истории
func (l *Ledger) Retention() int {
	return l.retention
}

// Reset явный сброс сессии
func (l *Ledger) Reset() {
	l.history = make([]model.BetOutcome, 0, l.retention)
	l.totals = model.Totals{}
}
