package engine

import (
	"errors"
	"fmt"
	"testing"

	"minigames_backend/internal/model"
)

func TestLedger_BoundedHistoryKeepsTotals(t *testing.T) {
	const n = 5
	l, err := NewLedger(n)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}

	var profit float64
	for i := 0; i < n+5; i++ {
		won := i%3 == 0
		p := -10.0
		if won {
			p = 15
		}
		profit += p
		l.Record(model.BetOutcome{ID: fmt.Sprint(i), Won: won, Profit: p})
	}

	history := l.RecentHistory(n)
	if len(history) != n {
		t.Fatalf("history length = %d, want %d", len(history), n)
	}
	for i, o := range history {
		if want := fmt.Sprint(n + 4 - i); o.ID != want {
			t.Errorf("history[%d] = %s, want %s", i, o.ID, want)
		}
	}

	totals := l.Totals()
	if totals.Wins+totals.Losses != n+5 {
		t.Errorf("wins+losses = %d, want %d", totals.Wins+totals.Losses, n+5)
	}
	if totals.Wins != 4 {
		t.Errorf("wins = %d, want 4", totals.Wins)
	}
	if totals.Profit != profit {
		t.Errorf("profit = %v, want %v (including evicted bets)", totals.Profit, profit)
	}
}

func TestLedger_RecentHistoryLimit(t *testing.T) {
	l, _ := NewLedger(10)
	for i := 0; i < 3; i++ {
		l.Record(model.BetOutcome{ID: fmt.Sprint(i)})
	}

	if got := l.RecentHistory(2); len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("RecentHistory(2) = %v", got)
	}
	if got := l.RecentHistory(50); len(got) != 3 {
		t.Errorf("RecentHistory(50) length %d, want 3", len(got))
	}
	if got := l.RecentHistory(0); len(got) != 3 {
		t.Errorf("RecentHistory(0) length %d, want 3", len(got))
	}
}

func TestLedger_Reset(t *testing.T) {
	l, _ := NewLedger(5)
	l.Record(model.BetOutcome{Won: true, Profit: 10})
	l.Reset()

	if len(l.RecentHistory(0)) != 0 || l.Totals() != (model.Totals{}) {
		t.Errorf("ledger not cleared: %+v", l.Totals())
	}
}

func TestNewLedger_RejectsZeroRetention(t *testing.T) {
	if _, err := NewLedger(0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
