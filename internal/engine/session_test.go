package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"minigames_backend/internal/model"
)

func coinConfig() model.GameConfig {
	return model.GameConfig{
		Name:        "coin_toss",
		Kind:        model.KindCoinToss,
		MaxBet:      100,
		Multiplier:  2,
		HistorySize: 20,
		Odds:        []model.OddsTier{{StakeThreshold: 0, WinProbability: 0.5}},
	}
}

func newTestSession(t *testing.T, cfg model.GameConfig, balance float64, opts ...SessionOption) *Session {
	t.Helper()
	s, err := NewSession(cfg, balance, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSession_CoinTossScenario(t *testing.T) {
	heads := model.BetRequest{Stake: 10, Selection: model.Selection{Side: model.SideHeads}}

	t.Run("win", func(t *testing.T) {
		s := newTestSession(t, coinConfig(), 100)
		res, err := s.PlaceBet(heads, WithOverride(0.5), WithRandom(NewSequenceSource(0.3)))
		if err != nil {
			t.Fatalf("PlaceBet: %v", err)
		}
		if !res.Outcome.Won || res.Outcome.Profit != 10 || res.Balance != 110 {
			t.Errorf("unexpected result %+v", res.Outcome)
		}
		if res.Outcome.Mode != model.ModeOverridden {
			t.Errorf("mode = %s, want overridden", res.Outcome.Mode)
		}
	})

	t.Run("loss", func(t *testing.T) {
		s := newTestSession(t, coinConfig(), 100)
		res, err := s.PlaceBet(heads, WithOverride(0.5), WithRandom(NewSequenceSource(0.7)))
		if err != nil {
			t.Fatalf("PlaceBet: %v", err)
		}
		if res.Outcome.Won || res.Outcome.Profit != -10 || res.Balance != 90 {
			t.Errorf("unexpected result %+v", res.Outcome)
		}
		if res.Totals != (model.Totals{Losses: 1, Profit: -10}) {
			t.Errorf("totals = %+v", res.Totals)
		}
	})
}

func TestSession_TableOddsByDefault(t *testing.T) {
	cfg := coinConfig()
	cfg.Odds = []model.OddsTier{
		{StakeThreshold: 0, WinProbability: 0.5},
		{StakeThreshold: 50, WinProbability: 0.1},
	}
	s := newTestSession(t, cfg, 1000, WithSource(NewSequenceSource(0.3)))

	// 0.3 выигрывает на малой ставке и проигрывает на крупной
	small, _ := s.PlaceBet(model.BetRequest{Stake: 10, Selection: model.Selection{Side: model.SideTails}})
	big, _ := s.PlaceBet(model.BetRequest{Stake: 60, Selection: model.Selection{Side: model.SideTails}})
	if !small.Outcome.Won || big.Outcome.Won {
		t.Errorf("small won=%v big won=%v", small.Outcome.Won, big.Outcome.Won)
	}
	if small.Outcome.Mode != model.ModeNormal {
		t.Errorf("mode = %s, want normal", small.Outcome.Mode)
	}
}

func TestSession_RejectedBetsLeaveStateUntouched(t *testing.T) {
	cases := []struct {
		name    string
		req     model.BetRequest
		opts    []BetOption
		wantErr error
	}{
		{"zero stake", model.BetRequest{Stake: 0, Selection: model.Selection{Side: model.SideHeads}}, nil, ErrInvalidStake},
		{"negative stake", model.BetRequest{Stake: -5, Selection: model.Selection{Side: model.SideHeads}}, nil, ErrInvalidStake},
		{"NaN stake", model.BetRequest{Stake: math.NaN(), Selection: model.Selection{Side: model.SideHeads}}, nil, ErrInvalidStake},
		{"infinite stake", model.BetRequest{Stake: math.Inf(1), Selection: model.Selection{Side: model.SideHeads}}, nil, ErrInvalidStake},
		{"above max bet", model.BetRequest{Stake: 101, Selection: model.Selection{Side: model.SideHeads}}, nil, ErrInvalidStake},
		{"above balance", model.BetRequest{Stake: 60, Selection: model.Selection{Side: model.SideHeads}}, nil, ErrInvalidStake},
		{"bad side", model.BetRequest{Stake: 10, Selection: model.Selection{Side: "edge"}}, nil, ErrInvalidSelection},
		{"bad override", model.BetRequest{Stake: 10, Selection: model.Selection{Side: model.SideHeads}}, []BetOption{WithOverride(1.5)}, ErrInvalidOverride},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rnd := NewSequenceSource(0.1)
			s := newTestSession(t, coinConfig(), 50, WithSource(rnd))

			_, err := s.PlaceBet(c.req, c.opts...)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
			if s.Balance() != 50 || len(s.RecentHistory(0)) != 0 || s.Totals() != (model.Totals{}) {
				t.Errorf("state changed on rejected bet: balance %v totals %+v", s.Balance(), s.Totals())
			}
			if rnd.Draws() != 0 {
				t.Errorf("rejected bet consumed %d draws", rnd.Draws())
			}
			if s.Pending() {
				t.Error("session left pending")
			}
		})
	}
}

// blockingSource держит первый розыгрыш, пока тест его не отпустит
type blockingSource struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSource) Float64() float64 {
	close(b.entered)
	<-b.release
	return 0.1
}

func TestSession_ConcurrentBetRejected(t *testing.T) {
	s := newTestSession(t, coinConfig(), 100)
	req := model.BetRequest{Stake: 10, Selection: model.Selection{Side: model.SideHeads}}

	src := &blockingSource{entered: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := s.PlaceBet(req, WithRandom(src))
		done <- err
	}()

	select {
	case <-src.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first bet never started resolving")
	}

	if !s.Pending() {
		t.Error("session should report pending during resolution")
	}
	if _, err := s.PlaceBet(req, WithRandom(NewSequenceSource(0.1))); !errors.Is(err, ErrConcurrentBet) {
		t.Errorf("expected ErrConcurrentBet, got %v", err)
	}
	if err := s.SyncBalance(500); !errors.Is(err, ErrConcurrentBet) {
		t.Errorf("balance sync during resolution: expected ErrConcurrentBet, got %v", err)
	}

	close(src.release)
	if err := <-done; err != nil {
		t.Fatalf("first bet failed: %v", err)
	}
	if got := len(s.RecentHistory(0)); got != 1 {
		t.Errorf("history length = %d, want 1 (second bet must not be queued)", got)
	}
}

func TestSession_PayoutCappedAtBalanceBeforeBet(t *testing.T) {
	cfg := model.GameConfig{Name: "limbo", Kind: model.KindLimbo, MaxBet: 100, HistorySize: 50, RTP: 0.99}
	s := newTestSession(t, cfg, 100)

	res, err := s.PlaceBet(
		model.BetRequest{Stake: 10, Selection: model.Selection{Target: 50}},
		WithOverride(1), WithRandom(NewSequenceSource(0, 0)),
	)
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	o := res.Outcome
	if o.RawPayout != 500 || o.CappedPayout != 100 || o.Profit != 90 || res.Balance != 190 {
		t.Errorf("unexpected outcome %+v", o)
	}
}

func TestSession_SeededInvariants(t *testing.T) {
	configs := []model.GameConfig{
		coinConfig(),
		{Name: "dice", Kind: model.KindDice, MaxBet: 50, Multiplier: 5, HistorySize: 10,
			Odds: []model.OddsTier{{StakeThreshold: 0, WinProbability: 0.9}, {StakeThreshold: 20, WinProbability: 0.6}}},
		{Name: "limbo", Kind: model.KindLimbo, MaxBet: 50, HistorySize: 50, RTP: 0.97, MaxTarget: 100},
		{Name: "balloon", Kind: model.KindBalloon, MaxBet: 50, HistorySize: 6,
			Odds: []model.OddsTier{{StakeThreshold: 0, WinProbability: 0.6}}, Cascade: []float64{1.5, 2, 3, 5}},
	}

	for _, cfg := range configs {
		t.Run(cfg.Name, func(t *testing.T) {
			rnd := NewSeededSource(42)
			s := newTestSession(t, cfg, 500, WithSource(rnd))
			stakes := NewSeededSource(7)

			placed := 0
			for i := 0; i < 2000; i++ {
				before := s.Balance()
				req := model.BetRequest{
					Stake: math.Max(1, math.Floor(stakes.Float64()*50)),
					Selection: model.Selection{
						Number: 1 + i%6,
						Side:   model.SideHeads,
						Target: 1.5 + float64(i%20),
					},
				}
				res, err := s.PlaceBet(req)
				if errors.Is(err, ErrInvalidStake) {
					if err := s.SyncBalance(500); err != nil {
						t.Fatalf("top up: %v", err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("PlaceBet: %v", err)
				}
				placed++

				o := res.Outcome
				if !o.Won && o.Profit != -o.Stake {
					t.Fatalf("loss profit %v, want %v", o.Profit, -o.Stake)
				}
				if o.Won && (o.CappedPayout < 0 || o.CappedPayout > before) {
					t.Fatalf("capped payout %v outside [0, %v]", o.CappedPayout, before)
				}
				if res.Balance < 0 {
					t.Fatalf("balance went negative: %v", res.Balance)
				}
				if math.Abs(res.Balance-(before+o.Profit)) > 0.005 {
					t.Fatalf("balance %v != %v + %v", res.Balance, before, o.Profit)
				}
			}

			totals := s.Totals()
			if totals.Wins+totals.Losses != placed {
				t.Errorf("wins+losses = %d, want %d", totals.Wins+totals.Losses, placed)
			}
			if got := len(s.RecentHistory(0)); got != cfg.HistorySize {
				t.Errorf("history length = %d, want %d", got, cfg.HistorySize)
			}
		})
	}
}

func TestSession_SeededSourceIsReproducible(t *testing.T) {
	play := func() []bool {
		s := newTestSession(t, coinConfig(), 1000, WithSource(NewSeededSource(99)))
		var res []bool
		for i := 0; i < 20; i++ {
			r, err := s.PlaceBet(model.BetRequest{Stake: 1, Selection: model.Selection{Side: model.SideHeads}})
			if err != nil {
				t.Fatalf("PlaceBet: %v", err)
			}
			res = append(res, r.Outcome.Won)
		}
		return res
	}

	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bet %d differs between identical seeds", i)
		}
	}
}

func TestSession_ResetAndSnapshot(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestSession(t, coinConfig(), 100, WithSource(NewSequenceSource(0.1)), WithClock(func() time.Time { return now }))

	res, err := s.PlaceBet(model.BetRequest{Stake: 10, Selection: model.Selection{Side: model.SideHeads}})
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	if !res.Outcome.PlacedAt.Equal(now) || res.Outcome.ID == "" {
		t.Errorf("outcome missing id or time: %+v", res.Outcome)
	}

	snap := s.Snapshot()
	if snap.Balance != 110 || len(snap.History) != 1 || snap.Game != "coin_toss" {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	if err := s.Reset(200); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	snap = s.Snapshot()
	if snap.Balance != 200 || len(snap.History) != 0 || snap.Totals != (model.Totals{}) {
		t.Errorf("reset left state %+v", snap)
	}
}

func TestNewSession_Errors(t *testing.T) {
	cfg := coinConfig()
	cfg.MaxBet = 0
	if _, err := NewSession(cfg, 100); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero max bet: expected ErrInvalidConfig, got %v", err)
	}

	cfg = coinConfig()
	cfg.HistorySize = 0
	if _, err := NewSession(cfg, 100); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero history: expected ErrInvalidConfig, got %v", err)
	}

	if _, err := NewSession(coinConfig(), -1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative balance: expected ErrInvalidConfig, got %v", err)
	}
}

func TestSession_PrepareDiscardLeavesStateUntouched(t *testing.T) {
	s := newTestSession(t, coinConfig(), 100, WithSource(NewSequenceSource(0.3)))
	heads := model.BetRequest{Stake: 10, Selection: model.Selection{Side: model.SideHeads}}

	ticket, err := s.Prepare(heads)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if o := ticket.Outcome(); !o.Won || o.BalanceAfter != 110 {
		t.Errorf("unexpected prepared outcome %+v", o)
	}

	// Сессия занята, пока тикет открыт
	if !s.Pending() {
		t.Error("session must be pending while ticket is open")
	}
	if _, err := s.PlaceBet(heads); !errors.Is(err, ErrConcurrentBet) {
		t.Errorf("PlaceBet during open ticket: expected ErrConcurrentBet, got %v", err)
	}
	if err := s.SyncBalance(500); !errors.Is(err, ErrConcurrentBet) {
		t.Errorf("SyncBalance during open ticket: expected ErrConcurrentBet, got %v", err)
	}
	if s.Balance() != 100 || len(s.RecentHistory(0)) != 0 {
		t.Errorf("prepared bet leaked into session state")
	}

	ticket.Discard()
	ticket.Discard()
	if s.Pending() || s.Balance() != 100 || len(s.RecentHistory(0)) != 0 || s.Totals() != (model.Totals{}) {
		t.Errorf("discarded bet changed the session: balance %v totals %+v", s.Balance(), s.Totals())
	}

	if _, err := s.PlaceBet(heads); err != nil {
		t.Fatalf("PlaceBet after discard: %v", err)
	}
}

func TestSession_PrepareCommit(t *testing.T) {
	s := newTestSession(t, coinConfig(), 100, WithSource(NewSequenceSource(0.7)))

	ticket, err := s.Prepare(model.BetRequest{Stake: 40, Selection: model.Selection{Side: model.SideHeads}})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	res := ticket.Commit()
	if res.Balance != 60 || res.Totals.Losses != 1 || len(res.History) != 1 {
		t.Errorf("unexpected commit result %+v", res)
	}

	// Повторный Commit не записывает ставку второй раз
	again := ticket.Commit()
	if again.Balance != 60 || len(s.RecentHistory(0)) != 1 {
		t.Errorf("second commit changed state: %+v", again)
	}
	ticket.Discard()
	if s.Balance() != 60 || s.Pending() {
		t.Errorf("discard after commit must be a no-op")
	}
}

func TestSession_PrepareRejectionReleasesSession(t *testing.T) {
	s := newTestSession(t, coinConfig(), 100)

	if _, err := s.Prepare(model.BetRequest{Stake: 1000}); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("expected ErrInvalidStake, got %v", err)
	}
	if s.Pending() {
		t.Error("rejected bet must release the session")
	}
}
