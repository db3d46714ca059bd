package engine

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"minigames_backend/internal/model"
	"minigames_backend/pkg/money"

	"github.com/google/uuid"
)

// Session игровая сессия: баланс, журнал и константы одной игры.
// Ставки рассчитываются по одной, параллельная ставка отклоняется, а не ждёт.
type Session struct {
	mtx     sync.Mutex
	pending atomic.Bool

	cfg      model.GameConfig
	resolver Resolver
	odds     OddsSource
	rnd      RandomSource
	now      func() time.Time
	newID    func() string

	balance float64
	ledger  *Ledger
}

// SessionOption настройка сессии
type SessionOption func(*Session)

// WithSource источник случайности по умолчанию для всех ставок сессии
func WithSource(rnd RandomSource) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

// WithClock подменяет время (для тестов)
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession создаёт сессию по конфигу игры со стартовым балансом
func NewSession(cfg model.GameConfig, balance float64, opts ...SessionOption) (*Session, error) {
	if cfg.MaxBet <= 0 {
		return nil, fmt.Errorf("%w: %s: max bet must be positive", ErrInvalidConfig, cfg.Name)
	}
	if balance < 0 || math.IsNaN(balance) || math.IsInf(balance, 0) {
		return nil, fmt.Errorf("%w: starting balance %v", ErrInvalidConfig, balance)
	}

	resolver, odds, err := NewResolver(cfg)
	if err != nil {
		return nil, err
	}
	ledger, err := NewLedger(cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	s := &Session{
		cfg:      cfg,
		resolver: resolver,
		odds:     odds,
		now:      time.Now,
		newID:    uuid.NewString,
		balance:  money.Round2(balance),
		ledger:   ledger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = NewSystemSource()
	}
	return s, nil
}

type betOptions struct {
	override *OddsOverride
	rnd      RandomSource
}

// BetOption настройка одной ставки
type BetOption func(*betOptions)

// WithOverride рассчитывает ставку с заданной вероятностью вместо таблицы шансов
func WithOverride(probability float64) BetOption {
	return func(o *betOptions) { o.override = &OddsOverride{Probability: probability} }
}

// WithRandom источник случайности только для этой ставки
func WithRandom(rnd RandomSource) BetOption {
	return func(o *betOptions) { o.rnd = rnd }
}

// PlaceBet проверяет, разыгрывает и записывает ставку.
// При любой ошибке баланс и журнал остаются нетронутыми.
func (s *Session) PlaceBet(req model.BetRequest, opts ...BetOption) (model.BetResult, error) {
	t, err := s.Prepare(req, opts...)
	if err != nil {
		return model.BetResult{}, err
	}
	return t.Commit(), nil
}

// Ticket рассчитанная, но ещё не применённая к сессии ставка.
// Пока тикет не закрыт через Commit или Discard, сессия занята
type Ticket struct {
	s       *Session
	outcome model.BetOutcome
	result  model.BetResult
	closed  bool
}

// Prepare проверяет и разыгрывает ставку, не меняя баланс и журнал.
// Параллельная ставка и смена баланса отклоняются до закрытия тикета
func (s *Session) Prepare(req model.BetRequest, opts ...BetOption) (*Ticket, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return nil, ErrConcurrentBet
	}

	outcome, err := s.resolve(req, opts...)
	if err != nil {
		s.pending.Store(false)
		return nil, err
	}
	return &Ticket{s: s, outcome: outcome}, nil
}

func (s *Session) resolve(req model.BetRequest, opts ...BetOption) (model.BetOutcome, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var o betOptions
	for _, opt := range opts {
		opt(&o)
	}

	stake, err := s.validateStake(req.Stake)
	if err != nil {
		return model.BetOutcome{}, err
	}
	if err := s.resolver.Validate(req.Selection); err != nil {
		return model.BetOutcome{}, err
	}

	odds, mode := s.odds, model.ModeNormal
	if o.override != nil {
		if err := o.override.Validate(); err != nil {
			return model.BetOutcome{}, err
		}
		odds, mode = *o.override, model.ModeOverridden
	}
	rnd := s.rnd
	if o.rnd != nil {
		rnd = o.rnd
	}

	res, err := s.resolver.Resolve(stake, req.Selection, odds, rnd)
	if err != nil {
		return model.BetOutcome{}, err
	}

	// Выплата ограничена балансом до ставки
	before := s.balance
	pay := Payout(stake, res.PayoutMultiplier, res.Won, before)

	return model.BetOutcome{
		ID:               s.newID(),
		Game:             s.cfg.Name,
		Mode:             mode,
		Stake:            stake,
		Selection:        req.Selection,
		Won:              res.Won,
		Multiplier:       res.Multiplier,
		PayoutMultiplier: res.PayoutMultiplier,
		RawPayout:        pay.Gross,
		CappedPayout:     pay.Capped,
		Profit:           pay.Profit,
		BalanceAfter:     money.Round2(before + pay.Profit),
		Detail:           res.Detail,
		PlacedAt:         s.now(),
	}, nil
}

// Outcome исход ставки до применения
func (t *Ticket) Outcome() model.BetOutcome {
	return t.outcome
}

// Commit применяет ставку к балансу и журналу и освобождает сессию.
// Повторный вызов возвращает тот же результат
func (t *Ticket) Commit() model.BetResult {
	if t.closed {
		return t.result
	}
	t.closed = true

	s := t.s
	defer s.pending.Store(false)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.balance = t.outcome.BalanceAfter
	s.ledger.Record(t.outcome)

	t.result = model.BetResult{
		Outcome: t.outcome,
		Balance: s.balance,
		Totals:  s.ledger.Totals(),
		History: s.ledger.RecentHistory(s.ledger.Retention()),
	}
	return t.result
}

// Discard отменяет ставку. Сессия остаётся как до Prepare
func (t *Ticket) Discard() {
	if t.closed {
		return
	}
	t.closed = true
	t.s.pending.Store(false)
}

func (s *Session) validateStake(stake float64) (float64, error) {
	if math.IsNaN(stake) || math.IsInf(stake, 0) {
		return 0, fmt.Errorf("%w: stake is not a number", ErrInvalidStake)
	}
	stake = money.Round2(stake)
	if stake <= 0 {
		return 0, fmt.Errorf("%w: stake must be positive", ErrInvalidStake)
	}
	if stake > s.cfg.MaxBet {
		return 0, fmt.Errorf("%w: stake %v above max bet %v", ErrInvalidStake, stake, s.cfg.MaxBet)
	}
	if stake > s.balance {
		return 0, fmt.Errorf("%w: stake %v above balance %v", ErrInvalidStake, stake, s.balance)
	}
	return stake, nil
}

// Pending идёт ли сейчас расчёт ставки
func (s *Session) Pending() bool {
	return s.pending.Load()
}

// SyncBalance выставляет баланс из внешнего кошелька между ставками
func (s *Session) SyncBalance(balance float64) error {
	return s.between(balance, func() {})
}

// Reset сбрасывает журнал и задаёт новый баланс
func (s *Session) Reset(balance float64) error {
	return s.between(balance, s.ledger.Reset)
}

// between меняет баланс, пока ставка не рассчитывается
func (s *Session) between(balance float64, fn func()) error {
	if balance < 0 || math.IsNaN(balance) || math.IsInf(balance, 0) {
		return fmt.Errorf("%w: balance %v", ErrInvalidStake, balance)
	}
	if !s.pending.CompareAndSwap(false, true) {
		return ErrConcurrentBet
	}
	defer s.pending.Store(false)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.balance = money.Round2(balance)
	fn()
	return nil
}

// Balance текущий баланс
func (s *Session) Balance() float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.balance
}

// Totals итоги за всю сессию
func (s *Session) Totals() model.Totals {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.ledger.Totals()
}

// RecentHistory последние ставки, самая новая первой
func (s *Session) RecentHistory(limit int) []model.BetOutcome {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.ledger.RecentHistory(limit)
}

// Snapshot состояние сессии для отображения
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return model.SessionSnapshot{
		Game:    s.cfg.Name,
		Balance: s.balance,
		Totals:  s.ledger.Totals(),
		History: s.ledger.RecentHistory(s.ledger.Retention()),
	}
}
