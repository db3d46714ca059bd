package engine

import (
	"fmt"
	"math"

	"minigames_backend/internal/model"
)

const (
	defaultDiceFaces = 6
	defaultJitter    = 0.1
	defaultBreakEven = 1.0
)

// Resolution исход ставки до расчёта выплаты
type Resolution struct {
	Won              bool
	Multiplier       float64 // Выпавший множитель, округлён до двух знаков
	PayoutMultiplier float64 // 0 при проигрыше
	Detail           model.OutcomeDetail
}

// Resolver стратегия розыгрыша исхода
type Resolver interface {
	Kind() model.GameKind
	// Validate отклоняет неподходящий выбор игрока до любых розыгрышей
	Validate(sel model.Selection) error
	Resolve(stake float64, sel model.Selection, odds OddsSource, rnd RandomSource) (Resolution, error)
}

// NewResolver собирает стратегию и источник шансов по конфигу игры
func NewResolver(cfg model.GameConfig) (Resolver, OddsSource, error) {
	switch cfg.Kind {
	case model.KindDice, model.KindCoinToss, model.KindRPS:
		if cfg.Multiplier <= 0 || math.IsInf(cfg.Multiplier, 0) {
			return nil, nil, fmt.Errorf("%w: %s: multiplier must be positive", ErrInvalidConfig, cfg.Name)
		}
		table, err := NewOddsTable(cfg.Odds)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", cfg.Name, err)
		}
		faces := 0
		if cfg.Kind == model.KindDice {
			faces = cfg.DiceFaces
			if faces <= 0 {
				faces = defaultDiceFaces
			}
		}
		return &FixedPayout{kind: cfg.Kind, multiplier: cfg.Multiplier, faces: faces}, table, nil

	case model.KindLimbo:
		if cfg.RTP <= 0 || cfg.RTP > 1 {
			return nil, nil, fmt.Errorf("%w: %s: rtp must be in (0,1]", ErrInvalidConfig, cfg.Name)
		}
		jitter := cfg.Jitter
		if jitter <= 0 {
			jitter = defaultJitter
		}
		return &GraduatedMultiplier{
			kind:      model.KindLimbo,
			jitter:    jitter,
			maxTarget: cfg.MaxTarget,
		}, TargetOdds{RTP: cfg.RTP}, nil

	case model.KindBalloon:
		table, err := NewOddsTable(cfg.Odds)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", cfg.Name, err)
		}
		guaranteed := cfg.Guaranteed
		if len(guaranteed) == 0 {
			guaranteed = []float64{0.2, 0.5}
		}
		for _, m := range append(append([]float64{}, guaranteed...), cfg.Cascade...) {
			if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
				return nil, nil, fmt.Errorf("%w: %s: balloon multiplier %v", ErrInvalidConfig, cfg.Name, m)
			}
		}
		breakEven := cfg.BreakEven
		if breakEven <= 0 {
			breakEven = defaultBreakEven
		}
		return &GraduatedMultiplier{
			kind:       model.KindBalloon,
			guaranteed: guaranteed,
			cascade:    cfg.Cascade,
			breakEven:  breakEven,
		}, table, nil
	}

	return nil, nil, fmt.Errorf("%w: %s: unknown game kind %q", ErrInvalidConfig, cfg.Name, cfg.Kind)
}

// hit розыгрыш вероятности. Значение равное порогу считается проигрышем
func hit(rnd RandomSource, p float64) bool {
	return rnd.Float64() < p
}
