package engine

import (
	"fmt"
	"math"

	"minigames_backend/internal/model"
	"minigames_backend/pkg/money"
)

// GraduatedMultiplier розыгрыш множителя (лимбо, шарик)
type GraduatedMultiplier struct {
	kind model.GameKind

	// Лимбо
	jitter    float64
	maxTarget float64

	// Шарик
	guaranteed []float64
	cascade    []float64
	breakEven  float64
}

func (g *GraduatedMultiplier) Kind() model.GameKind {
	return g.kind
}

func (g *GraduatedMultiplier) Validate(sel model.Selection) error {
	if g.kind != model.KindLimbo {
		return nil
	}

	if math.IsNaN(sel.Target) || math.IsInf(sel.Target, 0) {
		return fmt.Errorf("%w: target multiplier is not a number", ErrInvalidSelection)
	}
	target := money.Round2(sel.Target)
	if target <= 1 {
		return fmt.Errorf("%w: target multiplier %v must be above 1", ErrInvalidSelection, sel.Target)
	}
	if g.maxTarget > 0 && target > g.maxTarget {
		return fmt.Errorf("%w: target multiplier %v above max %v", ErrInvalidSelection, sel.Target, g.maxTarget)
	}
	return nil
}

func (g *GraduatedMultiplier) Resolve(stake float64, sel model.Selection, odds OddsSource, rnd RandomSource) (Resolution, error) {
	if err := g.Validate(sel); err != nil {
		return Resolution{}, err
	}
	if g.kind == model.KindBalloon {
		return g.resolveBalloon(stake, sel, odds, rnd), nil
	}
	return g.resolveLimbo(stake, sel, odds, rnd), nil
}

// resolveLimbo при выигрыше множитель = цель плюс разброс вверх,
// при проигрыше равномерно в [1, цель)
func (g *GraduatedMultiplier) resolveLimbo(stake float64, sel model.Selection, odds OddsSource, rnd RandomSource) Resolution {
	sel.Target = money.Round2(sel.Target)
	target := sel.Target

	if hit(rnd, odds.ProbabilityFor(stake, sel)) {
		jitter := rnd.Float64() * g.jitter * target
		return Resolution{
			Won:              true,
			Multiplier:       money.Round2(target + jitter),
			PayoutMultiplier: target,
		}
	}

	realized := money.Floor2(1 + rnd.Float64()*(target-1))
	if realized >= target {
		realized = money.Round2(target - 0.01)
	}
	return Resolution{Multiplier: realized}
}

// resolveBalloon собирает набор множителей каскадом проверок и тянет один из них
func (g *GraduatedMultiplier) resolveBalloon(stake float64, sel model.Selection, odds OddsSource, rnd RandomSource) Resolution {
	candidates := make([]float64, 0, len(g.guaranteed)+len(g.cascade))
	for _, m := range g.guaranteed {
		candidates = append(candidates, money.Round2(m))
	}

	// Каждая следующая ступень доступна только после успеха предыдущей,
	// шанс при этом делится пополам
	p := odds.ProbabilityFor(stake, sel)
	for _, m := range g.cascade {
		if !hit(rnd, p) {
			break
		}
		candidates = append(candidates, money.Round2(m))
		p /= 2
	}

	idx := int(rnd.Float64() * float64(len(candidates)))
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	revealed := candidates[idx]

	res := Resolution{
		Won:        revealed >= g.breakEven,
		Multiplier: revealed,
		Detail:     model.OutcomeDetail{Candidates: candidates},
	}
	if res.Won {
		res.PayoutMultiplier = revealed
	}
	return res
}
