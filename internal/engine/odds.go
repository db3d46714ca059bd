package engine

import (
	"fmt"
	"math"
	"sort"

	"minigames_backend/internal/model"
)

// OddsSource источник вероятности выигрыша для ставки
type OddsSource interface {
	ProbabilityFor(stake float64, sel model.Selection) float64
}

// OddsTable таблица шансов по размеру ставки, отсортирована по возрастанию порога
type OddsTable struct {
	tiers []model.OddsTier
}

// NewOddsTable проверяет и сортирует ступени
func NewOddsTable(tiers []model.OddsTier) (*OddsTable, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: odds table is empty", ErrInvalidConfig)
	}

	sorted := make([]model.OddsTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StakeThreshold < sorted[j].StakeThreshold
	})

	for i, t := range sorted {
		if t.StakeThreshold < 0 || math.IsNaN(t.StakeThreshold) {
			return nil, fmt.Errorf("%w: tier %d has negative threshold", ErrInvalidConfig, i)
		}
		if t.WinProbability < 0 || t.WinProbability > 1 || math.IsNaN(t.WinProbability) {
			return nil, fmt.Errorf("%w: tier %d probability %v out of [0,1]", ErrInvalidConfig, i, t.WinProbability)
		}
		if i > 0 && sorted[i-1].StakeThreshold == t.StakeThreshold {
			return nil, fmt.Errorf("%w: duplicate threshold %v", ErrInvalidConfig, t.StakeThreshold)
		}
	}

	return &OddsTable{tiers: sorted}, nil
}

// WinProbability ищет самую старшую ступень, порог которой не больше ставки.
// Ставки ниже младшей ступени получают её вероятность.
func (t *OddsTable) WinProbability(stake float64) float64 {
	// Идём от самой "богатой" ступени вниз
	for i := len(t.tiers) - 1; i >= 0; i-- {
		if stake >= t.tiers[i].StakeThreshold {
			return t.tiers[i].WinProbability
		}
	}
	return t.tiers[0].WinProbability
}

// ProbabilityFor реализует OddsSource, выбор игрока на шанс не влияет
func (t *OddsTable) ProbabilityFor(stake float64, _ model.Selection) float64 {
	return t.WinProbability(stake)
}

// Probabilities вероятности всех ступеней в порядке возрастания порога
func (t *OddsTable) Probabilities() []float64 {
	res := make([]float64, len(t.tiers))
	for i, tier := range t.tiers {
		res[i] = tier.WinProbability
	}
	return res
}

// Tiers копия ступеней
func (t *OddsTable) Tiers() []model.OddsTier {
	res := make([]model.OddsTier, len(t.tiers))
	copy(res, t.tiers)
	return res
}

// MonotonicViolations индексы ступеней, на которых вероятность растёт вместе со ставкой.
// Таблица не исправляется, нарушение только сообщается.
func (t *OddsTable) MonotonicViolations() []int {
	var res []int
	for i := 1; i < len(t.tiers); i++ {
		if t.tiers[i].WinProbability > t.tiers[i-1].WinProbability {
			res = append(res, i)
		}
	}
	return res
}

// TargetOdds шанс лимбо: чем выше цель, тем меньше шанс
type TargetOdds struct {
	RTP float64
}

func (o TargetOdds) ProbabilityFor(_ float64, sel model.Selection) float64 {
	if sel.Target <= 0 {
		return 0
	}
	return clamp01(o.RTP / sel.Target)
}

// OddsOverride явная подмена вероятности. Таблица шансов при этом не используется
type OddsOverride struct {
	Probability float64
}

func (o OddsOverride) ProbabilityFor(float64, model.Selection) float64 {
	return clamp01(o.Probability)
}

// Validate проверяет что вероятность в [0,1]
func (o OddsOverride) Validate() error {
	if math.IsNaN(o.Probability) || o.Probability < 0 || o.Probability > 1 {
		return fmt.Errorf("%w: probability %v", ErrInvalidOverride, o.Probability)
	}
	return nil
}

func clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
