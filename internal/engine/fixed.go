package engine

import (
	"fmt"

	"minigames_backend/internal/model"
	"minigames_backend/pkg/money"
)

// FixedPayout выигрыш или проигрыш с фиксированным множителем (кубик, монетка, КНБ)
type FixedPayout struct {
	kind       model.GameKind
	multiplier float64
	faces      int // Только для кубика
}

func (f *FixedPayout) Kind() model.GameKind {
	return f.kind
}

func (f *FixedPayout) Validate(sel model.Selection) error {
	switch f.kind {
	case model.KindDice:
		if sel.Number < 1 || sel.Number > f.faces {
			return fmt.Errorf("%w: number %d outside 1-%d", ErrInvalidSelection, sel.Number, f.faces)
		}
	case model.KindCoinToss:
		if !sel.Side.Valid() {
			return fmt.Errorf("%w: unknown side %q", ErrInvalidSelection, sel.Side)
		}
	case model.KindRPS:
		if !sel.Move.Valid() {
			return fmt.Errorf("%w: unknown move %q", ErrInvalidSelection, sel.Move)
		}
	}
	return nil
}

func (f *FixedPayout) Resolve(stake float64, sel model.Selection, odds OddsSource, rnd RandomSource) (Resolution, error) {
	if err := f.Validate(sel); err != nil {
		return Resolution{}, err
	}

	// Первый розыгрыш всегда шанс по таблице
	won := hit(rnd, odds.ProbabilityFor(stake, sel))

	var res Resolution
	switch f.kind {
	case model.KindDice:
		// Второй розыгрыш это число на кубике. Выигрыш только если совпали оба
		rolled := int(rnd.Float64()*float64(f.faces)) + 1
		if rolled > f.faces {
			rolled = f.faces
		}
		res.Detail.Rolled = rolled
		won = won && rolled == sel.Number
	case model.KindCoinToss:
		res.Detail.Landed = sel.Side
		if !won {
			res.Detail.Landed = sel.Side.Opposite()
		}
	case model.KindRPS:
		res.Detail.HouseMove = sel.Move.Beats()
		if !won {
			res.Detail.HouseMove = sel.Move.BeatenBy()
		}
	}

	res.Won = won
	if won {
		res.Multiplier = money.Round2(f.multiplier)
		res.PayoutMultiplier = res.Multiplier
	}
	return res, nil
}
