package converter

import (
	"time"

	"minigames_backend/internal/api/dto/game"
	"minigames_backend/internal/model"
	"minigames_backend/pkg/money"
)

func ToBetRequest(req game.BetRequest) model.BetRequest {
	return model.BetRequest{
		Stake: req.Stake,
		Selection: model.Selection{
			Number: req.Number,
			Side:   model.Side(req.Side),
			Move:   model.Move(req.Move),
			Target: req.Target,
		},
	}
}

func ToBetResponse(res model.BetResult) game.BetResponse {
	return game.BetResponse{
		Outcome: toOutcome(res.Outcome),
		Balance: money.Encode(res.Balance),
		Totals:  toTotals(res.Totals),
		History: toOutcomes(res.History),
	}
}

func ToSessionResponse(snap model.SessionSnapshot) game.SessionResponse {
	return game.SessionResponse{
		Game:    snap.Game,
		Balance: money.Encode(snap.Balance),
		Totals:  toTotals(snap.Totals),
		History: toOutcomes(snap.History),
	}
}

func ToStatsResponse(s model.HouseStats) game.StatsResponse {
	return game.StatsResponse{
		Game:        s.Game,
		TotalBets:   s.TotalBets,
		TotalStake:  money.Encode(s.TotalStake),
		TotalPayout: money.Encode(s.TotalPayout),
		CurrentRTP:  money.Round2(s.CurrentRTP),
		TargetRTP:   s.TargetRTP,
		WindowRTP:   money.Round2(s.WindowRTP),
		WindowSize:  s.WindowSize,
		Alert:       s.AlertMode,
	}
}

func ToGameInfos(cfgs []model.GameConfig) []game.GameInfo {
	result := make([]game.GameInfo, len(cfgs))
	for i, c := range cfgs {
		result[i] = game.GameInfo{
			Name:        c.Name,
			Kind:        string(c.Kind),
			MaxBet:      money.Encode(c.MaxBet),
			Multiplier:  c.Multiplier,
			HistorySize: c.HistorySize,
		}
	}
	return result
}

func toOutcome(o model.BetOutcome) game.Outcome {
	return game.Outcome{
		ID:               o.ID,
		Game:             o.Game,
		Mode:             string(o.Mode),
		Stake:            money.Encode(o.Stake),
		Won:              o.Won,
		Multiplier:       money.Encode(o.Multiplier),
		PayoutMultiplier: money.Encode(o.PayoutMultiplier),
		RawPayout:        money.Encode(o.RawPayout),
		Payout:           money.Encode(o.CappedPayout),
		Profit:           money.Encode(o.Profit),
		BalanceAfter:     money.Encode(o.BalanceAfter),
		Rolled:           o.Detail.Rolled,
		Landed:           string(o.Detail.Landed),
		HouseMove:        string(o.Detail.HouseMove),
		Candidates:       o.Detail.Candidates,
		PlacedAt:         o.PlacedAt.UTC().Format(time.RFC3339),
	}
}

func toOutcomes(outcomes []model.BetOutcome) []game.Outcome {
	result := make([]game.Outcome, len(outcomes))
	for i, o := range outcomes {
		result[i] = toOutcome(o)
	}
	return result
}

func toTotals(t model.Totals) game.Totals {
	return game.Totals{
		Wins:   t.Wins,
		Losses: t.Losses,
		Profit: money.Encode(t.Profit),
	}
}
