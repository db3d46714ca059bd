package house_stats_repo

import (
	"math"
	"sync"

	"minigames_backend/internal/logger"
	"minigames_backend/internal/model"
	repoModel "minigames_backend/internal/repository/house_stats_repo/model"

	"go.uber.org/zap"
)

const (
	// periodBetsToCheck Периодичность проверки RTP окна (каждые N ставок)
	periodBetsToCheck = 25
	// criticalRTPDeviation отклонение RTP окна в процентных пунктах, при котором включается тревога
	criticalRTPDeviation = 10.0
	// normalRTPDeviation отклонение, при котором тревога снимается
	normalRTPDeviation = 5.0
	// defaultWindowSize Размер окна по умолчанию
	defaultWindowSize = 500
)

// Реализация репозитория для хранения статистики казино в памяти
type StatsRepo struct {
	mtx        sync.RWMutex
	windowSize int
	states     map[string]*repoModel.GameState
}

// NewHouseStatsRepository targets целевой RTP в процентах по играм
func NewHouseStatsRepository(targets map[string]float64, windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	r := &StatsRepo{
		windowSize: windowSize,
		states:     make(map[string]*repoModel.GameState, len(targets)),
	}
	for game, target := range targets {
		r.states[game] = r.newState(target)
	}
	return r
}

func (r *StatsRepo) newState(target float64) *repoModel.GameState {
	return &repoModel.GameState{
		TargetRTP:  target,
		BetWindow:  make([]repoModel.BetResult, 0, r.windowSize),
		WindowSize: r.windowSize,
	}
}

// Record Обновление статистики после ставки
func (r *StatsRepo) Record(game string, stake, payout float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	state, ok := r.states[game]
	if !ok {
		state = r.newState(0)
		r.states[game] = state
	}

	state.TotalBets++
	state.TotalStake += stake
	state.TotalPayout += payout
	if state.TotalStake > 0 {
		state.CurrentRTP = state.TotalPayout / state.TotalStake * 100
	}

	// Добавляем ставку в окно
	state.BetWindow = append(state.BetWindow, repoModel.BetResult{Stake: stake, Payout: payout})

	// Поддерживаем размер окна
	if len(state.BetWindow) > state.WindowSize {
		state.BetWindow = state.BetWindow[1:]
	}

	var windowStake, windowPayout float64
	for _, bet := range state.BetWindow {
		windowStake += bet.Stake
		windowPayout += bet.Payout
	}
	if windowStake > 0 {
		state.WindowRTP = windowPayout / windowStake * 100
	} else {
		state.WindowRTP = 0
	}

	if state.TotalBets%periodBetsToCheck == 0 {
		r.alertCheck(game, state)
	}
}

// Проверка отклонения RTP окна от целевого. Без целевого RTP не проверяем
func (r *StatsRepo) alertCheck(game string, state *repoModel.GameState) {
	if state.TargetRTP <= 0 {
		return
	}
	absoluteDiff := math.Abs(state.WindowRTP - state.TargetRTP)

	if absoluteDiff > criticalRTPDeviation {
		direction := "low"
		if state.WindowRTP > state.TargetRTP {
			direction = "high"
		}
		if !state.AlertMode || state.AlertDirection != direction {
			logger.Log.Warn("house rtp alert",
				zap.String("game", game),
				zap.String("direction", direction),
				zap.Float64("window_rtp", state.WindowRTP),
				zap.Float64("target_rtp", state.TargetRTP),
				zap.Float64("house_profit", state.TotalStake-state.TotalPayout),
			)
		}
		state.AlertMode = true
		state.AlertDirection = direction
		return
	}

	// Выходим из режима тревоги, когда RTP вернулся к целевому
	if state.AlertMode && absoluteDiff < normalRTPDeviation {
		logger.Log.Info("house rtp back to normal",
			zap.String("game", game),
			zap.Float64("window_rtp", state.WindowRTP),
		)
		state.AlertMode = false
		state.AlertDirection = ""
	}
}

// Stats Копия статистики по игре
func (r *StatsRepo) Stats(game string) (model.HouseStats, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	state, ok := r.states[game]
	if !ok {
		return model.HouseStats{}, false
	}
	return model.HouseStats{
		Game:        game,
		TotalBets:   state.TotalBets,
		TotalStake:  state.TotalStake,
		TotalPayout: state.TotalPayout,
		CurrentRTP:  state.CurrentRTP,
		TargetRTP:   state.TargetRTP,
		WindowRTP:   state.WindowRTP,
		WindowSize:  len(state.BetWindow),
		AlertMode:   state.AlertMode,
	}, true
}
