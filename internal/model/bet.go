package model

import "time"

// Side сторона монеты
type Side string

const (
	SideHeads Side = "heads"
	SideTails Side = "tails"
)

// Opposite возвращает противоположную сторону
func (s Side) Opposite() Side {
	if s == SideHeads {
		return SideTails
	}
	return SideHeads
}

// Valid проверяет что сторона известна
func (s Side) Valid() bool {
	return s == SideHeads || s == SideTails
}

// Move ход в камень-ножницы-бумага
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Valid проверяет что ход известен
func (m Move) Valid() bool {
	return m == MoveRock || m == MovePaper || m == MoveScissors
}

// Beats возвращает ход, который проигрывает текущему
func (m Move) Beats() Move {
	switch m {
	case MoveRock:
		return MoveScissors
	case MovePaper:
		return MoveRock
	default:
		return MovePaper
	}
}

// BeatenBy возвращает ход, который выигрывает у текущего
func (m Move) BeatenBy() Move {
	switch m {
	case MoveRock:
		return MovePaper
	case MovePaper:
		return MoveScissors
	default:
		return MoveRock
	}
}

// Mode режим расчёта вероятности
type Mode string

const (
	ModeNormal     Mode = "normal"
	ModeOverridden Mode = "overridden"
)

// Selection выбор игрока. Заполняется только поле нужное конкретной игре
type Selection struct {
	Number int     // Кубик: число 1-6
	Side   Side    // Монетка
	Move   Move    // Камень-ножницы-бумага
	Target float64 // Лимбо: целевой множитель
}

// BetRequest ставка игрока
type BetRequest struct {
	Stake     float64
	Selection Selection
}

// OutcomeDetail то, что показывается игроку помимо выигрыша
type OutcomeDetail struct {
	Rolled     int       // Кубик: выпавшее число
	Landed     Side      // Монетка: выпавшая сторона
	HouseMove  Move      // КНБ: ход казино
	Candidates []float64 // Шарик: набор множителей, из которого тянули
}

// BetOutcome результат одной ставки. После создания не меняется
type BetOutcome struct {
	ID               string
	Game             string
	Mode             Mode
	Stake            float64
	Selection        Selection
	Won              bool
	Multiplier       float64 // Выпавший множитель (для отображения)
	PayoutMultiplier float64 // Множитель, по которому считается выплата
	RawPayout        float64
	CappedPayout     float64
	Profit           float64
	BalanceAfter     float64
	Detail           OutcomeDetail
	PlacedAt         time.Time
}

// Totals накопленная статистика сессии
type Totals struct {
	Wins   int
	Losses int
	Profit float64
}

// BetResult то, что получает вызывающий после ставки
type BetResult struct {
	Outcome BetOutcome
	Balance float64
	Totals  Totals
	History []BetOutcome
}

// SessionSnapshot состояние игровой сессии
type SessionSnapshot struct {
	Game    string
	Balance float64
	Totals  Totals
	History []BetOutcome
}
