package model

// GameKind тип игры. Определяет стратегию расчёта исхода
type GameKind string

const (
	KindDice     GameKind = "dice"
	KindCoinToss GameKind = "coin_toss"
	KindRPS      GameKind = "rps"
	KindLimbo    GameKind = "limbo"
	KindBalloon  GameKind = "balloon"
)

// OddsTier ступень таблицы шансов: ставки от StakeThreshold выигрывают с WinProbability
type OddsTier struct {
	StakeThreshold float64
	WinProbability float64
}

// GameConfig константы одной игры
type GameConfig struct {
	Name        string
	Kind        GameKind
	MaxBet      float64
	Multiplier  float64 // Фиксированный множитель выплаты (кубик, монетка, КНБ)
	HistorySize int
	TargetRTP   float64 // Целевой RTP казино в процентах
	Odds        []OddsTier

	// Кубик
	DiceFaces int

	// Лимбо
	RTP       float64 // Доля, из которой считается шанс: p = RTP / target
	Jitter    float64 // Максимальный разброс вверх при выигрыше, доля от цели
	MaxTarget float64

	// Шарик
	Guaranteed []float64
	Cascade    []float64
	BreakEven  float64
}
