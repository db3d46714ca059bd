package model

// Состояние одной игры с точки зрения казино
type GameState struct {
	TotalBets   int     // Сколько всего ставок сделано
	TotalStake  float64 // Сумма всех ставок
	TotalPayout float64 // Сумма всех выплат

	CurrentRTP float64 // Текущий RTP = (TotalPayout/TotalStake)*100
	TargetRTP  float64 // Какой RTP ожидаем по конфигу игры

	AlertMode      bool   // RTP в окне сильно ушёл от целевого
	AlertDirection string // "high" или "low"

	BetWindow  []BetResult // Окно последних ставок для анализа
	WindowRTP  float64     // RTP в окне последних ставок
	WindowSize int         // Размер окна для анализа RTP
}

// Результат ставки для окна
type BetResult struct {
	Stake  float64
	Payout float64
}
