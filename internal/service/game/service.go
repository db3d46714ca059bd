package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"minigames_backend/internal/config"
	"minigames_backend/internal/engine"
	"minigames_backend/internal/logger"
	"minigames_backend/internal/middleware"
	"minigames_backend/internal/model"
	"minigames_backend/internal/repository"
	"minigames_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

var (
	// ErrUnknownGame игры нет в config.yaml
	ErrUnknownGame = errors.New("unknown game")
	// ErrNoUser в контексте нет игрока
	ErrNoUser = errors.New("user id not found in context")
)

type sessionKey struct {
	userID int
	game   string
}

type sessionEntry struct {
	sess     *engine.Session
	lastUsed time.Time
}

type serv struct {
	gamesCfg     config.GamesConfig
	walletRepo   repository.WalletRepository
	statsRepo    repository.HouseStatsRepository
	txManager    trm.Manager
	startBalance float64
	idleTTL      time.Duration
	sessionOpts  []engine.SessionOption
	now          func() time.Time

	mtx       sync.Mutex
	sessions  map[sessionKey]*sessionEntry
	inFlight  map[int]struct{}
	lastSweep time.Time
}

// NewGameService сервис мини-игр поверх движка ставок
func NewGameService(
	gamesCfg config.GamesConfig,
	walletRepo repository.WalletRepository,
	statsRepo repository.HouseStatsRepository,
	txManager trm.Manager,
	startBalance float64,
	idleTTL time.Duration,
	sessionOpts ...engine.SessionOption,
) service.GameService {
	return &serv{
		gamesCfg:     gamesCfg,
		walletRepo:   walletRepo,
		statsRepo:    statsRepo,
		txManager:    txManager,
		startBalance: startBalance,
		idleTTL:      idleTTL,
		sessionOpts:  sessionOpts,
		now:          time.Now,
		sessions:     make(map[sessionKey]*sessionEntry),
		inFlight:     make(map[int]struct{}),
	}
}

// ValidateGames проверяет константы всех игр и пишет в лог ступени,
// где шанс растёт вместе со ставкой
func ValidateGames(gamesCfg config.GamesConfig) error {
	for _, cfg := range gamesCfg.Games() {
		if _, _, err := engine.NewResolver(cfg); err != nil {
			return err
		}
		if _, err := engine.NewLedger(cfg.HistorySize); err != nil {
			return fmt.Errorf("%s: %w", cfg.Name, err)
		}
		if len(cfg.Odds) == 0 {
			continue
		}
		table, err := engine.NewOddsTable(cfg.Odds)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Name, err)
		}
		if v := table.MonotonicViolations(); len(v) > 0 {
			logger.Log.Warn("odds table is not monotonic",
				zap.String("game", cfg.Name),
				zap.Ints("tiers", v),
			)
		}
	}
	return nil
}

func (s *serv) Games() []model.GameConfig {
	return s.gamesCfg.Games()
}

// session возвращает сессию игрока, создавая её из баланса кошелька
func (s *serv) session(ctx context.Context, userID int, game string) (*engine.Session, error) {
	cfg, ok := s.gamesCfg.Game(game)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}

	key := sessionKey{userID: userID, game: game}

	s.mtx.Lock()
	s.sweepLocked()
	entry, ok := s.sessions[key]
	if ok {
		entry.lastUsed = s.now()
	}
	s.mtx.Unlock()
	if ok {
		return entry.sess, nil
	}

	balance, err := s.walletBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	created, err := engine.NewSession(cfg, balance, s.sessionOpts...)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	// Параллельный запрос мог успеть раньше
	if entry, ok := s.sessions[key]; ok {
		entry.lastUsed = s.now()
		return entry.sess, nil
	}
	s.sessions[key] = &sessionEntry{sess: created, lastUsed: s.now()}
	return created, nil
}

// sweepLocked выгружает сессии, простоявшие дольше idleTTL.
// Журнал выгруженной сессии теряется, баланс остаётся в кошельке
func (s *serv) sweepLocked() {
	if s.idleTTL <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.idleTTL {
		return
	}
	s.lastSweep = now

	for key, entry := range s.sessions {
		if now.Sub(entry.lastUsed) < s.idleTTL || entry.sess.Pending() {
			continue
		}
		if _, busy := s.inFlight[key.userID]; busy {
			continue
		}
		delete(s.sessions, key)
	}
}

// acquire занимает игрока на время ставки. Баланс общий для всех игр,
// поэтому вторая ставка игрока отклоняется в любой игре
func (s *serv) acquire(userID int) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *serv) release(userID int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.inFlight, userID)
}

// walletBalance баланс кошелька, новый кошелёк открывается со стартовым балансом
func (s *serv) walletBalance(ctx context.Context, userID int) (float64, error) {
	balance, err := s.walletRepo.GetBalance(ctx, userID)
	if errors.Is(err, repository.ErrWalletNotFound) {
		if err := s.walletRepo.CreateWallet(ctx, userID, s.startBalance); err != nil {
			return 0, fmt.Errorf("failed to create wallet: %w", err)
		}
		return s.startBalance, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	return balance, nil
}

// lockedBalance баланс кошелька под блокировкой строки, вызывается внутри транзакции
func (s *serv) lockedBalance(ctx context.Context, userID int) (float64, error) {
	balance, err := s.walletRepo.LockBalance(ctx, userID)
	if errors.Is(err, repository.ErrWalletNotFound) {
		if err := s.walletRepo.CreateWallet(ctx, userID, s.startBalance); err != nil {
			return 0, fmt.Errorf("failed to create wallet: %w", err)
		}
		balance, err = s.walletRepo.LockBalance(ctx, userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock wallet balance: %w", err)
	}
	return balance, nil
}

func userFrom(ctx context.Context) (int, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, ErrNoUser
	}
	return userID, nil
}
