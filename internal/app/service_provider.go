package app

import (
	"context"

	gameAPI "minigames_backend/internal/api/game"
	"minigames_backend/internal/config"
	"minigames_backend/internal/config/env"
	"minigames_backend/internal/middleware"
	"minigames_backend/internal/repository"
	"minigames_backend/internal/repository/house_stats_repo"
	"minigames_backend/internal/repository/wallet_repo"
	"minigames_backend/internal/service"
	"minigames_backend/internal/service/game"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Окно скользящего RTP по каждой игре
const statsWindowSize = 1000

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg config.JWTConfig

	// Wallet bits
	walletRepo repository.WalletRepository

	// Game bits
	gamesCfg       config.GamesConfig
	sessionCfg     config.SessionConfig
	houseStatsRepo repository.HouseStatsRepository
	gameServ       service.GameService
	gameHand       *gameAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) WalletRepo(ctx context.Context) repository.WalletRepository {
	if sp.walletRepo == nil {
		sp.walletRepo = wallet_repo.NewWalletRepository(sp.DBClient(ctx))
	}
	return sp.walletRepo
}

func (sp *ServiceProvider) GamesCfg() config.GamesConfig {
	if sp.gamesCfg == nil {
		cfg, err := env.NewGamesConfigFromYAML(env.GamesConfigPath())
		if err != nil {
			panic("failed to get games config: " + err.Error())
		}
		// Ошибки в таблицах лучше поймать до первой ставки
		if err := game.ValidateGames(cfg); err != nil {
			panic("invalid games config: " + err.Error())
		}
		sp.gamesCfg = cfg
	}
	return sp.gamesCfg
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) HouseStatsRepository() repository.HouseStatsRepository {
	if sp.houseStatsRepo == nil {
		targets := make(map[string]float64)
		for _, g := range sp.GamesCfg().Games() {
			targets[g.Name] = g.TargetRTP
		}
		sp.houseStatsRepo = house_stats_repo.NewHouseStatsRepository(targets, statsWindowSize)
	}
	return sp.houseStatsRepo
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.GamesCfg(),
			sp.WalletRepo(ctx),
			sp.HouseStatsRepository(),
			sp.TXManager(ctx),
			sp.SessionCfg().StartBalance(),
			sp.SessionCfg().SessionIdleTTL(),
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv: sp.GameService(ctx),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		gameHandler := sp.GameHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			rr.Get("/games", gameHandler.List)
			rr.Route("/games/{game}", func(gr chi.Router) {
				gr.Post("/bet", gameHandler.PlaceBet)
				gr.Get("/session", gameHandler.Session)
				gr.Post("/reset", gameHandler.Reset)
				gr.Get("/stats", gameHandler.Stats)
			})
		})

		sp.router = r
	}

	return sp.router
}
