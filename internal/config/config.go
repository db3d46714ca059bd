package config

import (
	"time"

	"minigames_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// GamesConfig константы всех игр из config.yaml
type GamesConfig interface {
	Games() []model.GameConfig
	Game(name string) (model.GameConfig, bool)
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

// SessionConfig параметры игровых сессий
type SessionConfig interface {
	StartBalance() float64
	LogLevel() string
	// SessionIdleTTL через сколько простоя сессия выгружается из памяти
	SessionIdleTTL() time.Duration
}
