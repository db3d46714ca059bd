package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"minigames_backend/internal/config"
)

const (
	startBalanceEnvName   = "START_BALANCE"
	logLevelEnvName       = "LOG_LEVEL"
	sessionIdleTTLEnvName = "SESSION_IDLE_TTL"

	defaultStartBalance   = 1000
	defaultLogLevel       = "info"
	defaultSessionIdleTTL = 30 * time.Minute
)

type sessionConfig struct {
	startBalance float64
	logLevel     string
	idleTTL      time.Duration
}

func NewSessionConfig() (config.SessionConfig, error) {
	cfg := &sessionConfig{
		startBalance: defaultStartBalance,
		logLevel:     defaultLogLevel,
		idleTTL:      defaultSessionIdleTTL,
	}

	if v := os.Getenv(startBalanceEnvName); len(v) != 0 {
		balance, err := strconv.ParseFloat(v, 64)
		if err != nil || balance < 0 {
			return nil, fmt.Errorf("invalid start balance %q", v)
		}
		cfg.startBalance = balance
	}

	if v := os.Getenv(logLevelEnvName); len(v) != 0 {
		cfg.logLevel = v
	}

	// 0 отключает вытеснение
	if v := os.Getenv(sessionIdleTTLEnvName); len(v) != 0 {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return nil, fmt.Errorf("invalid session idle ttl %q", v)
		}
		cfg.idleTTL = ttl
	}

	return cfg, nil
}

func (cfg *sessionConfig) StartBalance() float64 {
	return cfg.startBalance
}

func (cfg *sessionConfig) LogLevel() string {
	return cfg.logLevel
}

func (cfg *sessionConfig) SessionIdleTTL() time.Duration {
	return cfg.idleTTL
}
