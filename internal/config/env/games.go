package env

import (
	"errors"
	"fmt"
	"os"

	"minigames_backend/internal/config"
	"minigames_backend/internal/model"

	"gopkg.in/yaml.v3"
)

// GamesConfigEnvName путь до файла с константами игр
const GamesConfigEnvName = "GAMES_CONFIG"

type tierYAML struct {
	Threshold   float64 `yaml:"threshold"`
	Probability float64 `yaml:"probability"`
}

type gameYAML struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"`
	MaxBet      float64    `yaml:"max_bet"`
	Multiplier  float64    `yaml:"multiplier"`
	HistorySize int        `yaml:"history_size"`
	TargetRTP   float64    `yaml:"target_rtp"`
	Odds        []tierYAML `yaml:"odds"`

	DiceFaces int `yaml:"dice_faces"`

	RTP       float64 `yaml:"rtp"`
	Jitter    float64 `yaml:"jitter"`
	MaxTarget float64 `yaml:"max_target"`

	Guaranteed []float64 `yaml:"guaranteed"`
	Cascade    []float64 `yaml:"cascade"`
	BreakEven  float64   `yaml:"break_even"`
}

type gamesFile struct {
	Games []gameYAML `yaml:"games"`
}

type gamesConfig struct {
	games []model.GameConfig
	index map[string]int
}

// GamesConfigPath путь к config.yaml с учётом переменной окружения
func GamesConfigPath() string {
	if p := os.Getenv(GamesConfigEnvName); len(p) != 0 {
		return p
	}
	return "config.yaml"
}

// NewGamesConfigFromYAML читает константы игр из YAML файла
func NewGamesConfigFromYAML(path string) (config.GamesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games config: %w", err)
	}
	return ParseGamesConfig(data)
}

// ParseGamesConfig разбирает YAML с константами игр
func ParseGamesConfig(data []byte) (config.GamesConfig, error) {
	var file gamesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse games config: %w", err)
	}
	if len(file.Games) == 0 {
		return nil, errors.New("games config has no games")
	}

	cfg := &gamesConfig{index: make(map[string]int, len(file.Games))}
	for _, g := range file.Games {
		if len(g.Name) == 0 {
			return nil, errors.New("game without name in config")
		}
		if _, ok := cfg.index[g.Name]; ok {
			return nil, fmt.Errorf("duplicate game %q in config", g.Name)
		}

		tiers := make([]model.OddsTier, len(g.Odds))
		for i, t := range g.Odds {
			tiers[i] = model.OddsTier{StakeThreshold: t.Threshold, WinProbability: t.Probability}
		}

		cfg.index[g.Name] = len(cfg.games)
		cfg.games = append(cfg.games, model.GameConfig{
			Name:        g.Name,
			Kind:        model.GameKind(g.Kind),
			MaxBet:      g.MaxBet,
			Multiplier:  g.Multiplier,
			HistorySize: g.HistorySize,
			TargetRTP:   g.TargetRTP,
			Odds:        tiers,
			DiceFaces:   g.DiceFaces,
			RTP:         g.RTP,
			Jitter:      g.Jitter,
			MaxTarget:   g.MaxTarget,
			Guaranteed:  g.Guaranteed,
			Cascade:     g.Cascade,
			BreakEven:   g.BreakEven,
		})
	}

	return cfg, nil
}

func (c *gamesConfig) Games() []model.GameConfig {
	res := make([]model.GameConfig, len(c.games))
	copy(res, c.games)
	return res
}

func (c *gamesConfig) Game(name string) (model.GameConfig, bool) {
	i, ok := c.index[name]
	if !ok {
		return model.GameConfig{}, false
	}
	return c.games[i], true
}
