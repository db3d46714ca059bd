// token выпускает access токен игрока для локальной проверки API
package main

import (
	"flag"
	"fmt"
	"log"

	"minigames_backend/internal/config"
	"minigames_backend/internal/config/env"
	"minigames_backend/pkg/token"
)

func main() {
	userID := flag.Int("user", 1, "id игрока")
	dev := flag.Bool("dev", false, "разрешить подмену вероятности")
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg, err := env.NewJWTConfig()
	if err != nil {
		log.Fatalf("failed to get jwt config: %v", err)
	}

	access, err := token.GenerateAccessToken(*userID, *dev, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Println(access)
}
