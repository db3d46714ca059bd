package main

import (
	"log"

	"minigames_backend/internal/app"

	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
