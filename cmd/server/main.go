package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/grocery/config"
	"github.com/Gunvolt24/grocery/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

// run — код выхода процесса; отложенная очистка выполняется до os.Exit.
func run() int {
	// .env.local необязателен — в контейнере переменные приходят из окружения.
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		return 1
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "service stopped with error: %v", err)
		return 1
	}
	return 0
}
