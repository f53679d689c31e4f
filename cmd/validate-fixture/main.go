package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/grocery/config"
	"github.com/Gunvolt24/grocery/pkg/validate"
	"github.com/joho/godotenv"
)

// CLI-приложение для проверки CSV-фикстуры заказов.
// Печатает по строке на каждую некорректную запись и итог; код выхода 1 при ошибках.
func main() {
	_ = godotenv.Load(".env.local")

	defaultPath := "support/orders.csv"
	if cfg, err := config.Load(); err == nil {
		defaultPath = cfg.Fixture.Path
	}

	inputPath := flag.String("in", defaultPath, "path to orders CSV fixture; '-' reads from stdin")
	flag.Parse()

	ctx := context.Background()
	orderValidator := validate.NewOrderValidator()

	var (
		summary validate.Summary
		err     error
	)
	if *inputPath == "-" {
		summary, err = validate.ValidateStream(ctx, orderValidator, os.Stdin, os.Stdout)
	} else {
		summary, err = validate.ValidateFile(ctx, orderValidator, *inputPath, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
