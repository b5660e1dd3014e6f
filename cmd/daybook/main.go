package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/daybookapp/daybook/internal/cli"
	"github.com/daybookapp/daybook/internal/config"
	"github.com/daybookapp/daybook/internal/gate"
	"github.com/daybookapp/daybook/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(ctx, cfg, gate.NoneProber{}, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
