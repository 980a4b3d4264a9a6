package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/IT-Nick/tutorbot/internal/app"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Запустить бота и HTTP-сервер",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.NewApp(ctx, cfg, log)
		if err != nil {
			return err
		}

		log.Info("app starting")
		return a.ListenAndServe(ctx)
	},
}
