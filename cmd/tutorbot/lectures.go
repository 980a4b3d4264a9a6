package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/IT-Nick/tutorbot/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var lecturesCmd = &cobra.Command{
	Use:   "lectures",
	Short: "Работа с подготовленными лекциями",
}

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Подготовить лекции для порций учебника, у которых их еще нет",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		chapter, _ := cmd.Flags().GetString("chapter")
		force, _ := cmd.Flags().GetBool("force")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stats, err := app.PrepareLectures(ctx, cfg, log, chapter, force)
		log.Info("lectures prepared",
			zap.Int("prepared", stats.Prepared), zap.Int("skipped", stats.Skipped), zap.Int("failed", stats.Failed))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "готово: %d, пропущено: %d, ошибок: %d\n", stats.Prepared, stats.Skipped, stats.Failed)
		return nil
	},
}

func init() {
	prepareCmd.Flags().String("chapter", "", "подготовить только эту главу")
	prepareCmd.Flags().Bool("force", false, "перегенерировать уже готовые лекции")

	lecturesCmd.AddCommand(prepareCmd)
}
