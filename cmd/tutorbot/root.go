package main

import (
	"fmt"
	"os"

	"github.com/IT-Nick/tutorbot/internal/infra/config"
	"github.com/IT-Nick/tutorbot/internal/infra/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "configs/config.yaml"

var rootCmd = &cobra.Command{
	Use:           "tutorbot",
	Short:         "Telegram-бот репетитор по органической химии",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "путь к yaml-конфигу (по умолчанию CONFIG_PATH или "+defaultConfigPath+")")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lecturesCmd)
}

// loadConfig читает конфиг по флагу --config, затем по CONFIG_PATH, затем по пути по умолчанию
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("logger.New: %w", err)
	}
	return cfg, log, nil
}
