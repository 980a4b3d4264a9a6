package app

import (
	"context"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/infra/config"
	"github.com/IT-Nick/tutorbot/internal/infra/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// InitDatabase устанавливает подключение к базе данных и создает недостающие таблицы
func InitDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if err := postgres.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("dbname", cfg.Database.Name))
	return db, nil
}
