// Package postgrestest подключает тесты репозиториев к настоящему Postgres.
package postgrestest

import (
	"os"
	"testing"
	"time"

	"github.com/IT-Nick/tutorbot/internal/infra/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnvDSN - переменная со строкой подключения к тестовой базе
const EnvDSN = "TUTORBOT_TEST_DATABASE_URL"

// Open подключается к тестовой базе и создает схему. Без EnvDSN тест пропускается.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skip(EnvDSN + " is not set")
	}

	db, err := pgxpool.New(t.Context(), dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	if err := postgres.CreateSchema(t.Context(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

// UserID возвращает id пользователя, которого нет в базе, чтобы тесты не мешали друг другу
func UserID(t testing.TB) int64 {
	t.Helper()
	return -time.Now().UnixNano()
}
