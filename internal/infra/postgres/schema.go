package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema - таблицы и индексы бота
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tests (
		id                   SERIAL PRIMARY KEY,
		type                 INTEGER,
		question             TEXT NOT NULL,
		options              TEXT,
		correct_answer       TEXT,
		explanation          TEXT,
		hint                 TEXT,
		detailed_explanation TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS test_answers (
		id             SERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL,
		username       TEXT,
		answer_time    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		test_type      INTEGER NOT NULL,
		question_id    INTEGER NOT NULL,
		question_text  TEXT,
		user_answer    TEXT,
		correct_answer TEXT,
		is_correct     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS test_answers_user_idx ON test_answers (user_id, is_correct)`,
	`CREATE TABLE IF NOT EXISTS test_activity (
		id          SERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL,
		test_type   INTEGER NOT NULL,
		question_id INTEGER NOT NULL,
		started_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		answered_at TIMESTAMP,
		user_answer TEXT,
		is_correct  BOOLEAN
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS test_activity_open_idx
		ON test_activity (user_id, question_id) WHERE answered_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS test_progress (
		user_id    BIGINT NOT NULL,
		test_type  INTEGER NOT NULL,
		idx        INTEGER NOT NULL,
		q_ids      INTEGER[] NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, test_type)
	)`,
	`CREATE TABLE IF NOT EXISTS feedback_records (
		id         SERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL,
		full_name  TEXT,
		topic      TEXT,
		transcript TEXT,
		feedback   TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS learners (
		telegram_id         BIGINT PRIMARY KEY,
		telegram_username   TEXT,
		telegram_first_name TEXT,
		full_name           TEXT,
		created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		message_key  TEXT PRIMARY KEY,
		message_text TEXT NOT NULL
	)`,
}

// CreateSchema создает недостающие таблицы и индексы. Миграций нет, схема только дополняется.
func CreateSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}
