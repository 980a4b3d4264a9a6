package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LearnerRepository реализация хранилища учеников на PostgreSQL
type LearnerRepository struct {
	db *pgxpool.Pool
}

// NewLearnerRepository создает новый экземпляр LearnerRepository
func NewLearnerRepository(db *pgxpool.Pool) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// GetLearnerByTelegramID ищет ученика по Telegram ID. Если ученика нет, возвращает nil.
func (r *LearnerRepository) GetLearnerByTelegramID(ctx context.Context, telegramID int64) (*model.Learner, error) {
	var l model.Learner
	err := r.db.QueryRow(ctx, `
                SELECT telegram_id, telegram_username, telegram_first_name, full_name, created_at
                FROM learners
                WHERE telegram_id = $1
        `, telegramID).Scan(&l.TelegramID, &l.Username, &l.FirstName, &l.FullName, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get learner: %w: %w", model.ErrPersistence, err)
	}
	return &l, nil
}

// UpsertLearner создает ученика или обновляет его имя и username
func (r *LearnerRepository) UpsertLearner(ctx context.Context, l model.Learner) (*model.Learner, error) {
	err := r.db.QueryRow(ctx, `
                INSERT INTO learners (telegram_id, telegram_username, telegram_first_name, full_name)
                VALUES ($1, $2, $3, $4)
                ON CONFLICT (telegram_id) DO UPDATE
                SET telegram_username = EXCLUDED.telegram_username,
                    telegram_first_name = EXCLUDED.telegram_first_name,
                    full_name = EXCLUDED.full_name
                RETURNING created_at
        `, l.TelegramID, l.Username, l.FirstName, l.FullName).Scan(&l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert learner: %w: %w", model.ErrPersistence, err)
	}
	return &l, nil
}
