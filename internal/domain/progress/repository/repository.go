package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressRepository хранит позицию пользователя в тесте, чтобы тест можно было продолжить
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository создает новый экземпляр ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Save сохраняет или перезаписывает прогресс по паре (пользователь, тест)
func (r *ProgressRepository) Save(ctx context.Context, userID int64, testType int, idx int, questionIDs []int) error {
	_, err := r.db.Exec(ctx, `
                INSERT INTO test_progress (user_id, test_type, idx, q_ids, updated_at)
                VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
                ON CONFLICT (user_id, test_type)
                DO UPDATE SET idx = EXCLUDED.idx, q_ids = EXCLUDED.q_ids, updated_at = EXCLUDED.updated_at
        `, userID, testType, idx, questionIDs)
	if err != nil {
		return fmt.Errorf("failed to save test progress: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

// Load возвращает сохраненный прогресс. ok == false, если прогресса нет.
func (r *ProgressRepository) Load(ctx context.Context, userID int64, testType int) (p model.QuizProgress, ok bool, err error) {
	p = model.QuizProgress{UserID: userID, TestType: testType}
	err = r.db.QueryRow(ctx, "SELECT idx, q_ids FROM test_progress WHERE user_id = $1 AND test_type = $2", userID, testType).
		Scan(&p.Index, &p.QuestionIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.QuizProgress{}, false, nil
		}
		return model.QuizProgress{}, false, fmt.Errorf("failed to load test progress: %w: %w", model.ErrPersistence, err)
	}
	return p, true, nil
}

// Clear удаляет сохраненный прогресс
func (r *ProgressRepository) Clear(ctx context.Context, userID int64, testType int) error {
	_, err := r.db.Exec(ctx, "DELETE FROM test_progress WHERE user_id = $1 AND test_type = $2", userID, testType)
	if err != nil {
		return fmt.Errorf("failed to clear test progress: %w: %w", model.ErrPersistence, err)
	}
	return nil
}
