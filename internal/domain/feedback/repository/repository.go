package repository

import (
	"context"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRepository хранит проверенные ответы учеников
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository создает новый экземпляр FeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Save добавляет запись о проверенном ответе
func (r *FeedbackRepository) Save(ctx context.Context, rec model.FeedbackRecord) error {
	_, err := r.db.Exec(ctx, `
                INSERT INTO feedback_records (user_id, full_name, topic, transcript, feedback, created_at)
                VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
        `, rec.UserID, rec.FullName, rec.Topic, rec.Transcript, rec.Feedback)
	if err != nil {
		return fmt.Errorf("failed to save feedback record: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

// ListByUser возвращает записи пользователя в порядке добавления
func (r *FeedbackRepository) ListByUser(ctx context.Context, userID int64) ([]model.FeedbackRecord, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, user_id, full_name, topic, transcript, feedback, created_at
                FROM feedback_records
                WHERE user_id = $1
                ORDER BY id
        `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback records: %w: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var records []model.FeedbackRecord
	for rows.Next() {
		var rec model.FeedbackRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FullName, &rec.Topic, &rec.Transcript, &rec.Feedback, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback record: %w: %w", model.ErrPersistence, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback records: %w: %w", model.ErrPersistence, err)
	}
	return records, nil
}
