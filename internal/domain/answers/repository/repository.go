package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// undefinedTable - код ошибки Postgres "relation does not exist"
const undefinedTable = "42P01"

// execer - общее у пула и транзакции
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AnswerRepository - журнал ответов на тесты и журнал активности по вопросам
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository создает новый экземпляр AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// RecordAnswer добавляет ответ в журнал, время ответа ставит база
func (r *AnswerRepository) RecordAnswer(ctx context.Context, a model.AnswerRecord) error {
	return recordAnswer(ctx, r.db, a)
}

func recordAnswer(ctx context.Context, db execer, a model.AnswerRecord) error {
	_, err := db.Exec(ctx, `
                INSERT INTO test_answers
                (user_id, username, answer_time, test_type, question_id, question_text, user_answer, correct_answer, is_correct)
                VALUES ($1, $2, CURRENT_TIMESTAMP, $3, $4, $5, $6, $7, $8)
        `, a.UserID, a.DisplayName, a.TestType, a.QuestionID, a.QuestionText, a.UserAnswer, a.CorrectAnswer, a.IsCorrect)
	if err != nil {
		return fmt.Errorf("failed to save answer: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

// MistakeQuestions возвращает все неверные ответы пользователя в порядке записи.
// Повторные ошибки в одном вопросе не схлопываются.
func (r *AnswerRepository) MistakeQuestions(ctx context.Context, userID int64) ([]model.MistakeQuestion, error) {
	rows, err := r.db.Query(ctx, `
                SELECT test_type, question_id, COALESCE(question_text, ''), COALESCE(user_answer, ''), COALESCE(correct_answer, '')
                FROM test_answers
                WHERE user_id = $1 AND NOT is_correct
                ORDER BY id
        `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mistakes: %w: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var mistakes []model.MistakeQuestion
	for rows.Next() {
		var m model.MistakeQuestion
		if err := rows.Scan(&m.TestType, &m.QuestionID, &m.QuestionText, &m.UserAnswer, &m.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan mistake: %w: %w", model.ErrPersistence, err)
		}
		mistakes = append(mistakes, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over mistakes: %w: %w", model.ErrPersistence, err)
	}

	return mistakes, nil
}

// MarkCorrected помечает исправленными все ответы пользователя на вопрос, а не только последний
func (r *AnswerRepository) MarkCorrected(ctx context.Context, userID int64, questionID int) error {
	return markCorrected(ctx, r.db, userID, questionID)
}

func markCorrected(ctx context.Context, db execer, userID int64, questionID int) error {
	_, err := db.Exec(ctx, "UPDATE test_answers SET is_correct = TRUE WHERE user_id = $1 AND question_id = $2", userID, questionID)
	if err != nil {
		return fmt.Errorf("failed to mark answer corrected: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

// StartActivity открывает запись активности по вопросу. Если открытая запись
// для пары (пользователь, вопрос) уже есть, новая не создается и возвращается false.
func (r *AnswerRepository) StartActivity(ctx context.Context, userID int64, testType int, questionID int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
                INSERT INTO test_activity (user_id, test_type, question_id, started_at)
                VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
                ON CONFLICT (user_id, question_id) WHERE answered_at IS NULL DO NOTHING
        `, userID, testType, questionID)
	if err != nil {
		return false, fmt.Errorf("failed to log question start: %w: %w", model.ErrPersistence, err)
	}
	return tag.RowsAffected() > 0, nil
}

// CompleteActivity закрывает последнюю открытую запись активности.
// Если открытой записи нет, ничего не делает.
func (r *AnswerRepository) CompleteActivity(ctx context.Context, userID int64, questionID int, answer string, isCorrect bool) error {
	return completeActivity(ctx, r.db, userID, questionID, answer, isCorrect)
}

func completeActivity(ctx context.Context, db execer, userID int64, questionID int, answer string, isCorrect bool) error {
	_, err := db.Exec(ctx, `
                UPDATE test_activity
                SET answered_at = CURRENT_TIMESTAMP, user_answer = $3, is_correct = $4
                WHERE id = (
                        SELECT id FROM test_activity
                        WHERE user_id = $1 AND question_id = $2 AND answered_at IS NULL
                        ORDER BY started_at DESC, id DESC
                        LIMIT 1
                )
        `, userID, questionID, answer, isCorrect)
	if err != nil {
		return fmt.Errorf("failed to log question answer: %w: %w", model.ErrPersistence, err)
	}
	return nil
}

// CheckAnswer записывает ответ на вопрос теста в журнал и закрывает запись
// активности в одной транзакции: либо меняются обе таблицы, либо ни одна.
func (r *AnswerRepository) CheckAnswer(ctx context.Context, a model.AnswerRecord) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := recordAnswer(ctx, tx, a); err != nil {
			return err
		}
		return completeActivity(ctx, tx, a.UserID, a.QuestionID, a.UserAnswer, a.IsCorrect)
	})
}

// ReviewAnswer сохраняет повторный ответ из работы над ошибками. Верный ответ
// исправляет все записи по вопросу; запись активности закрывается в той же транзакции.
func (r *AnswerRepository) ReviewAnswer(ctx context.Context, userID int64, questionID int, answer string, isCorrect bool) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if isCorrect {
			if err := markCorrected(ctx, tx, userID, questionID); err != nil {
				return err
			}
		}
		return completeActivity(ctx, tx, userID, questionID, answer, isCorrect)
	})
}

func (r *AnswerRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	err := pgx.BeginFunc(ctx, r.db, fn)
	if err != nil && !errors.Is(err, model.ErrPersistence) {
		return fmt.Errorf("answers transaction: %w: %w", model.ErrPersistence, err)
	}
	return err
}

// TestStats возвращает число ответов и верных ответов по каждому тесту.
// Статистика необязательна: если таблицы нет, возвращается пустой результат.
func (r *AnswerRepository) TestStats(ctx context.Context, userID int64) ([]model.TestStat, error) {
	rows, err := r.db.Query(ctx, `
                SELECT test_type, COUNT(*) AS total, COUNT(*) FILTER (WHERE is_correct) AS correct
                FROM test_answers
                WHERE user_id = $1
                GROUP BY test_type
                ORDER BY test_type
        `, userID)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query test stats: %w: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var stats []model.TestStat
	for rows.Next() {
		var s model.TestStat
		if err := rows.Scan(&s.TestType, &s.Total, &s.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan test stat: %w: %w", model.ErrPersistence, err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to iterate over test stats: %w: %w", model.ErrPersistence, err)
	}

	return stats, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTable
}
