package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository - банк вопросов, только чтение
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository создает новый экземпляр QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, type, question, COALESCE(options, ''), COALESCE(correct_answer, ''),
       COALESCE(explanation, ''), COALESCE(hint, ''), COALESCE(detailed_explanation, '')`

// ListTestTypes возвращает номера тестов по возрастанию
func (r *QuestionRepository) ListTestTypes(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, "SELECT DISTINCT type FROM tests WHERE type IS NOT NULL ORDER BY type")
	if err != nil {
		return nil, fmt.Errorf("failed to query test types: %w: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var types []int
	for rows.Next() {
		var t int
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan test type: %w: %w", model.ErrPersistence, err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over test types: %w: %w", model.ErrPersistence, err)
	}

	return types, nil
}

// QuestionsByType возвращает вопросы теста в порядке id
func (r *QuestionRepository) QuestionsByType(ctx context.Context, testType int) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, "SELECT "+questionColumns+" FROM tests WHERE type = $1 ORDER BY id", testType)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions of test %d: %w: %w", testType, model.ErrPersistence, err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w: %w", model.ErrPersistence, err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over questions: %w: %w", model.ErrPersistence, err)
	}

	return questions, nil
}

// QuestionByID возвращает вопрос по id. Если вопроса нет, возвращает nil без ошибки.
func (r *QuestionRepository) QuestionByID(ctx context.Context, id int) (*model.Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, "SELECT "+questionColumns+" FROM tests WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %d: %w: %w", id, model.ErrPersistence, err)
	}
	return &q, nil
}

func scanQuestion(row pgx.Row) (model.Question, error) {
	var (
		q       model.Question
		options string
	)
	err := row.Scan(&q.ID, &q.TestType, &q.Text, &options, &q.CorrectAnswer,
		&q.Explanation, &q.Hint, &q.DetailedExplanation)
	if err != nil {
		return model.Question{}, err
	}
	q.Options = SplitOptions(options)
	return q, nil
}

// SplitOptions разбирает варианты ответа, которые хранятся в одной строке через перевод строки
func SplitOptions(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
