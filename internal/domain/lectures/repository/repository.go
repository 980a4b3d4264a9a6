package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/domain/model"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// LectureRepository хранит подготовленные лекции: тема + номер порции -> текст
type LectureRepository struct {
	db *sql.DB
}

// Open открывает файл с лекциями и создает таблицу, если ее еще нет
func Open(path string) (*LectureRepository, error) {
	const op = "lectures.Open"

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: open database: %w", op, err)
	}

	_, err = db.Exec(`
                CREATE TABLE IF NOT EXISTS prepared_lectures (
                        topic TEXT,
                        chunk_idx INTEGER,
                        orig_text TEXT,
                        lecture TEXT,
                        PRIMARY KEY (topic, chunk_idx)
                )
        `)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: create table: %w", op, err)
	}

	return &LectureRepository{db: db}, nil
}

// Lecture возвращает подготовленную лекцию. ok == false, если лекции нет или она пустая.
func (r *LectureRepository) Lecture(ctx context.Context, topic string, idx int) (string, bool, error) {
	var lecture sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT lecture FROM prepared_lectures WHERE topic = ? AND chunk_idx = ?", topic, idx).
		Scan(&lecture)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get lecture %q/%d: %w: %w", topic, idx, model.ErrPersistence, err)
	}
	if !lecture.Valid || lecture.String == "" {
		return "", false, nil
	}
	return lecture.String, true, nil
}

// SaveLecture сохраняет или перезаписывает лекцию для порции учебника
func (r *LectureRepository) SaveLecture(ctx context.Context, topic string, idx int, origText, lecture string) error {
	_, err := r.db.ExecContext(ctx, `
                INSERT OR REPLACE INTO prepared_lectures (topic, chunk_idx, orig_text, lecture)
                VALUES (?, ?, ?, ?)
        `, topic, idx, origText, lecture)
	if err != nil {
		return fmt.Errorf("failed to save lecture %q/%d: %w: %w", topic, idx, model.ErrPersistence, err)
	}
	return nil
}

// Close закрывает соединение с базой
func (r *LectureRepository) Close() error {
	return r.db.Close()
}
