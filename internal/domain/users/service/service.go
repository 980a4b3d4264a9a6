package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
)

// LearnerStore - хранилище учеников
type LearnerStore interface {
	GetLearnerByTelegramID(ctx context.Context, telegramID int64) (*model.Learner, error)
	UpsertLearner(ctx context.Context, l model.Learner) (*model.Learner, error)
}

// LearnerService содержит логику работы с учениками
type LearnerService struct {
	repo LearnerStore
}

// NewLearnerService создает новый экземпляр LearnerService
func NewLearnerService(repo LearnerStore) *LearnerService {
	return &LearnerService{repo: repo}
}

// GetOrCreateLearner регистрирует ученика при первом /start и
// обновляет имя, если оно поменялось в Telegram
func (s *LearnerService) GetOrCreateLearner(ctx context.Context, l model.Learner) (*model.Learner, error) {
	existing, err := s.repo.GetLearnerByTelegramID(ctx, l.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %w", err)
	}

	if existing != nil && existing.Username == l.Username && existing.FullName == l.FullName && existing.FirstName == l.FirstName {
		return existing, nil
	}

	learner, err := s.repo.UpsertLearner(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to save learner: %w", err)
	}
	return learner, nil
}

// GetLearner возвращает ученика по Telegram ID
func (s *LearnerService) GetLearner(ctx context.Context, telegramID int64) (*model.Learner, error) {
	learner, err := s.repo.GetLearnerByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %w", err)
	}
	if learner == nil {
		return nil, fmt.Errorf("learner %d: %w", telegramID, model.ErrNotFound)
	}
	return learner, nil
}
