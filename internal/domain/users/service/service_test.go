package service

import (
	"context"
	"testing"
	"time"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLearners struct {
	data    map[int64]model.Learner
	upserts int
}

func (m *memLearners) GetLearnerByTelegramID(_ context.Context, id int64) (*model.Learner, error) {
	l, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memLearners) UpsertLearner(_ context.Context, l model.Learner) (*model.Learner, error) {
	m.upserts++
	if old, ok := m.data[l.TelegramID]; ok {
		l.CreatedAt = old.CreatedAt
	} else {
		l.CreatedAt = time.Now()
	}
	m.data[l.TelegramID] = l
	return &l, nil
}

func TestGetOrCreateLearner(t *testing.T) {
	repo := &memLearners{data: map[int64]model.Learner{}}
	s := NewLearnerService(repo)
	in := model.Learner{TelegramID: 10, Username: "masha", FirstName: "Маша", FullName: "Маша Иванова"}

	first, err := s.GetOrCreateLearner(t.Context(), in)
	require.NoError(t, err)
	assert.Equal(t, "masha", first.DisplayName())

	_, err = s.GetOrCreateLearner(t.Context(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts, "unchanged learner must not be rewritten")

	in.Username = ""
	renamed, err := s.GetOrCreateLearner(t.Context(), in)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, "Маша Иванова", renamed.DisplayName())
	assert.Equal(t, first.CreatedAt, renamed.CreatedAt)
}

func TestGetLearner_NotFound(t *testing.T) {
	s := NewLearnerService(&memLearners{data: map[int64]model.Learner{}})

	_, err := s.GetLearner(t.Context(), 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
