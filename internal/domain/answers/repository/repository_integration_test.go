//go:build integration

package repository

import (
	"testing"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/infra/postgres/postgrestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openActivities(t *testing.T, r *AnswerRepository, userID int64, questionID int) int {
	t.Helper()
	var n int
	err := r.db.QueryRow(t.Context(),
		"SELECT COUNT(*) FROM test_activity WHERE user_id = $1 AND question_id = $2 AND answered_at IS NULL",
		userID, questionID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestAnswerRepository_ReviewAnswerCorrectsEveryRow(t *testing.T) {
	r := NewAnswerRepository(postgrestest.Open(t))
	ctx := t.Context()
	user := postgrestest.UserID(t)

	for _, answer := range []string{"1", "3"} {
		_, err := r.StartActivity(ctx, user, 3, 101)
		require.NoError(t, err)
		require.NoError(t, r.CheckAnswer(ctx, model.AnswerRecord{
			UserID: user, TestType: 3, QuestionID: 101, UserAnswer: answer, CorrectAnswer: "2",
		}))
	}
	require.NoError(t, r.CheckAnswer(ctx, model.AnswerRecord{
		UserID: user, TestType: 3, QuestionID: 102, UserAnswer: "1", CorrectAnswer: "4",
	}))

	mistakes, err := r.MistakeQuestions(ctx, user)
	require.NoError(t, err)
	require.Len(t, mistakes, 3)
	assert.Equal(t, []int{101, 101, 102}, []int{mistakes[0].QuestionID, mistakes[1].QuestionID, mistakes[2].QuestionID})

	_, err = r.StartActivity(ctx, user, 3, 101)
	require.NoError(t, err)
	require.NoError(t, r.ReviewAnswer(ctx, user, 101, "2", true))

	mistakes, err = r.MistakeQuestions(ctx, user)
	require.NoError(t, err)
	require.Len(t, mistakes, 1)
	assert.Equal(t, 102, mistakes[0].QuestionID)
	assert.Zero(t, openActivities(t, r, user, 101))
}

func TestAnswerRepository_ActivityGuard(t *testing.T) {
	r := NewAnswerRepository(postgrestest.Open(t))
	ctx := t.Context()
	user := postgrestest.UserID(t)

	inserted, err := r.StartActivity(ctx, user, 3, 101)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = r.StartActivity(ctx, user, 3, 101)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 1, openActivities(t, r, user, 101))

	require.NoError(t, r.CheckAnswer(ctx, model.AnswerRecord{
		UserID: user, TestType: 3, QuestionID: 101, UserAnswer: "2", CorrectAnswer: "2", IsCorrect: true,
	}))
	assert.Zero(t, openActivities(t, r, user, 101))

	require.NoError(t, r.CompleteActivity(ctx, user, 101, "2", true))

	stats, err := r.TestStats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []model.TestStat{{TestType: 3, Total: 1, Correct: 1}}, stats)
}
