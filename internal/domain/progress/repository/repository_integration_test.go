//go:build integration

package repository

import (
	"testing"

	"github.com/IT-Nick/tutorbot/internal/infra/postgres/postgrestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_SaveLoadClear(t *testing.T) {
	r := NewProgressRepository(postgrestest.Open(t))
	ctx := t.Context()
	user := postgrestest.UserID(t)

	_, ok, err := r.Load(ctx, user, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Save(ctx, user, 3, 1, []int{101, 102, 103}))
	require.NoError(t, r.Save(ctx, user, 3, 2, []int{101, 102, 103}))

	p, ok, err := r.Load(ctx, user, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, p.Index)
	assert.Equal(t, []int{101, 102, 103}, p.QuestionIDs)

	_, ok, err = r.Load(ctx, user, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Clear(ctx, user, 3))
	_, ok, err = r.Load(ctx, user, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
