package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStore_SurvivesReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data", "sessions.json")
	states := map[int64]State{
		1: CourseBrowsing{Chapter: "Алканы", Chunk: 3, AwaitingQuestion: true},
		2: QuizActive{TestType: 3, Cursor: 1, QuestionIDs: []int{101, 102, 103}},
		3: MistakeReview{TestType: 5, QuestionIDs: []int{201, 201}},
	}

	s := NewJSONStore(file)
	for id, st := range states {
		require.NoError(t, s.Put(id, st))
	}

	reopened := NewJSONStore(file)
	for id, want := range states {
		got, ok, err := reopened.Get(id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	require.NoError(t, reopened.Delete(2))
	_, ok, err := reopened.Get(2)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, reopened.Delete(42))
}

func TestNewStore(t *testing.T) {
	assert.IsType(t, &JSONStore{}, NewStore("json", filepath.Join(t.TempDir(), "s.json")))
	assert.IsType(t, &MemoryStore{}, NewStore("memory", ""))
}

func TestMachine_IdleIsNotStored(t *testing.T) {
	store := NewMemoryStore()
	m := NewMachine(Deps{Store: store})

	require.NoError(t, m.put(1, CourseBrowsing{Chapter: "Алканы"}))
	require.NoError(t, m.put(1, Idle{}))

	_, ok, err := store.Get(1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Idle{}, m.State(1))
}

func TestJSONStore_CorruptFileIsAnError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, ok, err := NewJSONStore(file).Get(1)
	require.ErrorIs(t, err, model.ErrPersistence)
	assert.False(t, ok)
}

func TestCorruptSessionFileIsNotTreatedAsIdle(t *testing.T) {
	e := newEnv()
	file := filepath.Join(t.TempDir(), "sessions.json")
	e.m.store = NewJSONStore(file)

	_, err := e.m.ChooseTest(t.Context(), 1, 3)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	replies, err := e.m.HandleText(t.Context(), masha, "2")
	require.ErrorIs(t, err, model.ErrPersistence)
	assert.Empty(t, replies)
	assert.Empty(t, e.ledger.results())
}
