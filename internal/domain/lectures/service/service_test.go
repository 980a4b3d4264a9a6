package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadCatalog_SortsChaptersByFileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02 Алкены.json"), []byte(`["алкены 1"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01 Алканы.json"), []byte(`["алканы 1", "алканы 2"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	c, err := LoadCatalog(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"01 Алканы", "02 Алкены"}, c.Chapters())
	assert.Equal(t, []string{"алканы 1", "алканы 2"}, c.Chunks("01 Алканы"))
	assert.Equal(t, 1, c.Index("02 Алкены"))
	assert.Equal(t, -1, c.Index("Арены"))
	assert.Nil(t, c.Chunks("Арены"))
}

func TestLoadCatalog_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o644))

	_, err := LoadCatalog(dir)
	assert.Error(t, err)
}

func TestCatalog_Passages(t *testing.T) {
	c := NewCatalog([]Chapter{{Name: "Алканы", Chunks: []string{"a", " ", "b", "c", "d"}}})

	assert.Equal(t, []string{"a", "b", "c"}, c.Passages("Алканы", 3))
	assert.Empty(t, c.Passages("Спирты", 3))
}

func TestFormatFormulas(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inline reaction",
			in:   `Реакция: $CH_4 + Cl_2 \rightarrow CH_3Cl$`,
			want: "Реакция: ```\nCH₄ + Cl₂ → CH₃Cl\n```",
		},
		{
			name: "display formula with braces and charge",
			in:   `\[ SO_{4}^{2-} \]`,
			want: "```\nSO₄²⁻\n```",
		},
		{
			name: "text command",
			in:   `$\text{t} \to C_2H_4$`,
			want: "```\nt → C₂H₄\n```",
		},
		{
			name: "no formulas",
			in:   "Обычный текст",
			want: "Обычный текст",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFormulas(tt.in))
		})
	}
}

type memLectures struct {
	data map[string]string
}

func (m *memLectures) key(topic string, idx int) string { return fmt.Sprintf("%s/%d", topic, idx) }

func (m *memLectures) Lecture(_ context.Context, topic string, idx int) (string, bool, error) {
	s, ok := m.data[m.key(topic, idx)]
	return s, ok, nil
}

func (m *memLectures) SaveLecture(_ context.Context, topic string, idx int, _, lecture string) error {
	m.data[m.key(topic, idx)] = lecture
	return nil
}

type lecturerFunc func(chunk string) (string, error)

func (f lecturerFunc) TeachMaterial(_ context.Context, chunk string) (string, error) { return f(chunk) }

func TestPreparer_SkipsExistingAndContinuesOnFailure(t *testing.T) {
	catalog := NewCatalog([]Chapter{
		{Name: "Алканы", Chunks: []string{"a", "b", "c"}},
		{Name: "Алкены", Chunks: []string{"d"}},
	})
	store := &memLectures{data: map[string]string{"Алканы/0": "готово"}}
	lecturer := lecturerFunc(func(chunk string) (string, error) {
		if chunk == "b" {
			return "", errors.New("boom")
		}
		return "лекция " + chunk, nil
	})

	p := NewPreparer(catalog, store, lecturer, zap.NewNop())
	stats, err := p.Prepare(t.Context(), "", false)
	require.NoError(t, err)

	assert.Equal(t, PrepareStats{Prepared: 2, Skipped: 1, Failed: 1}, stats)
	assert.Equal(t, "готово", store.data["Алканы/0"])
	assert.Equal(t, "лекция c", store.data["Алканы/2"])
	assert.Equal(t, "лекция d", store.data["Алкены/0"])
}

func TestPreparer_SingleChapterForce(t *testing.T) {
	catalog := NewCatalog([]Chapter{
		{Name: "Алканы", Chunks: []string{"a"}},
		{Name: "Алкены", Chunks: []string{"d"}},
	})
	store := &memLectures{data: map[string]string{"Алканы/0": "старое"}}
	lecturer := lecturerFunc(func(chunk string) (string, error) { return "новое " + chunk, nil })

	stats, err := NewPreparer(catalog, store, lecturer, zap.NewNop()).Prepare(t.Context(), "Алканы", true)
	require.NoError(t, err)

	assert.Equal(t, PrepareStats{Prepared: 1}, stats)
	assert.Equal(t, "новое a", store.data["Алканы/0"])
	_, ok := store.data["Алкены/0"]
	assert.False(t, ok)

	_, err = NewPreparer(catalog, store, lecturer, zap.NewNop()).Prepare(t.Context(), "Арены", false)
	assert.Error(t, err)
}
