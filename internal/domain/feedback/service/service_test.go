package service

import (
	"context"
	"errors"
	"testing"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCaps struct {
	classified   int
	classifyErr  error
	evalTopic    string
	evalPassages []string
	evalReply    string
	evalErr      error
}

func (f *fakeCaps) ClassifyTopic(_ context.Context, _ string) (string, error) {
	f.classified++
	return "Алкены", f.classifyErr
}

func (f *fakeCaps) Evaluate(_ context.Context, _ string, topic string, passages []string) (string, error) {
	f.evalTopic = topic
	f.evalPassages = passages
	return f.evalReply, f.evalErr
}

func (f *fakeCaps) AnswerQuestion(_ context.Context, topic, question string) (string, error) {
	return topic + ": " + question, nil
}

type fakePassages map[string][]string

func (p fakePassages) Passages(topic string, n int) []string {
	ps := p[topic]
	if len(ps) > n {
		ps = ps[:n]
	}
	return ps
}

type memRecords struct {
	saved   []model.FeedbackRecord
	saveErr error
}

func (m *memRecords) Save(_ context.Context, rec model.FeedbackRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, rec)
	return nil
}

func (m *memRecords) ListByUser(_ context.Context, userID int64) ([]model.FeedbackRecord, error) {
	var out []model.FeedbackRecord
	for _, r := range m.saved {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestEvaluateFreeResponse_ClassifiesWhenNoPinnedTopic(t *testing.T) {
	caps := &fakeCaps{evalReply: "<p>Хорошо</p><ul><li>плюс</li></ul>"}
	records := &memRecords{}
	passages := fakePassages{"Алкены": {"p1", "p2", "p3", "p4"}}
	s := NewFeedbackService(caps, passages, records, zap.NewNop())

	res, err := s.EvaluateFreeResponse(t.Context(), 7, "Иван Петров", "этилен обесцвечивает бромную воду")
	require.NoError(t, err)

	assert.Equal(t, 1, caps.classified)
	assert.Equal(t, "Алкены", res.Topic)
	assert.Equal(t, "Хорошо• плюс\n", res.Feedback)
	assert.Equal(t, []string{"p1", "p2", "p3"}, caps.evalPassages)

	require.Len(t, records.saved, 1)
	assert.Equal(t, model.FeedbackRecord{
		UserID:     7,
		FullName:   "Иван Петров",
		Topic:      "Алкены",
		Transcript: "этилен обесцвечивает бромную воду",
		Feedback:   "Хорошо• плюс\n",
	}, records.saved[0])
}

func TestEvaluateFreeResponse_PinnedTopicConsumedOnce(t *testing.T) {
	caps := &fakeCaps{evalReply: "ok"}
	s := NewFeedbackService(caps, fakePassages{}, &memRecords{}, zap.NewNop())

	s.PinTopic(1, "Спирты")

	res, err := s.EvaluateFreeResponse(t.Context(), 1, "", "ответ")
	require.NoError(t, err)
	assert.Equal(t, "Спирты", res.Topic)
	assert.Equal(t, 0, caps.classified)

	res, err = s.EvaluateFreeResponse(t.Context(), 1, "", "ответ")
	require.NoError(t, err)
	assert.Equal(t, "Алкены", res.Topic)
	assert.Equal(t, 1, caps.classified)
}

func TestEvaluateFreeResponse_CapabilityFailurePropagates(t *testing.T) {
	records := &memRecords{}
	caps := &fakeCaps{evalErr: model.ErrCapability}
	s := NewFeedbackService(caps, fakePassages{}, records, zap.NewNop())

	_, err := s.EvaluateFreeResponse(t.Context(), 1, "", "ответ")
	assert.ErrorIs(t, err, model.ErrCapability)
	assert.Empty(t, records.saved)

	caps = &fakeCaps{classifyErr: model.ErrCapability}
	s = NewFeedbackService(caps, fakePassages{}, records, zap.NewNop())
	_, err = s.EvaluateFreeResponse(t.Context(), 1, "", "ответ")
	assert.ErrorIs(t, err, model.ErrCapability)
}

func TestEvaluateFreeResponse_SaveFailureStillReturnsFeedback(t *testing.T) {
	s := NewFeedbackService(&fakeCaps{evalReply: "ok"}, fakePassages{}, &memRecords{saveErr: errors.New("db down")}, zap.NewNop())

	res, err := s.EvaluateFreeResponse(t.Context(), 1, "", "ответ")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Feedback)
}

func TestAnswerLearnerQuestion(t *testing.T) {
	records := &memRecords{}
	s := NewFeedbackService(&fakeCaps{}, fakePassages{}, records, zap.NewNop())

	got, err := s.AnswerLearnerQuestion(t.Context(), "Арены", "что такое бензол?")
	require.NoError(t, err)
	assert.Equal(t, "Арены: что такое бензол?", got)
	assert.Empty(t, records.saved)
}

func TestCleanHTML(t *testing.T) {
	assert.Equal(t, "строка\nдальше", CleanHTML("строка<br>дальше"))
	assert.Equal(t, "• a\n• b\n", CleanHTML("<ol><li>a</li><li>b</li></ol>"))
	assert.Equal(t, "жирный текст", CleanHTML(`<b class="x">жирный</b> текст`))
}
