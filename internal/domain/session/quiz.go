package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/infra/metrics"
	"go.uber.org/zap"
)

// TestsMenu показывает список тестов и кнопку работы над ошибками
func (m *Machine) TestsMenu(ctx context.Context, withMenu bool) ([]model.Reply, error) {
	return m.testsMenu(ctx, msgChooseTest, withMenu)
}

func (m *Machine) testsMenu(ctx context.Context, text string, withMenu bool) ([]model.Reply, error) {
	types, err := m.bank.ListTestTypes(ctx)
	if err != nil {
		return nil, err
	}
	return []model.Reply{{Text: text, Inline: testsButtons(types, withMenu)}}, nil
}

// ChooseTest начинает тест. Если по тесту есть сохраненный прогресс,
// пользователю предлагается продолжить или начать заново, а состояние не меняется.
func (m *Machine) ChooseTest(ctx context.Context, userID int64, testType int) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	p, ok, err := m.progress.Load(ctx, userID, testType)
	if err != nil {
		return nil, err
	}
	if ok && len(p.QuestionIDs) > 0 {
		return []model.Reply{{
			Text: fmt.Sprintf("Вы уже проходили этот тест. Продолжить с вопроса %d или начать заново?", p.Index+1),
			Inline: [][]model.Button{
				model.Row(model.Button{Text: "▶️ Продолжить", Data: fmt.Sprintf("%s%d", model.ContinueTestPrefix, testType)}),
				model.Row(model.Button{Text: "🔄 Начать заново", Data: fmt.Sprintf("%s%d", model.RestartTestPrefix, testType)}),
			},
		}}, nil
	}

	return m.startQuiz(ctx, userID, testType)
}

// ContinueTest продолжает тест с сохраненной позиции без перепроверки вопросов
func (m *Machine) ContinueTest(ctx context.Context, userID int64, testType int) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	p, ok, err := m.progress.Load(ctx, userID, testType)
	if err != nil {
		return nil, err
	}
	if !ok || len(p.QuestionIDs) == 0 {
		return notice(msgNoProgress), nil
	}

	return m.serveQuiz(ctx, userID, QuizActive{TestType: testType, Cursor: p.Index, QuestionIDs: p.QuestionIDs})
}

// RestartTest сбрасывает сохраненный прогресс и начинает тест с первого вопроса
func (m *Machine) RestartTest(ctx context.Context, userID int64, testType int) ([]model.Reply, error) {
	defer m.locks.lock(userID)()
	return m.startQuiz(ctx, userID, testType)
}

func (m *Machine) startQuiz(ctx context.Context, userID int64, testType int) ([]model.Reply, error) {
	questions, err := m.bank.QuestionsByType(ctx, testType)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return notice(msgNoQuestions), nil
	}

	ids := make([]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	if err := m.progress.Clear(ctx, userID, testType); err != nil {
		return nil, err
	}

	return m.serveQuiz(ctx, userID, QuizActive{TestType: testType, QuestionIDs: ids})
}

// StopTest прерывает тест или работу над ошибками. Позиция в тесте сохраняется,
// чтобы его можно было продолжить; работа над ошибками не сохраняется.
func (m *Machine) StopTest(ctx context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}

	var text string
	switch st := cur.(type) {
	case QuizActive:
		if err := m.progress.Save(ctx, userID, st.TestType, st.Cursor, st.QuestionIDs); err != nil {
			return nil, err
		}
		if err := m.put(userID, Idle{}); err != nil {
			return nil, err
		}
		text = msgQuizStopped
	case MistakeReview:
		if err := m.put(userID, Idle{}); err != nil {
			return nil, err
		}
		text = msgReviewStopped
	default:
		text = msgNothingToStop
	}

	return m.testsMenu(ctx, text, true)
}

// Hint показывает подсказку к вопросу. Состояние не меняется.
func (m *Machine) Hint(ctx context.Context, questionID int) ([]model.Reply, error) {
	q, err := m.bank.QuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return notice(msgHintMissing), nil
	}
	if strings.TrimSpace(q.Hint) == "" {
		return notice(msgNoHint), nil
	}
	return notice("💡 Подсказка:\n" + q.Hint), nil
}

// serveQuiz показывает вопрос под курсором и сохраняет st как текущее состояние.
// Когда вопросы кончились, тест завершается и сохраненный прогресс удаляется.
func (m *Machine) serveQuiz(ctx context.Context, userID int64, st QuizActive) ([]model.Reply, error) {
	var replies []model.Reply

	for ; st.Cursor < len(st.QuestionIDs); st.Cursor++ {
		q, err := m.bank.QuestionByID(ctx, st.QuestionIDs[st.Cursor])
		if err != nil {
			return nil, err
		}
		if q == nil {
			replies = append(replies, model.Text(msgQuestionMissing))
			continue
		}

		if err := m.put(userID, st); err != nil {
			return nil, err
		}
		m.startActivity(ctx, userID, st.TestType, q.ID)

		header := fmt.Sprintf("Вопрос %d из %d (Тест %d)", st.Cursor+1, len(st.QuestionIDs), st.TestType)
		return append(replies, model.Reply{
			Text:   questionText(header, q, "Введите номер(а) ответа (например: 2 или 13):"),
			Inline: questionButtons(q.ID),
		}), nil
	}

	if err := m.put(userID, Idle{}); err != nil {
		return nil, err
	}
	if err := m.progress.Clear(ctx, userID, st.TestType); err != nil {
		m.log.Warn("failed to clear finished test progress", zap.Int64("user_id", userID), zap.Int("test_type", st.TestType), zap.Error(err))
	}
	return append(replies, model.Reply{Text: msgQuizFinished, Keyboard: model.KeyboardMain}), nil
}

// checkQuiz проверяет ответ на текущий вопрос теста
func (m *Machine) checkQuiz(ctx context.Context, learner model.Learner, st QuizActive, text string) ([]model.Reply, error) {
	if st.Cursor >= len(st.QuestionIDs) {
		return m.serveQuiz(ctx, learner.TelegramID, st)
	}

	q, err := m.bank.QuestionByID(ctx, st.QuestionIDs[st.Cursor])
	if err != nil {
		return nil, err
	}
	if q == nil {
		st.Cursor++
		replies, err := m.serveQuiz(ctx, learner.TelegramID, st)
		if err != nil {
			return nil, err
		}
		return append(notice(msgQuestionMissing), replies...), nil
	}

	correct := answerMatches(text, q.CorrectAnswer)

	err = m.ledger.CheckAnswer(ctx, model.AnswerRecord{
		UserID:        learner.TelegramID,
		DisplayName:   learner.DisplayName(),
		TestType:      st.TestType,
		QuestionID:    q.ID,
		QuestionText:  q.Text,
		UserAnswer:    text,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     correct,
	})
	if err != nil {
		return nil, err
	}
	metrics.QuizAnswers.WithLabelValues("quiz", result(correct)).Inc()

	verdict := msgCorrect
	if !correct {
		verdict = "❌ Неверно. Правильный ответ: " + answerDigits(q.CorrectAnswer)
	}
	if explanation := strings.TrimSpace(q.ExplanationText()); explanation != "" {
		verdict += "\n\n" + explanation
	}

	st.Cursor++
	if err := m.put(learner.TelegramID, st); err != nil {
		return nil, err
	}

	replies, err := m.serveQuiz(ctx, learner.TelegramID, st)
	if err != nil {
		return nil, err
	}
	return append([]model.Reply{model.Text(verdict)}, replies...), nil
}

// startActivity отмечает показ вопроса в журнале активности. Журнал активности
// вспомогательный, поэтому ошибка только логируется.
func (m *Machine) startActivity(ctx context.Context, userID int64, testType, questionID int) {
	inserted, err := m.ledger.StartActivity(ctx, userID, testType, questionID)
	if err != nil {
		m.log.Warn("failed to log question start", zap.Int64("user_id", userID), zap.Int("question_id", questionID), zap.Error(err))
		return
	}
	if !inserted {
		m.log.Debug("question already open in activity log", zap.Int64("user_id", userID), zap.Int("question_id", questionID))
	}
}

func result(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
