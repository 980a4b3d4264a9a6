package session

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
)

// HandleText обрабатывает свободный текст в зависимости от состояния: ответ на
// вопрос теста, повторный ответ в работе над ошибками, вопрос по главе курса
// или устный ответ на проверку
func (m *Machine) HandleText(ctx context.Context, learner model.Learner, text string) ([]model.Reply, error) {
	defer m.locks.lock(learner.TelegramID)()

	text = strings.TrimSpace(text)

	cur, err := m.current(learner.TelegramID)
	if err != nil {
		return nil, err
	}
	switch st := cur.(type) {
	case QuizActive:
		return m.checkQuiz(ctx, learner, st, text)
	case MistakeReview:
		return m.checkMistake(ctx, learner.TelegramID, st, text)
	case CourseBrowsing:
		if st.AwaitingQuestion {
			return m.answerCourseQuestion(ctx, learner.TelegramID, st, text)
		}
	}
	return m.evaluate(ctx, learner, text)
}

// HandleSpeech обрабатывает распознанное голосовое сообщение: вопрос по главе,
// если курс ждет вопроса, иначе устный ответ на проверку
func (m *Machine) HandleSpeech(ctx context.Context, learner model.Learner, transcript string) ([]model.Reply, error) {
	defer m.locks.lock(learner.TelegramID)()

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return notice(msgEmptyTranscript), nil
	}

	cur, err := m.current(learner.TelegramID)
	if err != nil {
		return nil, err
	}
	if st, ok := cur.(CourseBrowsing); ok && st.AwaitingQuestion {
		return m.answerCourseQuestion(ctx, learner.TelegramID, st, transcript)
	}
	return m.evaluate(ctx, learner, transcript)
}

// PinTopic закрепляет тему устного зачета за следующим ответом и показывает вопросы по ней
func (m *Machine) PinTopic(userID int64, topic string) []model.Reply {
	m.tutor.PinTopic(userID, topic)

	questions := fmt.Sprintf(
		"1. Общая характеристика класса %s\n2. Способы получения %s\n3. Химические свойства %s",
		topic, topic, topic)

	return []model.Reply{
		{Text: questions, Keyboard: model.KeyboardAfterTopic},
		model.Text(msgRecordVoice),
	}
}

func (m *Machine) evaluate(ctx context.Context, learner model.Learner, text string) ([]model.Reply, error) {
	res, err := m.tutor.EvaluateFreeResponse(ctx, learner.TelegramID, learner.FullName, text)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("📘 Тема: <b>%s</b>\n📝 Ответ: %s\n\n💬 Комментарий:\n%s",
		html.EscapeString(res.Topic), html.EscapeString(res.Answer), html.EscapeString(res.Feedback))

	return []model.Reply{{Text: body, Format: model.FormatHTML, Keyboard: model.KeyboardMain}}, nil
}
