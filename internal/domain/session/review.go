package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/infra/metrics"
)

// MistakesMenu показывает тесты, в которых у пользователя есть неисправленные ошибки
func (m *Machine) MistakesMenu(ctx context.Context, userID int64) ([]model.Reply, error) {
	mistakes, err := m.ledger.MistakeQuestions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(mistakes) == 0 {
		return notice(msgNoMistakes), nil
	}

	var types []int
	for _, mq := range mistakes {
		if !slices.Contains(types, mq.TestType) {
			types = append(types, mq.TestType)
		}
	}
	slices.Sort(types)

	rows := make([][]model.Button, 0, len(types)+1)
	for _, t := range types {
		rows = append(rows, model.Row(model.Button{
			Text: fmt.Sprintf("Тест %d", t),
			Data: fmt.Sprintf("%s%d", model.MistakeTestPrefix, t),
		}))
	}
	rows = append(rows, model.Row(model.Button{Text: "⬅️ Главное меню", Data: model.ToMainMenu}))

	return []model.Reply{{Text: msgChooseMistakes, Inline: rows}}, nil
}

// StartMistakeReview начинает работу над ошибками по тесту. Вопросы идут в
// порядке журнала, повторные ошибки по одному вопросу не схлопываются.
func (m *Machine) StartMistakeReview(ctx context.Context, userID int64, testType int) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	mistakes, err := m.ledger.MistakeQuestions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, mq := range mistakes {
		if mq.TestType == testType {
			ids = append(ids, mq.QuestionID)
		}
	}
	if len(ids) == 0 {
		return notice(msgNoTestMistakes), nil
	}

	return m.serveMistake(ctx, userID, MistakeReview{TestType: testType, QuestionIDs: ids})
}

func (m *Machine) serveMistake(ctx context.Context, userID int64, st MistakeReview) ([]model.Reply, error) {
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

		header := fmt.Sprintf("Ошибка %d из %d (Тест %d)", st.Cursor+1, len(st.QuestionIDs), st.TestType)
		return append(replies, model.Reply{
			Text:   questionText(header, q, "Повтори попытку: введи номер(а) ответа:"),
			Inline: questionButtons(q.ID),
		}), nil
	}

	if err := m.put(userID, Idle{}); err != nil {
		return nil, err
	}
	return append(replies, model.Text(msgMistakesFinished)), nil
}

// checkMistake проверяет повторный ответ. Верный ответ исправляет все записи
// по этому вопросу в журнале; на неверный вопрос показывается снова.
func (m *Machine) checkMistake(ctx context.Context, userID int64, st MistakeReview, text string) ([]model.Reply, error) {
	if st.Cursor >= len(st.QuestionIDs) {
		return m.serveMistake(ctx, userID, st)
	}

	q, err := m.bank.QuestionByID(ctx, st.QuestionIDs[st.Cursor])
	if err != nil {
		return nil, err
	}
	if q == nil {
		st.Cursor++
		replies, err := m.serveMistake(ctx, userID, st)
		if err != nil {
			return nil, err
		}
		return append(notice(msgQuestionMissing), replies...), nil
	}

	correct := answerMatches(text, q.CorrectAnswer)
	if err := m.ledger.ReviewAnswer(ctx, userID, q.ID, text, correct); err != nil {
		return nil, err
	}
	metrics.QuizAnswers.WithLabelValues("mistakes", result(correct)).Inc()

	verdict := msgMistakeWrong
	if correct {
		verdict = msgMistakeFixed
		st.Cursor++
	}

	replies, err := m.serveMistake(ctx, userID, st)
	if err != nil {
		return nil, err
	}
	return append([]model.Reply{model.Text(verdict)}, replies...), nil
}
