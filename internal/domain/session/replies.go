package session

import (
	"fmt"
	"strings"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
)

const (
	msgNoCourse         = "Нет активного курса. Нажми 🌱 Курс по органике, чтобы начать."
	msgNoChapter        = "Такой главы нет в курсе."
	msgLectureMissing   = "Лекция пока не подготовлена. Обратитесь к администратору."
	msgFirstChunk       = "Вы на первой порции."
	msgAskQuestion      = "Задайте ваш вопрос по этому материалу:"
	msgAwaitingQuestion = "Вы в режиме вопроса. Задайте ваш вопрос."
	msgCourseStopped    = "Курс остановлен. Чтобы возобновить, нажми ▶️ Продолжить или выбери 🌱 Курс по органике."
	msgChooseChapter    = "Выберите главу для курса по органике:"
	msgBackToMenuHint   = "Можешь в любой момент вернуться в меню:"

	msgChooseTest      = "Выбери номер теста:"
	msgNoQuestions     = "Нет вопросов для этого теста."
	msgNoProgress      = "Не удалось найти сохранённый прогресс. Попробуйте начать заново."
	msgQuizFinished    = "Тест завершён! Возвращаюсь в меню."
	msgQuizStopped     = "Тест прерван! Выбери тест для прохождения:"
	msgReviewStopped   = "Разбор ошибок завершён! Возвращаюсь в раздел тестов."
	msgNothingToStop   = "Действие отменено. Выбери тест:"
	msgQuestionMissing = "Вопрос больше недоступен, пропускаю его."
	msgNoHint          = "Для этого задания нет подсказки."
	msgHintMissing     = "Вопрос не найден."
	msgCorrect         = "✅ Верно!"

	msgNoMistakes       = "У тебя нет ошибок для исправления! Молодец!"
	msgChooseMistakes   = "Выбери тест, где были ошибки:"
	msgNoTestMistakes   = "Нет ошибок в этом тесте."
	msgMistakeFixed     = "✅ Теперь верно! Ошибка исправлена."
	msgMistakeWrong     = "❌ Пока неверно. Попробуй ещё раз!"
	msgMistakesFinished = "Все ошибки в этом тесте исправлены! 👍"

	msgEmptyTranscript = "Не удалось распознать голосовое сообщение. Попробуй ещё раз или напиши текстом."
	msgRecordVoice     = "Запишите голосовой ответ на эти вопросы:"
)

func courseButtons() [][]model.Button {
	return [][]model.Button{
		model.Row(
			model.Button{Text: "◀️ Назад", Data: model.LearnBack},
			model.Button{Text: "👍 Понятно", Data: model.LearnOK},
		),
		model.Row(
			model.Button{Text: "❓ Есть вопрос", Data: model.LearnAsk},
			model.Button{Text: "■ Стоп", Data: model.LearnStop},
			model.Button{Text: "🏠 К главам", Data: model.LearnToChapters},
		),
	}
}

func questionButtons(questionID int) [][]model.Button {
	return [][]model.Button{
		model.Row(model.Button{Text: "💡 Подсказка", Data: fmt.Sprintf("%s%d", model.HintPrefix, questionID)}),
		model.Row(model.Button{Text: "⏹️ Стоп тест", Data: model.StopTest}),
	}
}

func testsButtons(types []int, withMenu bool) [][]model.Button {
	rows := make([][]model.Button, 0, len(types)+2)
	for _, t := range types {
		rows = append(rows, model.Row(model.Button{
			Text: fmt.Sprintf("Тест %d", t),
			Data: fmt.Sprintf("%s%d", model.ChooseTestPrefix, t),
		}))
	}
	rows = append(rows, model.Row(model.Button{Text: "💡 Работа над ошибками", Data: model.WorkOnMistakes}))
	if withMenu {
		rows = append(rows, model.Row(model.Button{Text: "⬅️ В главное меню", Data: model.ToMainMenu}))
	}
	return rows
}

// questionText собирает текст вопроса с пронумерованными вариантами
func questionText(header string, q *model.Question, footer string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(q.Text)
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func notice(text string) []model.Reply {
	return []model.Reply{model.Text(text)}
}
