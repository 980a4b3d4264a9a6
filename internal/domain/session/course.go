package session

import (
	"context"
	"fmt"

	lectures "github.com/IT-Nick/tutorbot/internal/domain/lectures/service"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"go.uber.org/zap"
)

// Chapters показывает список глав курса
func (m *Machine) Chapters() []model.Reply {
	names := m.course.Chapters()
	rows := make([][]model.Button, 0, len(names))
	for i, name := range names {
		rows = append(rows, model.Row(model.Button{
			Text: name,
			Data: fmt.Sprintf("%s%d", model.LearnTopicPrefix, i),
		}))
	}
	return []model.Reply{
		{Text: msgChooseChapter, Inline: rows},
		{Text: msgBackToMenuHint, Keyboard: model.KeyboardChapters},
	}
}

// StartCourse начинает главу с первой порции. Прежнее состояние пользователя заменяется.
func (m *Machine) StartCourse(ctx context.Context, userID int64, chapterIdx int) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	names := m.course.Chapters()
	if chapterIdx < 0 || chapterIdx >= len(names) {
		return notice(msgNoChapter), nil
	}
	return m.showChunk(ctx, userID, CourseBrowsing{Chapter: names[chapterIdx]})
}

// CourseNext переходит к следующей порции; после последней глава считается пройденной
func (m *Machine) CourseNext(ctx context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}
	st, ok := cur.(CourseBrowsing)
	if !ok {
		return notice(msgNoCourse), nil
	}
	return m.showChunk(ctx, userID, CourseBrowsing{Chapter: st.Chapter, Chunk: st.Chunk + 1})
}

// CourseBack возвращает на предыдущую порцию. На первой порции позиция не меняется.
func (m *Machine) CourseBack(ctx context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}
	st, ok := cur.(CourseBrowsing)
	if !ok {
		return notice(msgNoCourse), nil
	}
	if st.Chunk == 0 {
		return []model.Reply{{Text: msgFirstChunk, Alert: true}}, nil
	}
	return m.showChunk(ctx, userID, CourseBrowsing{Chapter: st.Chapter, Chunk: st.Chunk - 1})
}

// CourseAsk включает режим вопроса: следующий текст или голос уйдет преподавателю
func (m *Machine) CourseAsk(_ context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}
	st, ok := cur.(CourseBrowsing)
	if !ok {
		return notice(msgNoCourse), nil
	}
	st.AwaitingQuestion = true
	if err := m.put(userID, st); err != nil {
		return nil, err
	}
	return []model.Reply{{Text: msgAskQuestion, Keyboard: model.KeyboardRemove}}, nil
}

// CourseStop останавливает курс, позиция не сохраняется
func (m *Machine) CourseStop(_ context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := cur.(CourseBrowsing); ok {
		if err := m.put(userID, Idle{}); err != nil {
			return nil, err
		}
	}
	return []model.Reply{{Text: msgCourseStopped, Keyboard: model.KeyboardMain}}, nil
}

// CourseToChapters останавливает курс и показывает список глав
func (m *Machine) CourseToChapters(_ context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := cur.(CourseBrowsing); ok {
		if err := m.put(userID, Idle{}); err != nil {
			return nil, err
		}
	}
	return m.Chapters(), nil
}

// ResumeCourse повторно показывает текущую порцию главы
func (m *Machine) ResumeCourse(ctx context.Context, userID int64) ([]model.Reply, error) {
	defer m.locks.lock(userID)()

	cur, err := m.current(userID)
	if err != nil {
		return nil, err
	}
	st, ok := cur.(CourseBrowsing)
	if !ok {
		return []model.Reply{{Text: msgNoCourse, Keyboard: model.KeyboardMain}}, nil
	}
	if st.AwaitingQuestion {
		return []model.Reply{{Text: msgAwaitingQuestion, Keyboard: model.KeyboardRemove}}, nil
	}

	replies, err := m.showChunk(ctx, userID, st)
	if err != nil {
		return nil, err
	}
	resumed := model.Reply{Text: "Возобновляем курс: " + st.Chapter, Keyboard: model.KeyboardRemove}
	return append([]model.Reply{resumed}, replies...), nil
}

// answerCourseQuestion отвечает на вопрос по главе и переходит к следующей порции
func (m *Machine) answerCourseQuestion(ctx context.Context, userID int64, st CourseBrowsing, question string) ([]model.Reply, error) {
	answer, err := m.tutor.AnswerLearnerQuestion(ctx, st.Chapter, question)
	if err != nil {
		return nil, err
	}

	replies, err := m.showChunk(ctx, userID, CourseBrowsing{Chapter: st.Chapter, Chunk: st.Chunk + 1})
	if err != nil {
		return nil, err
	}
	return append([]model.Reply{model.Text(answer)}, replies...), nil
}

// showChunk показывает порцию next и сохраняет next как текущее состояние.
// Если порции кончились, глава пройдена и пользователь возвращается в меню.
// Если лекции нет, состояние не меняется.
func (m *Machine) showChunk(ctx context.Context, userID int64, next CourseBrowsing) ([]model.Reply, error) {
	total := len(m.course.Chunks(next.Chapter))

	if next.Chunk >= total {
		if err := m.put(userID, Idle{}); err != nil {
			return nil, err
		}
		return []model.Reply{{
			Text:     fmt.Sprintf("Глава %s пройдена! 🎉\nВозвращаю меню.", next.Chapter),
			Keyboard: model.KeyboardMain,
		}}, nil
	}

	lecture, ok, err := m.lectures.Lecture(ctx, next.Chapter, next.Chunk)
	if err != nil {
		return nil, err
	}
	if !ok {
		m.log.Warn("prepared lecture missing", zap.String("chapter", next.Chapter), zap.Int("chunk", next.Chunk))
		return notice(msgLectureMissing), nil
	}

	if err := m.put(userID, next); err != nil {
		return nil, err
	}

	header := fmt.Sprintf("Глава %d/%d, порция %d/%d\n\n",
		m.course.Index(next.Chapter)+1, len(m.course.Chapters()), next.Chunk+1, total)

	return []model.Reply{{
		Text:   header + lectures.FormatFormulas(lecture),
		Format: model.FormatMarkdown,
		Inline: courseButtons(),
	}}, nil
}
