package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	feedback "github.com/IT-Nick/tutorbot/internal/domain/feedback/service"
	lectures "github.com/IT-Nick/tutorbot/internal/domain/lectures/service"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
)

var errDB = errors.New("db is down")

type memBank struct {
	questions map[int]model.Question
}

func newBank(qs ...model.Question) *memBank {
	b := &memBank{questions: make(map[int]model.Question)}
	for _, q := range qs {
		b.questions[q.ID] = q
	}
	return b
}

func (b *memBank) ListTestTypes(context.Context) ([]int, error) {
	seen := map[int]bool{}
	var types []int
	for _, q := range b.questions {
		if !seen[q.TestType] {
			seen[q.TestType] = true
			types = append(types, q.TestType)
		}
	}
	sort.Ints(types)
	return types, nil
}

func (b *memBank) QuestionsByType(_ context.Context, testType int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range b.questions {
		if q.TestType == testType {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *memBank) QuestionByID(_ context.Context, id int) (*model.Question, error) {
	q, ok := b.questions[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

type memLedger struct {
	mu         sync.Mutex
	answers    []model.AnswerRecord
	activities []model.Activity
	recordErr  error
}

func (l *memLedger) CheckAnswer(_ context.Context, a model.AnswerRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.recordErr != nil {
		return l.recordErr
	}
	a.ID = len(l.answers) + 1
	l.answers = append(l.answers, a)
	l.completeActivity(a.UserID, a.QuestionID, a.UserAnswer, a.IsCorrect)
	return nil
}

func (l *memLedger) ReviewAnswer(_ context.Context, userID int64, questionID int, answer string, isCorrect bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.recordErr != nil {
		return l.recordErr
	}
	if isCorrect {
		for i := range l.answers {
			if l.answers[i].UserID == userID && l.answers[i].QuestionID == questionID {
				l.answers[i].IsCorrect = true
			}
		}
	}
	l.completeActivity(userID, questionID, answer, isCorrect)
	return nil
}

func (l *memLedger) MistakeQuestions(_ context.Context, userID int64) ([]model.MistakeQuestion, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.MistakeQuestion
	for _, a := range l.answers {
		if a.UserID == userID && !a.IsCorrect {
			out = append(out, model.MistakeQuestion{
				TestType:      a.TestType,
				QuestionID:    a.QuestionID,
				QuestionText:  a.QuestionText,
				UserAnswer:    a.UserAnswer,
				CorrectAnswer: a.CorrectAnswer,
			})
		}
	}
	return out, nil
}

func (l *memLedger) StartActivity(_ context.Context, userID int64, testType, questionID int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.activities {
		if a.UserID == userID && a.QuestionID == questionID && a.Open() {
			return false, nil
		}
	}
	l.activities = append(l.activities, model.Activity{UserID: userID, TestType: testType, QuestionID: questionID})
	return true, nil
}

func (l *memLedger) completeActivity(userID int64, questionID int, answer string, isCorrect bool) {
	for i := len(l.activities) - 1; i >= 0; i-- {
		a := &l.activities[i]
		if a.UserID == userID && a.QuestionID == questionID && a.Open() {
			now := time.Now()
			a.AnsweredAt = &now
			a.UserAnswer = &answer
			a.IsCorrect = &isCorrect
			return
		}
	}
}

// openActivity возвращает открытую запись активности по вопросу
func (l *memLedger) openActivity(userID int64, questionID int) (model.Activity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.activities {
		if a.UserID == userID && a.QuestionID == questionID && a.Open() {
			return a, true
		}
	}
	return model.Activity{}, false
}

func (l *memLedger) results() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]bool, len(l.answers))
	for i, a := range l.answers {
		out[i] = a.IsCorrect
	}
	return out
}

type memProgress struct {
	data    map[string]model.QuizProgress
	saveErr error
}

func newProgress() *memProgress {
	return &memProgress{data: make(map[string]model.QuizProgress)}
}

func progressKey(userID int64, testType int) string { return fmt.Sprintf("%d/%d", userID, testType) }

func (p *memProgress) Save(_ context.Context, userID int64, testType int, idx int, ids []int) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.data[progressKey(userID, testType)] = model.QuizProgress{
		UserID: userID, TestType: testType, Index: idx, QuestionIDs: append([]int(nil), ids...),
	}
	return nil
}

func (p *memProgress) Load(_ context.Context, userID int64, testType int) (model.QuizProgress, bool, error) {
	pr, ok := p.data[progressKey(userID, testType)]
	return pr, ok, nil
}

func (p *memProgress) Clear(_ context.Context, userID int64, testType int) error {
	delete(p.data, progressKey(userID, testType))
	return nil
}

type memLectures struct {
	missing map[string]bool
}

func (l memLectures) Lecture(_ context.Context, topic string, idx int) (string, bool, error) {
	key := fmt.Sprintf("%s/%d", topic, idx)
	if l.missing[key] {
		return "", false, nil
	}
	return "лекция " + key, true, nil
}

type fakeTutor struct {
	pinned    map[int64]string
	questions []string
	answerErr error
}

func (t *fakeTutor) EvaluateFreeResponse(_ context.Context, userID int64, _ string, text string) (feedback.Result, error) {
	topic := t.pinned[userID]
	delete(t.pinned, userID)
	if topic == "" {
		topic = "Алканы"
	}
	return feedback.Result{Topic: topic, Answer: text, Feedback: "a < b"}, nil
}

func (t *fakeTutor) AnswerLearnerQuestion(_ context.Context, topic, question string) (string, error) {
	if t.answerErr != nil {
		return "", t.answerErr
	}
	t.questions = append(t.questions, question)
	return "ответ по теме " + topic, nil
}

func (t *fakeTutor) PinTopic(userID int64, topic string) {
	t.pinned[userID] = topic
}

type env struct {
	m        *Machine
	bank     *memBank
	ledger   *memLedger
	progress *memProgress
	tutor    *fakeTutor
	lectures memLectures
}

// newEnv собирает машину с тестом 3 из вопросов 101, 102, 103 и двумя главами курса
func newEnv() *env {
	e := &env{
		bank: newBank(
			model.Question{ID: 101, TestType: 3, Text: "Формула метана?", Options: []string{"C2H6", "CH4", "C3H8"}, CorrectAnswer: "2", Hint: "Один углерод"},
			model.Question{ID: 102, TestType: 3, Text: "Какие вещества алканы?", Options: []string{"метан", "этилен", "пропан"}, CorrectAnswer: "13", Explanation: "Этилен - алкен"},
			model.Question{ID: 103, TestType: 3, Text: "Сколько атомов H в этане?", Options: []string{"2", "4", "5", "6"}, CorrectAnswer: "4"},
			model.Question{ID: 201, TestType: 5, Text: "Вопрос", Options: []string{"a", "b"}, CorrectAnswer: "1"},
		),
		ledger:   &memLedger{},
		progress: newProgress(),
		tutor:    &fakeTutor{pinned: map[int64]string{}},
		lectures: memLectures{missing: map[string]bool{}},
	}
	catalog := lectures.NewCatalog([]lectures.Chapter{
		{Name: "Алканы", Chunks: []string{"c0", "c1", "c2", "c3", "c4"}},
		{Name: "Алкены", Chunks: []string{"c0", "c1"}},
	})
	e.m = NewMachine(Deps{
		Store:    NewMemoryStore(),
		Bank:     e.bank,
		Ledger:   e.ledger,
		Progress: e.progress,
		Course:   catalog,
		Lectures: e.lectures,
		Tutor:    e.tutor,
	})
	return e
}
