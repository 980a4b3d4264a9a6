package session

import (
	"context"

	feedback "github.com/IT-Nick/tutorbot/internal/domain/feedback/service"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"go.uber.org/zap"
)

// QuestionBank - доступ к вопросам тестов
type QuestionBank interface {
	ListTestTypes(ctx context.Context) ([]int, error)
	QuestionsByType(ctx context.Context, testType int) ([]model.Question, error)
	QuestionByID(ctx context.Context, id int) (*model.Question, error)
}

// Ledger - журнал ответов и активности. CheckAnswer и ReviewAnswer меняют
// журнал ответов и журнал активности вместе или не меняют ничего.
type Ledger interface {
	MistakeQuestions(ctx context.Context, userID int64) ([]model.MistakeQuestion, error)
	StartActivity(ctx context.Context, userID int64, testType int, questionID int) (bool, error)
	CheckAnswer(ctx context.Context, a model.AnswerRecord) error
	ReviewAnswer(ctx context.Context, userID int64, questionID int, answer string, isCorrect bool) error
}

// ProgressStore - сохраненные позиции в тестах
type ProgressStore interface {
	Save(ctx context.Context, userID int64, testType int, idx int, questionIDs []int) error
	Load(ctx context.Context, userID int64, testType int) (model.QuizProgress, bool, error)
	Clear(ctx context.Context, userID int64, testType int) error
}

// Course - оглавление курса
type Course interface {
	Chapters() []string
	Chunks(chapter string) []string
	Index(chapter string) int
}

// Lectures - подготовленные лекции по порциям
type Lectures interface {
	Lecture(ctx context.Context, topic string, idx int) (string, bool, error)
}

// Tutor проверяет свободные ответы и отвечает на вопросы ученика
type Tutor interface {
	EvaluateFreeResponse(ctx context.Context, userID int64, fullName, text string) (feedback.Result, error)
	AnswerLearnerQuestion(ctx context.Context, topic, question string) (string, error)
	PinTopic(userID int64, topic string)
}

type Deps struct {
	Store    Store
	Bank     QuestionBank
	Ledger   Ledger
	Progress ProgressStore
	Course   Course
	Lectures Lectures
	Tutor    Tutor
	Log      *zap.Logger
}

// Machine ведет пользователя по курсу, тестам и работе над ошибками.
// Каждый метод выполняется под блокировкой пользователя и возвращает
// сообщения, которые нужно отправить. Если запись в журнал ответов или
// в прогресс не удалась, метод возвращает ошибку и состояние не меняется.
type Machine struct {
	store    Store
	bank     QuestionBank
	ledger   Ledger
	progress ProgressStore
	course   Course
	lectures Lectures
	tutor    Tutor
	log      *zap.Logger
	locks    *locker
}

// NewMachine создает новый экземпляр Machine
func NewMachine(d Deps) *Machine {
	store := d.Store
	if store == nil {
		store = NewMemoryStore()
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{
		store:    store,
		bank:     d.Bank,
		ledger:   d.Ledger,
		progress: d.Progress,
		course:   d.Course,
		lectures: d.Lectures,
		tutor:    d.Tutor,
		log:      log,
		locks:    newLocker(),
	}
}

// State возвращает текущее состояние пользователя. Если хранилище не
// читается, ошибка логируется и возвращается Idle.
func (m *Machine) State(userID int64) State {
	defer m.locks.lock(userID)()
	st, err := m.current(userID)
	if err != nil {
		m.log.Error("failed to read session", zap.Int64("user_id", userID), zap.Error(err))
		return Idle{}
	}
	return st
}

func (m *Machine) current(userID int64) (State, error) {
	st, ok, err := m.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if ok && st != nil {
		return st, nil
	}
	return Idle{}, nil
}

func (m *Machine) put(userID int64, st State) error {
	if _, idle := st.(Idle); idle {
		return m.store.Delete(userID)
	}
	return m.store.Put(userID, st)
}
