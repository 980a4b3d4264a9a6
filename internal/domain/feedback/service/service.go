package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"go.uber.org/zap"
)

// passagesLimit - сколько фрагментов учебника отправляется вместе с ответом на проверку
const passagesLimit = 3

// Capabilities - языковые возможности, которые нужны оркестратору
type Capabilities interface {
	ClassifyTopic(ctx context.Context, text string) (string, error)
	Evaluate(ctx context.Context, text, topic string, passages []string) (string, error)
	AnswerQuestion(ctx context.Context, topic, question string) (string, error)
}

// PassageSource отдает фрагменты учебника по теме
type PassageSource interface {
	Passages(topic string, n int) []string
}

// RecordStore - внешнее хранилище проверенных ответов
type RecordStore interface {
	Save(ctx context.Context, rec model.FeedbackRecord) error
	ListByUser(ctx context.Context, userID int64) ([]model.FeedbackRecord, error)
}

// Result - итог проверки свободного ответа
type Result struct {
	Topic    string
	Answer   string
	Feedback string
}

// FeedbackService проверяет свободные ответы и отвечает на вопросы по курсу
type FeedbackService struct {
	caps     Capabilities
	passages PassageSource
	records  RecordStore
	log      *zap.Logger

	mu     sync.Mutex
	pinned map[int64]string
}

// NewFeedbackService создает новый экземпляр FeedbackService
func NewFeedbackService(caps Capabilities, passages PassageSource, records RecordStore, log *zap.Logger) *FeedbackService {
	return &FeedbackService{
		caps:     caps,
		passages: passages,
		records:  records,
		log:      log,
		pinned:   make(map[int64]string),
	}
}

// PinTopic закрепляет тему за следующим ответом пользователя
func (s *FeedbackService) PinTopic(userID int64, topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinned[userID] = topic
}

func (s *FeedbackService) takePinned(userID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	topic, ok := s.pinned[userID]
	delete(s.pinned, userID)
	return topic, ok
}

// EvaluateFreeResponse определяет тему (закрепленную или по классификации),
// проверяет ответ по учебнику, очищает разметку и сохраняет запись.
// Ошибка сохранения записи только логируется: ученик все равно получает комментарий.
func (s *FeedbackService) EvaluateFreeResponse(ctx context.Context, userID int64, fullName, text string) (Result, error) {
	topic, ok := s.takePinned(userID)
	if !ok {
		var err error
		topic, err = s.caps.ClassifyTopic(ctx, text)
		if err != nil {
			return Result{}, fmt.Errorf("failed to classify topic: %w", err)
		}
	}

	feedback, err := s.caps.Evaluate(ctx, text, topic, s.passages.Passages(topic, passagesLimit))
	if err != nil {
		return Result{}, fmt.Errorf("failed to evaluate answer: %w", err)
	}
	clean := CleanHTML(feedback)

	err = s.records.Save(ctx, model.FeedbackRecord{
		UserID:     userID,
		FullName:   fullName,
		Topic:      topic,
		Transcript: text,
		Feedback:   clean,
	})
	if err != nil {
		s.log.Error("failed to save feedback record", zap.Int64("user_id", userID), zap.Error(err))
	}

	return Result{Topic: topic, Answer: text, Feedback: clean}, nil
}

// AnswerLearnerQuestion отвечает на вопрос ученика по теме главы
func (s *FeedbackService) AnswerLearnerQuestion(ctx context.Context, topic, question string) (string, error) {
	answer, err := s.caps.AnswerQuestion(ctx, topic, question)
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}
	return answer, nil
}

// Records возвращает все проверенные ответы пользователя
func (s *FeedbackService) Records(ctx context.Context, userID int64) ([]model.FeedbackRecord, error) {
	return s.records.ListByUser(ctx, userID)
}

var anyTagRe = regexp.MustCompile(`<[^>]*?>`)

var listTags = strings.NewReplacer(
	"<p>", "", "</p>", "",
	"<br>", "\n",
	"<ul>", "", "</ul>", "",
	"<ol>", "", "</ol>", "",
	"<li>", "• ", "</li>", "\n",
)

// CleanHTML убирает HTML из ответа модели: абзацы и списки превращаются
// в переводы строк и маркеры, остальные теги удаляются
func CleanHTML(text string) string {
	return anyTagRe.ReplaceAllString(listTags.Replace(text), "")
}
