package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IT-Nick/tutorbot/internal/domain/dto"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
)

const (
	timeLayout     = "02.01.2006 15:04"
	commentPreview = 300
	commentsInChat = 5
)

// LearnerSource - источник данных об учениках
type LearnerSource interface {
	GetLearner(ctx context.Context, telegramID int64) (*model.Learner, error)
}

// StatsSource - сводка ответов по тестам
type StatsSource interface {
	TestStats(ctx context.Context, userID int64) ([]model.TestStat, error)
}

// RecordSource - проверенные ответы устного зачета
type RecordSource interface {
	Records(ctx context.Context, userID int64) ([]model.FeedbackRecord, error)
}

// ReportService собирает отчет о прогрессе ученика
type ReportService struct {
	learners LearnerSource
	stats    StatsSource
	records  RecordSource
	topics   []string
	now      func() time.Time
}

// NewReportService создает новый экземпляр ReportService. topics - все темы устного зачета.
func NewReportService(learners LearnerSource, stats StatsSource, records RecordSource, topics []string) *ReportService {
	return &ReportService{
		learners: learners,
		stats:    stats,
		records:  records,
		topics:   topics,
		now:      time.Now,
	}
}

// LearnerProgress собирает отчет по ученику. Если ученик не найден, возвращается ошибка с model.ErrNotFound.
func (s *ReportService) LearnerProgress(ctx context.Context, telegramID int64) (*dto.LearnerProgressResponse, error) {
	learner, err := s.learners.GetLearner(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.TestStats(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test stats: %w", err)
	}

	records, err := s.records.Records(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback records: %w", err)
	}

	report := &dto.LearnerProgressResponse{
		Username:    learner.Username,
		TelegramID:  learner.TelegramID,
		FullName:    learner.FullName,
		GeneratedAt: s.now().Format(timeLayout),
		Topics:      dto.TopicsProgress{Done: doneTopics(records), Total: len(s.topics)},
		TestHistory: make([]dto.TestHistory, 0, len(stats)),
		Comments:    make([]dto.CommentInfo, 0, len(records)),
	}

	for _, st := range stats {
		report.TestHistory = append(report.TestHistory, dto.TestHistory{
			TestType:       st.TestType,
			TotalAnswers:   st.Total,
			CorrectAnswers: st.Correct,
			Percent:        percent(st.Correct, st.Total),
		})
	}

	for _, r := range records {
		report.Comments = append(report.Comments, dto.CommentInfo{
			Topic:     r.Topic,
			Feedback:  r.Feedback,
			CreatedAt: r.CreatedAt.Format(timeLayout),
		})
	}

	return report, nil
}

// Empty сообщает, что у ученика нет ни сданных тем, ни ответов в тестах
func Empty(r *dto.LearnerProgressResponse) bool {
	return len(r.TestHistory) == 0 && len(r.Comments) == 0
}

// RenderText превращает отчет в сообщение для чата
func RenderText(r *dto.LearnerProgressResponse) string {
	var b strings.Builder

	name := r.FullName
	if name == "" {
		name = "—"
	}
	fmt.Fprintf(&b, "📈 Отчет по обучению\nИмя: %s\nДата отчёта: %s\n\n", name, r.GeneratedAt)

	fmt.Fprintf(&b, "📚 Сдано тем: %d из %d\n", len(r.Topics.Done), r.Topics.Total)
	if len(r.Topics.Done) > 0 {
		b.WriteString(strings.Join(r.Topics.Done, ", "))
		b.WriteString("\n")
	}

	if len(r.TestHistory) > 0 {
		b.WriteString("\n📝 Тесты:\n")
		for _, t := range r.TestHistory {
			fmt.Fprintf(&b, "• Тест %d: %d из %d верно (%d%%)\n", t.TestType, t.CorrectAnswers, t.TotalAnswers, t.Percent)
		}
	}

	if len(r.Comments) > 0 {
		b.WriteString("\n💬 Последние комментарии:\n")
		start := max(0, len(r.Comments)-commentsInChat)
		for _, c := range r.Comments[start:] {
			fmt.Fprintf(&b, "📘 %s (%s)\n%s\n\n", c.Topic, c.CreatedAt, preview(c.Feedback))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// doneTopics - темы из проверенных ответов без повторов, в порядке первой сдачи
func doneTopics(records []model.FeedbackRecord) []string {
	topics := make([]string, 0, len(records))
	for _, r := range records {
		if r.Topic != "" && !slices.Contains(topics, r.Topic) {
			topics = append(topics, r.Topic)
		}
	}
	return topics
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= commentPreview {
		return text
	}
	runes := []rune(text)
	return string(runes[:commentPreview]) + "…"
}
