package service

import (
	"context"
	"errors"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"go.uber.org/zap"
)

// Ключи текстов, которые можно переопределить в таблице messages
const (
	WelcomeKey     = "welcome"
	HelpKey        = "help"
	MainMenuKey    = "main_menu"
	ChooseTopicKey = "choose_topic"
	NoRecordsKey   = "no_records"
)

var defaults = map[string]string{
	WelcomeKey: "Привет! Я бот-химик 🎓\n" +
		"• Отправь текст или голос, я расшифрую и прокомментирую.\n" +
		"• 🌱 Курс по органике: по главам из учебника.\n" +
		"• ▶️ Продолжить: возобновить курс.\n" +
		"• 📝 Тесты: пройти готовые тесты и поработать над ошибками.\n" +
		"• 🧪 Устный зачет: ответь голосом на вопросы по теме.\n" +
		"• 📈 Получить отчёт: твой прогресс.",
	HelpKey: "Я принимаю текст или голос, определяю тему, даю комментарий учителя " +
		"и сохраняю результат. В тестах запоминаю ошибки, чтобы их можно было исправить.",
	MainMenuKey:    "Главное меню:",
	ChooseTopicKey: "Выберите тему по органической химии:",
	NoRecordsKey:   "Ты ещё не сдал ни одной темы и не прошёл ни одного теста.",
}

// MessageSource - хранилище текстов сообщений
type MessageSource interface {
	GetMessageByKey(ctx context.Context, messageKey string) (string, error)
}

// MessageService содержит логику для работы с сообщениями
type MessageService struct {
	messageRepo MessageSource
	log         *zap.Logger
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(messageRepo MessageSource, log *zap.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, log: log}
}

// Get возвращает текст из базы, а если его там нет или база недоступна - встроенный текст
func (s *MessageService) Get(ctx context.Context, messageKey string) string {
	text, err := s.messageRepo.GetMessageByKey(ctx, messageKey)
	if err == nil && text != "" {
		return text
	}
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.log.Warn("failed to get message, using default", zap.String("key", messageKey), zap.Error(err))
	}
	return defaults[messageKey]
}
