package exam_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	messageService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	"gopkg.in/telebot.v4"
)

// ExamHandler показывает темы устного зачета
type ExamHandler struct {
	messageService *messageService.MessageService
	topics         []string
}

// NewExamHandler возвращает структуру обработчика
func NewExamHandler(messageService *messageService.MessageService, topics []string) *ExamHandler {
	return &ExamHandler{messageService: messageService, topics: topics}
}

func (h *ExamHandler) Handle(c telebot.Context) error {
	text := h.messageService.Get(context.Background(), messageService.ChooseTopicKey)
	return c.Send(text, render.TopicsKeyboard(h.topics))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *ExamHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
