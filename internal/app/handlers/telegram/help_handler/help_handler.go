package help_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	messageService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	"gopkg.in/telebot.v4"
)

// HelpHandler рассказывает, как работает бот
type HelpHandler struct {
	messageService *messageService.MessageService
}

// NewHelpHandler возвращает структуру обработчика
func NewHelpHandler(messageService *messageService.MessageService) *HelpHandler {
	return &HelpHandler{messageService: messageService}
}

func (h *HelpHandler) Handle(c telebot.Context) error {
	return c.Send(h.messageService.Get(context.Background(), messageService.HelpKey), render.MainKeyboard())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *HelpHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
