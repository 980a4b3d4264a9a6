package menu_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	messageService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	"gopkg.in/telebot.v4"
)

// MenuHandler показывает главное меню
type MenuHandler struct {
	messageService *messageService.MessageService
}

// NewMenuHandler возвращает структуру обработчика
func NewMenuHandler(messageService *messageService.MessageService) *MenuHandler {
	return &MenuHandler{messageService: messageService}
}

func (h *MenuHandler) Handle(c telebot.Context) error {
	return c.Send(h.messageService.Get(context.Background(), messageService.MainMenuKey), render.MainKeyboard())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *MenuHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
