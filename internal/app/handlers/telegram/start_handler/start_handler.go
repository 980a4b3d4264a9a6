package start_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	messageService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	usersService "github.com/IT-Nick/tutorbot/internal/domain/users/service"
	"gopkg.in/telebot.v4"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	learnerService *usersService.LearnerService
	messageService *messageService.MessageService
	render         *render.Renderer
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(
	learnerService *usersService.LearnerService,
	messageService *messageService.MessageService,
	render *render.Renderer,
) *StartHandler {
	return &StartHandler{
		learnerService: learnerService,
		messageService: messageService,
		render:         render,
	}
}

// Handle регистрирует ученика и показывает приветствие с главным меню
func (h *StartHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	if _, err := h.learnerService.GetOrCreateLearner(ctx, render.LearnerOf(c)); err != nil {
		return h.render.Fail(c, err)
	}

	return c.Send(h.messageService.Get(ctx, messageService.WelcomeKey), render.MainKeyboard())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
