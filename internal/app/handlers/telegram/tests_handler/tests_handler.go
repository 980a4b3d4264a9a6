package tests_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"gopkg.in/telebot.v4"
)

// TestsHandler показывает список тестов
type TestsHandler struct {
	machine *session.Machine
	render  *render.Renderer
}

// NewTestsHandler возвращает структуру обработчика
func NewTestsHandler(machine *session.Machine, render *render.Renderer) *TestsHandler {
	return &TestsHandler{machine: machine, render: render}
}

func (h *TestsHandler) Handle(c telebot.Context) error {
	replies, err := h.machine.TestsMenu(context.Background(), false)
	return h.render.Reply(c, replies, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TestsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
