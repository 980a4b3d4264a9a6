package text_handler

import (
	"context"
	"slices"
	"strings"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"gopkg.in/telebot.v4"
)

// TextHandler обрабатывает свободный текст: выбор темы зачета, ответ на вопрос
// теста, вопрос по главе или ответ на проверку
type TextHandler struct {
	machine *session.Machine
	topics  []string
	render  *render.Renderer
}

// NewTextHandler возвращает структуру обработчика
func NewTextHandler(machine *session.Machine, topics []string, render *render.Renderer) *TextHandler {
	return &TextHandler{machine: machine, topics: topics, render: render}
}

func (h *TextHandler) Handle(c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	if slices.Contains(h.topics, text) {
		return h.render.Send(c, h.machine.PinTopic(c.Sender().ID, text))
	}

	replies, err := h.machine.HandleText(context.Background(), render.LearnerOf(c), text)
	return h.render.Reply(c, replies, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TextHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
