package resume_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"gopkg.in/telebot.v4"
)

// ResumeHandler возобновляет курс с текущей порции
type ResumeHandler struct {
	machine *session.Machine
	render  *render.Renderer
}

// NewResumeHandler возвращает структуру обработчика
func NewResumeHandler(machine *session.Machine, render *render.Renderer) *ResumeHandler {
	return &ResumeHandler{machine: machine, render: render}
}

func (h *ResumeHandler) Handle(c telebot.Context) error {
	replies, err := h.machine.ResumeCourse(context.Background(), c.Sender().ID)
	return h.render.Reply(c, replies, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *ResumeHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
