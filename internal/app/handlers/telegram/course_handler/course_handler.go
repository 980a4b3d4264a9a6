package course_handler

import (
	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"gopkg.in/telebot.v4"
)

// CourseHandler показывает главы курса по органике
type CourseHandler struct {
	machine *session.Machine
	render  *render.Renderer
}

// NewCourseHandler возвращает структуру обработчика
func NewCourseHandler(machine *session.Machine, render *render.Renderer) *CourseHandler {
	return &CourseHandler{machine: machine, render: render}
}

func (h *CourseHandler) Handle(c telebot.Context) error {
	return h.render.Send(c, h.machine.Chapters())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *CourseHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
