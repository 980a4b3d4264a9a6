package report_handler

import (
	"context"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	messageService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	reportService "github.com/IT-Nick/tutorbot/internal/domain/report/service"
	usersService "github.com/IT-Nick/tutorbot/internal/domain/users/service"
	"gopkg.in/telebot.v4"
)

// ReportHandler отправляет ученику отчет о прогрессе
type ReportHandler struct {
	learnerService *usersService.LearnerService
	reportService  *reportService.ReportService
	messageService *messageService.MessageService
	render         *render.Renderer
}

// NewReportHandler возвращает структуру обработчика
func NewReportHandler(
	learnerService *usersService.LearnerService,
	reportService *reportService.ReportService,
	messageService *messageService.MessageService,
	render *render.Renderer,
) *ReportHandler {
	return &ReportHandler{
		learnerService: learnerService,
		reportService:  reportService,
		messageService: messageService,
		render:         render,
	}
}

func (h *ReportHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	// Ученик мог не нажимать /start после перезапуска бота
	if _, err := h.learnerService.GetOrCreateLearner(ctx, render.LearnerOf(c)); err != nil {
		return h.render.Fail(c, err)
	}

	report, err := h.reportService.LearnerProgress(ctx, c.Sender().ID)
	if err != nil {
		return h.render.Fail(c, err)
	}

	if reportService.Empty(report) {
		return c.Send(h.messageService.Get(ctx, messageService.NoRecordsKey), render.MainKeyboard())
	}
	return c.Send(reportService.RenderText(report), render.MainKeyboard())
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *ReportHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
