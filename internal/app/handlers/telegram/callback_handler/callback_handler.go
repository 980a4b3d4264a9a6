package callback_handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	messageService "github.com/IT-Nick/tutorbot/internal/domain/messages/service"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// CallbackHandler разбирает данные inline-кнопок и вызывает нужный переход
type CallbackHandler struct {
	machine        *session.Machine
	messageService *messageService.MessageService
	render         *render.Renderer
	log            *zap.Logger
}

// NewCallbackHandler возвращает структуру обработчика
func NewCallbackHandler(
	machine *session.Machine,
	messageService *messageService.MessageService,
	render *render.Renderer,
	log *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		machine:        machine,
		messageService: messageService,
		render:         render,
		log:            log,
	}
}

type action func(ctx context.Context, userID int64) ([]model.Reply, error)

type numberedAction func(ctx context.Context, userID int64, n int) ([]model.Reply, error)

func (h *CallbackHandler) Handle(c telebot.Context) error {
	data := CleanData(c.Callback().Data)
	ctx := context.Background()

	act, err := h.route(data)
	if err != nil {
		return h.render.Fail(c, err)
	}
	if act == nil {
		h.log.Warn("unknown callback", zap.String("data", data), zap.Int64("user_id", c.Sender().ID))
		return nil
	}

	replies, err := act(ctx, c.Sender().ID)
	return h.render.Reply(c, replies, err)
}

// route возвращает действие для данных кнопки или nil, если кнопка неизвестна.
// Если числовой суффикс не разбирается, возвращается ошибка с model.ErrMalformedInput.
func (h *CallbackHandler) route(data string) (action, error) {
	switch data {
	case model.LearnOK:
		return h.machine.CourseNext, nil
	case model.LearnBack:
		return h.machine.CourseBack, nil
	case model.LearnAsk:
		return h.machine.CourseAsk, nil
	case model.LearnStop:
		return h.machine.CourseStop, nil
	case model.LearnToChapters:
		return h.machine.CourseToChapters, nil
	case model.StopTest:
		return h.machine.StopTest, nil
	case model.WorkOnMistakes:
		return h.machine.MistakesMenu, nil
	case model.ToMainMenu:
		return h.mainMenu, nil
	}

	numbered := []struct {
		prefix string
		do     numberedAction
	}{
		{model.LearnTopicPrefix, h.machine.StartCourse},
		{model.ChooseTestPrefix, h.machine.ChooseTest},
		{model.ContinueTestPrefix, h.machine.ContinueTest},
		{model.RestartTestPrefix, h.machine.RestartTest},
		{model.MistakeTestPrefix, h.machine.StartMistakeReview},
		{model.HintPrefix, func(ctx context.Context, _ int64, questionID int) ([]model.Reply, error) {
			return h.machine.Hint(ctx, questionID)
		}},
	}

	for _, r := range numbered {
		suffix, ok := strings.CutPrefix(data, r.prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, fmt.Errorf("callback %q: %w", data, model.ErrMalformedInput)
		}
		do := r.do
		return func(ctx context.Context, userID int64) ([]model.Reply, error) {
			return do(ctx, userID, n)
		}, nil
	}

	return nil, nil
}

func (h *CallbackHandler) mainMenu(ctx context.Context, _ int64) ([]model.Reply, error) {
	return []model.Reply{{
		Text:     h.messageService.Get(ctx, messageService.MainMenuKey),
		Keyboard: model.KeyboardMain,
	}}, nil
}

// CleanData очищает данные callback от служебных символов
func CleanData(data string) string {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	cleaned = strings.ReplaceAll(cleaned, "\\f", "")
	return cleaned
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *CallbackHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
