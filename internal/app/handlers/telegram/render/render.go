package render

import (
	"errors"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Тексты ошибок для пользователя. Текст самой ошибки пользователю не показывается.
const (
	MsgMalformed   = "Ошибка: неверные данные кнопки."
	MsgNotFound    = "Не найдено. Возможно, данные устарели."
	MsgCapability  = "Сервис проверки сейчас недоступен. Попробуй ещё раз чуть позже."
	MsgPersistence = "Не удалось сохранить данные. Попробуй ещё раз."
	MsgInternal    = "Что-то пошло не так. Попробуй ещё раз."
)

// Renderer отправляет model.Reply через telebot
type Renderer struct {
	examTopics []string
	log        *zap.Logger
}

// NewRenderer создает Renderer. examTopics нужны для клавиатуры выбора темы зачета.
func NewRenderer(examTopics []string, log *zap.Logger) *Renderer {
	return &Renderer{examTopics: examTopics, log: log}
}

// Send отправляет ответы по порядку. Alert отправляется всплывающим
// уведомлением, если обновление пришло от кнопки.
func (r *Renderer) Send(c tele.Context, replies []model.Reply) error {
	for _, reply := range replies {
		if reply.Alert && c.Callback() != nil {
			if err := c.Respond(&tele.CallbackResponse{Text: reply.Text, ShowAlert: true}); err != nil {
				return err
			}
			continue
		}

		opts := &tele.SendOptions{ParseMode: r.parseMode(reply.Format), ReplyMarkup: r.markup(reply)}
		err := c.Send(reply.Text, opts)
		if err != nil && reply.Format == model.FormatMarkdown {
			// Лекции от модели иногда ломают Markdown, тогда отправляем как есть
			r.log.Warn("failed to send markdown, retrying as plain text", zap.Error(err))
			opts.ParseMode = tele.ModeDefault
			err = c.Send(reply.Text, opts)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Fail логирует ошибку и отправляет пользователю короткое сообщение по ее классу
func (r *Renderer) Fail(c tele.Context, err error) error {
	fields := []zap.Field{zap.Error(err)}
	if s := c.Sender(); s != nil {
		fields = append(fields, zap.Int64("user_id", s.ID))
	}
	r.log.Error("failed to handle update", fields...)

	return c.Send(Notice(err))
}

// Reply отправляет результат операции или, при ошибке, сообщение об ошибке
func (r *Renderer) Reply(c tele.Context, replies []model.Reply, err error) error {
	if err != nil {
		return r.Fail(c, err)
	}
	return r.Send(c, replies)
}

// Notice подбирает текст для пользователя по классу ошибки
func Notice(err error) string {
	switch {
	case errors.Is(err, model.ErrMalformedInput):
		return MsgMalformed
	case errors.Is(err, model.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, model.ErrCapability):
		return MsgCapability
	case errors.Is(err, model.ErrPersistence):
		return MsgPersistence
	}
	return MsgInternal
}

func (r *Renderer) parseMode(f model.Format) tele.ParseMode {
	switch f {
	case model.FormatHTML:
		return tele.ModeHTML
	case model.FormatMarkdown:
		return tele.ModeMarkdown
	}
	return tele.ModeDefault
}

func (r *Renderer) markup(reply model.Reply) *tele.ReplyMarkup {
	if len(reply.Inline) > 0 {
		rows := make([][]tele.InlineButton, 0, len(reply.Inline))
		for _, row := range reply.Inline {
			buttons := make([]tele.InlineButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tele.InlineButton{Text: b.Text, Data: b.Data})
			}
			rows = append(rows, buttons)
		}
		return &tele.ReplyMarkup{InlineKeyboard: rows}
	}

	switch reply.Keyboard {
	case model.KeyboardMain:
		return MainKeyboard()
	case model.KeyboardTopics:
		return TopicsKeyboard(r.examTopics)
	case model.KeyboardAfterTopic:
		return replyKeyboard([]string{model.MenuTopics, model.MenuBack})
	case model.KeyboardChapters:
		return replyKeyboard([]string{model.MenuBack})
	case model.KeyboardRemove:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	}
	return nil
}

// MainKeyboard - главное меню
func MainKeyboard() *tele.ReplyMarkup {
	return replyKeyboard(
		[]string{model.MenuCourse, model.MenuTests},
		[]string{model.MenuExam, model.MenuReport},
		[]string{model.MenuResume, model.MenuHelp},
	)
}

// TopicsKeyboard - темы устного зачета по две в ряд и кнопка возврата в меню
func TopicsKeyboard(topics []string) *tele.ReplyMarkup {
	rows := make([][]string, 0, len(topics)/2+2)
	for i := 0; i < len(topics); i += 2 {
		rows = append(rows, topics[i:min(i+2, len(topics))])
	}
	rows = append(rows, []string{model.MenuBack})

	m := replyKeyboard(rows...)
	m.OneTimeKeyboard = true
	return m
}

func replyKeyboard(rows ...[]string) *tele.ReplyMarkup {
	keyboard := make([][]tele.ReplyButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.ReplyButton, 0, len(row))
		for _, text := range row {
			buttons = append(buttons, tele.ReplyButton{Text: text})
		}
		keyboard = append(keyboard, buttons)
	}
	return &tele.ReplyMarkup{ReplyKeyboard: keyboard, ResizeKeyboard: true}
}

// LearnerOf собирает ученика из отправителя обновления
func LearnerOf(c tele.Context) model.Learner {
	s := c.Sender()
	if s == nil {
		return model.Learner{}
	}
	fullName := s.FirstName
	if s.LastName != "" {
		fullName += " " + s.LastName
	}
	return model.Learner{
		TelegramID: s.ID,
		Username:   s.Username,
		FirstName:  s.FirstName,
		FullName:   fullName,
	}
}
