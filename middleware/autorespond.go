package middleware

import (
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

// AutoRespond отвечает на callback после обработки, чтобы у кнопки пропали часы загрузки.
// Если обработчик уже ответил сам (например, всплывающим уведомлением), второй ответ
// не отправляется: Telegram принимает только один ответ на callback.
func AutoRespond() tele.MiddlewareFunc {
	auto := middleware.AutoRespond()
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		wrapped := auto(next)
		return func(c tele.Context) error {
			if c.Callback() == nil {
				return next(c)
			}
			return wrapped(&respondOnce{Context: c})
		}
	}
}

// respondOnce пропускает повторные ответы на один и тот же callback
type respondOnce struct {
	tele.Context
	responded bool
}

func (c *respondOnce) Respond(resp ...*tele.CallbackResponse) error {
	if c.responded {
		return nil
	}
	c.responded = true
	return c.Context.Respond(resp...)
}
