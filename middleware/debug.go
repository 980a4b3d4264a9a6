package middleware

import (
	"fmt"

	tele "gopkg.in/telebot.v4"
)

// DebugUserActions возвращает middleware, которое в режиме отладки после
// обработки отправляет пользователю его ID, текущее состояние и действие.
// state возвращает название состояния пользователя.
func DebugUserActions(enabled bool, state func(userID int64) string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			user := c.Sender()
			if !enabled || user == nil {
				return err
			}

			var action string
			if msg := c.Message(); msg != nil && c.Callback() == nil {
				action = "Message: " + msg.Text
			} else if cb := c.Callback(); cb != nil {
				action = "Callback: " + cb.Data
			} else {
				action = "Unknown action"
			}

			debugMsg := fmt.Sprintf("DEBUG: User: %s (ID: %d), State: %s, Action: %s",
				user.FirstName, user.ID, state(user.ID), action)
			go c.Bot().Send(user, debugMsg)

			return err
		}
	}
}
