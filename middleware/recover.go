package middleware

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Recover возвращает middleware, которое перехватывает панику в обработчике,
// превращает ее в ошибку и передает в onError. Без onError паника только логируется.
func Recover(log *zap.Logger, onError ...func(error, tele.Context)) tele.MiddlewareFunc {
	handleError := func(err error, c tele.Context) {
		log.Error("recovered from panic", zap.Error(err), zap.Int("update_id", c.Update().ID))
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					switch x := r.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = fmt.Errorf("unknown panic: %v", x)
					}
					handleError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}
