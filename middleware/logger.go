package middleware

import (
	"github.com/IT-Nick/tutorbot/internal/infra/metrics"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое считает входящие обновления по виду
// и пишет их в лог на уровне debug
func Logger(log *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			kind := UpdateKind(c)
			metrics.Updates.WithLabelValues(kind).Inc()

			fields := []zap.Field{zap.Int("update_id", c.Update().ID), zap.String("kind", kind)}
			if s := c.Sender(); s != nil {
				fields = append(fields, zap.Int64("user_id", s.ID))
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("data", cb.Data))
			}
			log.Debug("update received", fields...)

			return next(c)
		}
	}
}

// UpdateKind - вид обновления для логов и метрик
func UpdateKind(c tele.Context) string {
	switch {
	case c.Callback() != nil:
		return "callback"
	case c.Message() != nil && c.Message().Voice != nil:
		return "voice"
	case c.Message() != nil && c.Message().Audio != nil:
		return "audio"
	case c.Message() != nil:
		return "message"
	}
	return "other"
}
