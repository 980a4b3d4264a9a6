package poller

import (
	"github.com/IT-Nick/tutorbot/internal/infra/config"
	tele "gopkg.in/telebot.v4"
)

// NewPoller создаёт Poller в зависимости от режима: вебхук или long polling
func NewPoller(cfg *config.Config) tele.Poller {
	if cfg.TelegramBot.Mode == "webhook" {
		return &tele.Webhook{
			Listen: cfg.TelegramBot.ListenAddr,
			Endpoint: &tele.WebhookEndpoint{
				PublicURL: cfg.TelegramBot.WebhookURL,
			},
		}
	}
	return &tele.LongPoller{Timeout: cfg.TelegramBot.PollTimeout}
}
