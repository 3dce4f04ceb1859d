package telegram

import (
	"gopkg.in/telebot.v4"

	"github.com/e-taalim/quizbot/config"
)

// newPoller picks the update source by mode: long polling by default, a
// webhook listener when configured.
func newPoller(cfg *config.Config) telebot.Poller {
	if cfg.TelegramBot.Mode == "webhook" {
		return &telebot.Webhook{
			Listen: cfg.TelegramBot.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.TelegramBot.WebhookURL,
			},
		}
	}
	return &telebot.LongPoller{Timeout: cfg.PollInterval()}
}
