package telegram

import (
	"encoding/json"
	"errors"
	"log"

	"gopkg.in/telebot.v4"
)

// Logger dumps every inbound update as indented JSON. Debug mode only.
func Logger(l *log.Logger) telebot.MiddlewareFunc {
	if l == nil {
		l = log.Default()
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			data, _ := json.MarshalIndent(c.Update(), "", "  ")
			l.Println(string(data))
			return next(c)
		}
	}
}

// AutoRespond answers every callback query so Telegram stops showing the
// client-side spinner, whatever the handler does with it.
func AutoRespond() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Callback() != nil {
				defer func() { _ = c.Respond() }()
			}
			return next(c)
		}
	}
}

// Recover converts a panicking handler into a logged error, so a single
// malformed update cannot crash the process.
func Recover(l *log.Logger) telebot.MiddlewareFunc {
	if l == nil {
		l = log.Default()
	}
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = errors.New("unknown panic")
					}
					l.Printf("recovered from panic: %v", err)
				}
			}()
			return next(c)
		}
	}
}
