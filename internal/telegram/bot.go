// Package telegram binds the engine to Telegram via telebot. It owns
// everything transport-specific: handler registration, inline keyboards,
// photo download and reply delivery.
package telegram

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/telebot.v4"

	"github.com/e-taalim/quizbot/config"
	"github.com/e-taalim/quizbot/internal/engine"
	"github.com/e-taalim/quizbot/internal/messages"
)

type Bot struct {
	tb       *telebot.Bot
	eng      *engine.Engine
	log      *log.Logger
	photoDir string
}

func New(cfg *config.Config, eng *engine.Engine, logger *log.Logger) (*Bot, error) {
	photoDir := filepath.Join(cfg.Storage.Dir, "questions")
	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}

	b := &Bot{eng: eng, log: logger, photoDir: photoDir}

	settings := telebot.Settings{
		Token:  cfg.TelegramBot.Token,
		Poller: newPoller(cfg),
		OnError: func(err error, c telebot.Context) {
			// Last line of defense: one user's bad input must never
			// take the process down or go unnoticed.
			logger.Printf("handler error: %v (update: %+v)", err, c.Update())
			if c.Sender() != nil {
				_ = c.Send(messages.GenericFailure)
			}
		},
	}
	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	b.tb = tb

	if cfg.TelegramBot.Debug {
		tb.Use(Logger(logger))
	}
	tb.Use(AutoRespond(), Recover(logger))

	b.register()
	return b, nil
}

func (b *Bot) Start() {
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

func (b *Bot) register() {
	b.tb.Handle("/start", b.command)
	b.tb.Handle("/help", b.command)
	b.tb.Handle(telebot.OnText, b.text)
	b.tb.Handle(telebot.OnPhoto, b.photo)
	b.tb.Handle(telebot.OnCallback, b.callback)
}

func (b *Bot) command(c telebot.Context) error {
	ev := b.event(c, engine.Command)
	ev.Text = c.Message().Text
	return b.deliver(c, b.eng.Handle(context.Background(), ev))
}

func (b *Bot) text(c telebot.Context) error {
	ev := b.event(c, engine.TextMessage)
	ev.Text = c.Text()
	return b.deliver(c, b.eng.Handle(context.Background(), ev))
}

func (b *Bot) callback(c telebot.Context) error {
	data := strings.TrimSpace(c.Callback().Data)
	data = strings.TrimPrefix(data, "\f")
	ev := b.event(c, engine.ButtonPress)
	ev.Data = data
	return b.deliver(c, b.eng.Handle(context.Background(), ev))
}

// photo downloads the image before handing the event to the engine; the
// stored path is unique per uploading user and message.
func (b *Bot) photo(c telebot.Context) error {
	m := c.Message()
	if m == nil || m.Photo == nil {
		return nil
	}
	path := filepath.Join(b.photoDir, fmt.Sprintf("%d_%d.jpg", c.Sender().ID, m.ID))
	if err := b.tb.Download(&m.Photo.File, path); err != nil {
		b.log.Printf("photo download failed for %d: %v", c.Sender().ID, err)
		return c.Send(messages.GenericFailure)
	}
	ev := b.event(c, engine.PhotoMessage)
	ev.PhotoRef = path
	return b.deliver(c, b.eng.Handle(context.Background(), ev))
}

func (b *Bot) event(c telebot.Context, kind engine.EventKind) engine.Event {
	sender := c.Sender()
	return engine.Event{
		UserID:    sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		Kind:      kind,
	}
}

// deliver sends the engine's replies in order, honoring pauses and
// degrading image replies to text when the referenced file is gone.
func (b *Bot) deliver(c telebot.Context, replies []engine.Reply) error {
	for _, r := range replies {
		if r.Pause > 0 {
			time.Sleep(r.Pause)
		}
		if err := b.send(c, r); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) send(c telebot.Context, r engine.Reply) error {
	if r.Attachment != "" {
		doc := &telebot.Document{
			File:     telebot.FromDisk(r.Attachment),
			FileName: filepath.Base(r.Attachment),
		}
		return c.Send(doc)
	}

	var markup *telebot.ReplyMarkup
	if len(r.Buttons) > 0 {
		markup = &telebot.ReplyMarkup{InlineKeyboard: keyboard(r.Buttons)}
	}

	if r.ImageRef != "" {
		if _, err := os.Stat(r.ImageRef); err == nil {
			photo := &telebot.Photo{File: telebot.FromDisk(r.ImageRef), Caption: r.Text}
			if markup != nil {
				return c.Send(photo, markup)
			}
			return c.Send(photo)
		}
		// Image gone or unreadable: fall back to text-only.
		b.log.Printf("question image %s unreadable, sending text only", r.ImageRef)
	}

	if r.Text == "" {
		return nil
	}
	if markup != nil {
		return c.Send(r.Text, markup)
	}
	return c.Send(r.Text)
}

// keyboard maps engine buttons onto inline buttons. The payload rides in
// Data with no telebot "unique" prefix, so every press lands in the
// OnCallback handler with the payload verbatim.
func keyboard(rows [][]engine.Button) [][]telebot.InlineButton {
	out := make([][]telebot.InlineButton, 0, len(rows))
	for _, row := range rows {
		var line []telebot.InlineButton
		for _, btn := range row {
			line = append(line, telebot.InlineButton{Text: btn.Label, Data: btn.Data})
		}
		out = append(out, line)
	}
	return out
}
