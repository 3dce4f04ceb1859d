package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/e-taalim/quizbot/config"
	"github.com/e-taalim/quizbot/internal/engine"
	"github.com/e-taalim/quizbot/internal/httpapi"
	"github.com/e-taalim/quizbot/internal/report"
	"github.com/e-taalim/quizbot/internal/session"
	"github.com/e-taalim/quizbot/internal/store"
	"github.com/e-taalim/quizbot/internal/telegram"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := log.New(os.Stdout, "[quizbot] ", log.LstdFlags)

	st, err := newStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	opts := engine.Options{
		QuizSize:    cfg.Quiz.Questions,
		AnswerPause: cfg.AnswerDelay(),
	}
	if cfg.Report.Enabled {
		gen, err := report.NewGenerator(cfg.Report.Dir, cfg.Report.FontDir)
		if err != nil {
			log.Fatalf("init reports: %v", err)
		}
		opts.Report = gen.Generate
	}
	eng := engine.New(st, session.NewMemoryTable(), logger, opts)

	bot, err := telegram.New(cfg, eng, logger)
	if err != nil {
		log.Fatalf("start bot: %v", err)
	}

	if cfg.Server.Enabled {
		api := httpapi.New(st, logger)
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		go func() {
			logger.Printf("http api listening on %s", addr)
			if err := http.ListenAndServe(addr, api.Handler()); err != nil {
				logger.Printf("http api stopped: %v", err)
			}
		}()
	}

	logger.Printf("bot starting in %s mode, %s storage", cfg.TelegramBot.Mode, cfg.Storage.Type)
	bot.Start()
}

// newStore picks the record store backend by configuration.
func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Storage.Type == "postgres" {
		return store.NewPGStore(context.Background(), cfg.DSN())
	}
	return store.NewJSONStore(cfg.Storage.Dir)
}
