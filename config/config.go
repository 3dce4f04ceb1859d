// Package config loads the bot configuration from an optional YAML file,
// with .env/environment overrides for secrets and deployment knobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token        string `yaml:"token"`
		Mode         string `yaml:"mode"`         // "polling" or "webhook"
		WebhookURL   string `yaml:"webhook_url"`  // public URL, webhook mode only
		ListenAddr   string `yaml:"listen_addr"`  // webhook listen address
		PollInterval int    `yaml:"poll_interval"` // long-poll timeout, seconds
		Debug        bool   `yaml:"debug"`
	} `yaml:"telegram_bot"`
	Storage struct {
		Type string `yaml:"type"` // "json" or "postgres"
		Dir  string `yaml:"dir"`  // data directory for the json backend and images
	} `yaml:"storage"`
	Database struct {
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Quiz struct {
		Questions   int `yaml:"questions"`    // questions per quiz
		AnswerDelay int `yaml:"answer_delay"` // seconds between feedback and next question
	} `yaml:"quiz"`
	Report struct {
		Enabled bool   `yaml:"enabled"`
		FontDir string `yaml:"font_dir"`
		Dir     string `yaml:"dir"`
	} `yaml:"report"`
}

// Load reads the YAML file at path (missing file is fine, env-only setups
// are supported), applies environment overrides and defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramBot.Token = v
	}
	if v := os.Getenv("BOT_MODE"); v != "" {
		cfg.TelegramBot.Mode = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.TelegramBot.WebhookURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.TelegramBot.ListenAddr = v
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TelegramBot.PollInterval = n
		}
	}
	if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		cfg.TelegramBot.Debug = true
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("QUIZ_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Quiz.Questions = n
		}
	}

	cfg.applyDefaults()

	if cfg.TelegramBot.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TelegramBot.Mode == "" {
		c.TelegramBot.Mode = "polling"
	}
	if c.TelegramBot.ListenAddr == "" {
		c.TelegramBot.ListenAddr = ":8443"
	}
	if c.TelegramBot.PollInterval <= 0 {
		c.TelegramBot.PollInterval = 2
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "json"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "data"
	}
	if c.Quiz.Questions <= 0 {
		c.Quiz.Questions = 5
	}
	if c.Quiz.AnswerDelay < 0 {
		c.Quiz.AnswerDelay = 0
	} else if c.Quiz.AnswerDelay == 0 {
		c.Quiz.AnswerDelay = 1
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Report.FontDir == "" {
		c.Report.FontDir = "fonts"
	}
	if c.Report.Dir == "" {
		c.Report.Dir = "reports"
	}
}

// PollInterval returns the long-poll timeout as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.TelegramBot.PollInterval) * time.Second
}

// AnswerDelay returns the inter-question pause as a duration.
func (c *Config) AnswerDelay() time.Duration {
	return time.Duration(c.Quiz.AnswerDelay) * time.Second
}

// DSN builds the postgres connection string, preferring an explicit URL.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}
