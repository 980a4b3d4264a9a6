package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultExamTopics - темы устного зачета, если в конфиге они не заданы
var DefaultExamTopics = []string{
	"Алканы", "Алкены", "Алкины", "Арены", "Спирты", "Фенол",
	"Альдегиды и кетоны", "Карбоновые кислоты и эфиры", "Амины",
	"Аминокислоты и белки", "Углеводы", "Применение орг веществ",
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token       string        `yaml:"token"`
		Mode        string        `yaml:"mode"` // polling | webhook
		WebhookURL  string        `yaml:"webhook_url"`
		ListenAddr  string        `yaml:"listen_addr"`
		PollTimeout time.Duration `yaml:"poll_timeout"`
		Debug       bool          `yaml:"debug"`
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Lectures struct {
		DBPath       string `yaml:"db_path"`
		TextbooksDir string `yaml:"textbooks_dir"`
	} `yaml:"lectures"`
	OpenAI struct {
		APIKey             string  `yaml:"api_key"`
		BaseURL            string  `yaml:"base_url"`
		ChatModel          string  `yaml:"chat_model"`
		TranscriptionModel string  `yaml:"transcription_model"`
		RequestsPerSecond  float64 `yaml:"requests_per_second"`
		RetryAttempts      int     `yaml:"retry_attempts"`
	} `yaml:"openai"`
	Session struct {
		StorageType string `yaml:"storage_type"` // memory | json
		File        string `yaml:"file"`
	} `yaml:"session"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	ExamTopics []string `yaml:"exam_topics"`
	Audio      struct {
		SegmentSeconds int    `yaml:"segment_seconds"`
		TempDir        string `yaml:"temp_dir"`
	} `yaml:"audio"`
}

// LoadConfig читает yaml-файл, затем накладывает переменные окружения
// (в том числе из .env, если он есть) и значения по умолчанию
func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, err)
	}

	_ = godotenv.Load()
	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	setString(&c.TelegramBot.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.TelegramBot.Mode, "BOT_MODE")
	setString(&c.TelegramBot.WebhookURL, "WEBHOOK_URL")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Host, "DB_HOST")

	if v := os.Getenv("DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.TelegramBot.Debug = debug
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.Host, "0.0.0.0")
	setDefault(&c.Server.Port, "8080")
	setDefault(&c.TelegramBot.Mode, "polling")
	setDefault(&c.TelegramBot.ListenAddr, ":8443")
	if c.TelegramBot.PollTimeout <= 0 {
		c.TelegramBot.PollTimeout = 10 * time.Second
	}
	setDefault(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, "5432")
	setDefault(&c.Lectures.DBPath, "data/lectures.db")
	setDefault(&c.Lectures.TextbooksDir, "data/textbooks")
	setDefault(&c.OpenAI.ChatModel, "gpt-4o")
	setDefault(&c.OpenAI.TranscriptionModel, "whisper-1")
	if c.OpenAI.RequestsPerSecond <= 0 {
		c.OpenAI.RequestsPerSecond = 2
	}
	if c.OpenAI.RetryAttempts <= 0 {
		c.OpenAI.RetryAttempts = 3
	}
	setDefault(&c.Session.StorageType, "memory")
	setDefault(&c.Session.File, "data/sessions.json")
	setDefault(&c.Log.Level, "info")
	setDefault(&c.Log.File, "logs/tutorbot.log")
	if c.Audio.SegmentSeconds <= 0 {
		c.Audio.SegmentSeconds = 60
	}
	setDefault(&c.Audio.TempDir, os.TempDir())
	if len(c.ExamTopics) == 0 {
		c.ExamTopics = DefaultExamTopics
	}
}

func setDefault(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error
	if c.TelegramBot.Token == "" {
		errs = append(errs, errors.New("telegram_bot.token (TELEGRAM_BOT_TOKEN) is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	switch c.TelegramBot.Mode {
	case "polling":
	case "webhook":
		if c.TelegramBot.WebhookURL == "" {
			errs = append(errs, errors.New("telegram_bot.webhook_url is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown telegram_bot.mode %q", c.TelegramBot.Mode))
	}
	switch c.Session.StorageType {
	case "memory", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown session.storage_type %q", c.Session.StorageType))
	}
	return errors.Join(errs...)
}

// DSN - строка подключения к Postgres
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// HTTPAddr - адрес HTTP-сервера метрик и отчетов
func (c *Config) HTTPAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
