package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SinkMongo    = "mongo"
	SinkPostgres = "postgres"
)

type Config struct {
	AppURI         string
	AllowedOrigins string
	Debug          bool

	MongoURI    string
	MongoDB     string
	RedisURI    string
	SinkDriver  string
	PostgresURL string

	DefinitionPath string
	MappingPath    string
	SurveyID       int

	SessionTTL    time.Duration
	SubmitLockTTL time.Duration

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Enabled reports whether enough SMTP settings exist to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port != 0 && s.From != ""
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		AppURI:         withDefault(getenv("APP_URI"), "8888"),
		AllowedOrigins: withDefault(getenv("ALLOWED_ORIGINS"), "*"),
		MongoURI:       getenv("MONGO_URI"),
		MongoDB:        withDefault(getenv("MONGO_DB"), "RetreatDB"),
		RedisURI:       getenv("REDIS_URI"),
		SinkDriver:     strings.ToLower(withDefault(getenv("SINK_DRIVER"), SinkMongo)),
		PostgresURL:    getenv("POSTGRES_URL"),
		DefinitionPath: getenv("SURVEY_DEFINITION_PATH"),
		MappingPath:    getenv("QUESTION_MAPPING_PATH"),
		SMTP: SMTPConfig{
			Host: getenv("SMTP_HOST"),
			User: getenv("SMTP_USER"),
			Pass: getenv("SMTP_PASS"),
			From: getenv("SMTP_FROM"),
		},
	}

	var err error
	if cfg.Debug, err = parseBool(getenv("DEBUG")); err != nil {
		return cfg, fmt.Errorf("DEBUG: %w", err)
	}
	if cfg.SurveyID, err = parseInt(getenv("SURVEY_ID"), 1); err != nil {
		return cfg, fmt.Errorf("SURVEY_ID: %w", err)
	}
	if cfg.SMTP.Port, err = parseInt(getenv("SMTP_PORT"), 0); err != nil {
		return cfg, fmt.Errorf("SMTP_PORT: %w", err)
	}
	if cfg.SessionTTL, err = parseDuration(getenv("SESSION_TTL"), 30*24*time.Hour); err != nil {
		return cfg, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.SubmitLockTTL, err = parseDuration(getenv("SUBMIT_LOCK_TTL"), 30*time.Second); err != nil {
		return cfg, fmt.Errorf("SUBMIT_LOCK_TTL: %w", err)
	}

	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	switch cfg.SinkDriver {
	case SinkMongo:
		if cfg.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	case SinkPostgres:
		if cfg.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL environment variable not set")
		}
	default:
		return fmt.Errorf("unknown SINK_DRIVER %q (want %s or %s)", cfg.SinkDriver, SinkMongo, SinkPostgres)
	}
	if cfg.SurveyID <= 0 {
		return fmt.Errorf("SURVEY_ID must be positive")
	}
	return nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func parseInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
