package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Addr     string `env:"API_ADDR"  envDefault:"127.0.0.1:8080"` // ":8080" inside Docker
	LogDir   string `env:"LOG_DIR"   envDefault:"logs"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage: DATABASE_URL wins, then SQLITE_PATH, else in-memory.
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"`

	// Chat sinks; each is optional.
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB"         envDefault:"0"`
	RedisChannel   string `env:"REDIS_CHANNEL"    envDefault:"deusexludus:chat"`
	ChatWebhookURL string `env:"CHAT_WEBHOOK_URL"`

	PublicAPIKeys  []string `env:"PUBLIC_API_KEYS" envSeparator:","`
	AdminAPIKeys   []string `env:"ADMIN_API_KEYS"  envSeparator:","`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	PublicRPM   int `env:"PUBLIC_RPM"   envDefault:"60"`
	PublicBurst int `env:"PUBLIC_BURST" envDefault:"10"`
	AdminRPM    int `env:"ADMIN_RPM"    envDefault:"600"`
	AdminBurst  int `env:"ADMIN_BURST"  envDefault:"50"`

	DefaultLocale       string `env:"DEFAULT_LOCALE"        envDefault:"en"`
	DefaultTargetNumber int    `env:"DEFAULT_TARGET_NUMBER" envDefault:"50"`
	MissingSkillPolicy  string `env:"MISSING_SKILL_POLICY"  envDefault:"warn"`

	// DiceSeed fixes the d100 sequence; 0 seeds from crypto/rand.
	DiceSeed int64 `env:"DICE_SEED"`
}

// FromEnv parses and validates the environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.PublicAPIKeys = trimCSV(cfg.PublicAPIKeys)
	cfg.AdminAPIKeys = trimCSV(cfg.AdminAPIKeys)
	cfg.AllowedOrigins = trimCSV(cfg.AllowedOrigins)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("API_ADDR must not be empty"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.DefaultTargetNumber < 0 || c.DefaultTargetNumber > 100 {
		errs = append(errs, fmt.Errorf("DEFAULT_TARGET_NUMBER must be between 0 and 100, got %d", c.DefaultTargetNumber))
	}
	switch strings.ToLower(strings.TrimSpace(c.MissingSkillPolicy)) {
	case "warn", "default":
	default:
		errs = append(errs, fmt.Errorf("MISSING_SKILL_POLICY must be warn or default, got %q", c.MissingSkillPolicy))
	}
	if c.RedisDB < 0 {
		errs = append(errs, errors.New("REDIS_DB must not be negative"))
	}
	for name, v := range map[string]int{
		"PUBLIC_RPM": c.PublicRPM, "PUBLIC_BURST": c.PublicBurst,
		"ADMIN_RPM": c.AdminRPM, "ADMIN_BURST": c.AdminBurst,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	return errors.Join(errs...)
}

// trimCSV drops blank entries from a comma-split list.
func trimCSV(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
