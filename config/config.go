package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string   `mapstructure:"database_url"`
	JWTSecretKey       string   `mapstructure:"jwt_secret_key"`
	ServerPort         int      `mapstructure:"server_port"`
	LogLevel           string   `mapstructure:"log_level"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	R2AccountID       string `mapstructure:"r2_account_id"`
	R2AccessKeyID     string `mapstructure:"r2_access_key_id"`
	R2SecretAccessKey string `mapstructure:"r2_secret_access_key"`
	R2BucketName      string `mapstructure:"r2_bucket_name"`
	R2PublicBaseURL   string `mapstructure:"r2_public_base_url"`

	// AssemblySeed - фиксированный seed для всех сборок (пусто = случайный).
	AssemblySeed string `mapstructure:"assembly_seed"`
}

var keys = []string{
	"database_url",
	"jwt_secret_key",
	"server_port",
	"log_level",
	"cors_allowed_origins",
	"r2_account_id",
	"r2_access_key_id",
	"r2_secret_access_key",
	"r2_bucket_name",
	"r2_public_base_url",
	"assembly_seed",
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Ошибку не считаем фатальной: .env есть только локально.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allowed_origins", []string{"*"})
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY environment variable is not set")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	r2 := []string{c.R2AccountID, c.R2AccessKeyID, c.R2SecretAccessKey, c.R2BucketName, c.R2PublicBaseURL}
	set := 0
	for _, s := range r2 {
		if s != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return errors.New("R2 configuration is incomplete: set all R2_* variables or none")
	}

	if _, err := c.FixedSeed(); err != nil {
		return err
	}
	return nil
}

// SlogLevel возвращает уровень логирования. Значение уже проверено в Validate.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

func (c *Config) R2Enabled() bool {
	return c.R2AccountID != ""
}

// FixedSeed returns the configured assembly seed, or nil when assemblies should be random.
func (c *Config) FixedSeed() (*int64, error) {
	raw := strings.TrimSpace(c.AssemblySeed)
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ASSEMBLY_SEED %q: %w", c.AssemblySeed, err)
	}
	return &seed, nil
}
