package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	OTPModeRedis       = "redis"
	OTPModePhoneSuffix = "phone-suffix"
)

type Config struct {
	AppName string `mapstructure:"APP_NAME"`
	Env     string `mapstructure:"ENV"`
	Port    string `mapstructure:"PORT"`

	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DbHost            string        `mapstructure:"DB_HOST"`
	DbPort            string        `mapstructure:"DB_PORT"`
	DbUser            string        `mapstructure:"DB_USER"`
	DbPassword        string        `mapstructure:"DB_PASSWORD"`
	DbName            string        `mapstructure:"DB_NAME"`
	DbSSLMode         string        `mapstructure:"DB_SSLMODE"`
	DbMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DbMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DbConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	AutoMigrate       bool          `mapstructure:"AUTO_MIGRATE"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	CORSOrigins   string `mapstructure:"CORS_ORIGINS"`
	AuthRateLimit int    `mapstructure:"AUTH_RATE_LIMIT"`

	OTPMode       string        `mapstructure:"OTP_MODE"`
	OTPTTL        time.Duration `mapstructure:"OTP_TTL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`
}

var defaults = map[string]interface{}{
	"APP_NAME":             "Shopkeeper API v1.0",
	"ENV":                  "development",
	"PORT":                 "3000",
	"DATABASE_URL":         "",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "",
	"DB_NAME":              "shopkeeper",
	"DB_SSLMODE":           "disable",
	"DB_MAX_IDLE_CONNS":    10,
	"DB_MAX_OPEN_CONNS":    100,
	"DB_CONN_MAX_LIFETIME": time.Hour,
	"AUTO_MIGRATE":         true,
	"JWT_SECRET":           "",
	"JWT_TTL":              365 * 24 * time.Hour,
	"LOG_LEVEL":            "info",
	"LOG_PRETTY":           false,
	"CORS_ORIGINS":         "*",
	"AUTH_RATE_LIMIT":      20,
	"OTP_MODE":             OTPModeRedis,
	"OTP_TTL":              5 * time.Minute,
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"KAFKA_BROKERS":        "",
	"KAFKA_TOPIC":          "shop-events",
}

// LoadEnvFiles reads envFiles (default .env) into the process environment. Variables
// already set are kept. A missing file is reported, callers decide whether it matters.
func LoadEnvFiles(envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// FromEnv resolves and validates the configuration from the environment using v.
func FromEnv(v *viper.Viper) (*Config, error) {
	cfg, err := Read(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read resolves the configuration from the environment without validating it.
func Read(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// JWTSecretOrDefault keeps development setups working without a secret.
func (c *Config) JWTSecretOrDefault() string {
	if c.JWTSecret == "" && c.IsDevelopment() {
		return "your-super-secret-key-change-in-production"
	}
	return c.JWTSecret
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("JWT_SECRET is required outside development")
	}
	switch c.OTPMode {
	case OTPModeRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when OTP_MODE=redis")
		}
	case OTPModePhoneSuffix:
		if !c.IsDevelopment() {
			return errors.New("OTP_MODE=phone-suffix is only allowed in development")
		}
	default:
		return fmt.Errorf("unknown OTP_MODE %q", c.OTPMode)
	}
	return nil
}

// DSN returns DATABASE_URL or a key/value DSN built from the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DbHost, c.DbUser, c.DbPassword, c.DbName, c.DbPort, c.DbSSLMode,
	)
}

// MigrationURL is the URL form golang-migrate expects.
func (c *Config) MigrationURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPassword, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode)
}

func (c *Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) CORSOriginList() string {
	return strings.ReplaceAll(c.CORSOrigins, " ", "")
}
