package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSessionTTL   = 7 * 24 * time.Hour
	DefaultVerifyOTPTTL = 24 * time.Hour
	// DefaultResetOTPTTL сохраняет арифметику прода: 15 * 60 * 10000 мс = 150000 секунд.
	// Похоже на опечатку (вместо 15 минут), но поведение фиксируем конфигом, не кодом.
	DefaultResetOTPTTL = 15 * 60 * 10000 * time.Millisecond
)

// Duration — time.Duration с парсингом "24h"/"15m" из yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type AuthConfig struct {
	JWTSecret    string   `yaml:"jwt_secret"`
	Environment  string   `yaml:"environment"` // "development" | "production"
	SessionTTL   Duration `yaml:"session_ttl"`
	VerifyOTPTTL Duration `yaml:"verify_otp_ttl"`
	ResetOTPTTL  Duration `yaml:"reset_otp_ttl"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth AuthConfig `yaml:"auth"`
}

func LoadConfig() *Config {
	// .env не обязателен; секреты могут прийти из окружения напрямую
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	cfg.ApplyDefaults()
	cfg.ApplyEnv()
	return &cfg
}

func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Auth.Environment == "" {
		c.Auth.Environment = "development"
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = Duration(DefaultSessionTTL)
	}
	if c.Auth.VerifyOTPTTL == 0 {
		c.Auth.VerifyOTPTTL = Duration(DefaultVerifyOTPTTL)
	}
	if c.Auth.ResetOTPTTL == 0 {
		c.Auth.ResetOTPTTL = Duration(DefaultResetOTPTTL)
	}
}

// ApplyEnv — секреты из окружения важнее yaml.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Auth.Environment = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		c.Email.SMTPUser = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		c.Email.SMTPPassword = v
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		c.Email.FromEmail = v
	}
}

func (c *Config) IsProduction() bool {
	return c.Auth.Environment == "production"
}
