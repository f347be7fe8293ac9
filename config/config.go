package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally supplied setting. It is built once
// at startup and passed to the components that need it; nothing reads
// the environment after Load returns.
type Config struct {
	Env     string
	Server  ServerConfig
	Mongo   MongoConfig
	Session SessionConfig
	Email   EmailConfig
	SMS     SMSConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type EmailConfig struct {
	SendGridKey string
	Sender      string
	AdminEmail  string
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// Production reports whether the process serves real traffic. The OTP
// dev fallback is disabled whenever this is true.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Configured reports whether SMS delivery credentials are present.
func (s SMSConfig) Configured() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.From != ""
}

// Load reads configuration from the environment, consulting a .env
// file if one exists.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "vlady"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		},
		Email: EmailConfig{
			SendGridKey: os.Getenv("SENDGRID_API_KEY"),
			Sender:      getEnv("EMAIL_SENDER", "noreply@vlady.example"),
			AdminEmail:  getEnv("ADMIN_EMAIL", "admin@vlady.example"),
		},
		SMS: SMSConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_PHONE_NUMBER"),
		},
	}

	if cfg.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
