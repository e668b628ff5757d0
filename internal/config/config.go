package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Captcha  CaptchaConfig
	RabbitMQ RabbitMQConfig
	Admin    AdminConfig
	Mail     MailConfig
	Env      string
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI    string
	DBName string
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

type CaptchaConfig struct {
	Secret    string
	VerifyURL string
}

type RabbitMQConfig struct {
	User string
	Pass string
	Host string
	Port string
}

// AdminConfig holds the bootstrap credentials used when zero admin accounts
// exist. Auto-provisioning on first login is a known hazard kept for parity
// with the deployed behavior; rotate these immediately in production.
type AdminConfig struct {
	BootstrapEmail    string
	BootstrapPassword string
}

// MailConfig is the env fallback for the Settings singleton.
type MailConfig struct {
	FromEmail  string
	AdminEmail string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName: getEnv("MONGO_DB", "tutorhive"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-default-secret-key"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("MAIL_HOST", "localhost"),
			Port:     getEnvInt("MAIL_PORT", 587),
			User:     getEnv("MAIL_USER", ""),
			Password: getEnv("MAIL_PASS", ""),
		},
		Captcha: CaptchaConfig{
			Secret:    getEnv("RECAPTCHA_SECRET", ""),
			VerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		},
		RabbitMQ: RabbitMQConfig{
			User: getEnv("RABBITMQ_USER", "guest"),
			Pass: getEnv("RABBITMQ_PASS", "guest"),
			Host: getEnv("RABBITMQ_HOST", "localhost"),
			Port: getEnv("RABBITMQ_PORT", "5672"),
		},
		Admin: AdminConfig{
			BootstrapEmail:    getEnv("ADMIN_BOOTSTRAP_EMAIL", "admin@tutorhive.in"),
			BootstrapPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", "admin123"),
		},
		Mail: MailConfig{
			FromEmail:  getEnv("MAIL_FROM", "no-reply@tutorhive.in"),
			AdminEmail: getEnv("MAIL_ADMIN", "leads@tutorhive.in"),
		},
		Env: getEnv("ENVIRONMENT", "development"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n := 0
	for _, c := range value {
		if c < '0' || c > '9' {
			return defaultValue
		}
		n = n*10 + int(c-'0')
	}
	return n
}
