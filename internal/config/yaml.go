package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Server   ServerConfig   `yaml:"server"`
	Email    EmailConfig    `yaml:"email"`
	Security SecurityConfig `yaml:"security"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Expiry string `yaml:"expiry"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	Host        string   `yaml:"host"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type EmailConfig struct {
	ResendAPIKey     string `yaml:"resend_api_key"`
	MailerSendAPIKey string `yaml:"mailersend_api_key"`
	FromEmail        string `yaml:"from_email"`
	FromName         string `yaml:"from_name"`
	OTPExpiryMinutes int    `yaml:"otp_expiry_minutes"`
}

type SecurityConfig struct {
	BCryptCost int `yaml:"bcrypt_cost"`
}

var AppConfig *Config

func LoadConfig() error {
	// Try to find config file in different locations
	configPaths := []string{
		"secret/app.yaml",
		"app.yaml",
		"config/app.yaml",
		"./app.yaml",
	}

	var configPath string
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			configPath = path
			break
		}
	}

	if configPath == "" {
		return fmt.Errorf("config file not found in any of the expected locations: %v", configPaths)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", configPath, err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %v", err)
	}

	setDefaults(config)

	AppConfig = config
	return nil
}

func setDefaults(config *Config) {
	// Database defaults
	if config.Database.Host == "" {
		config.Database.Host = GetEnv("DB_HOST", "localhost")
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.User == "" {
		config.Database.User = GetEnv("DB_USER", "tontine_user")
	}
	if config.Database.Password == "" {
		config.Database.Password = GetEnv("DB_PASSWORD", "tontine_password")
	}
	if config.Database.Name == "" {
		config.Database.Name = GetEnv("DB_NAME", "tontine_db")
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = GetEnv("DB_SSLMODE", "disable")
	}

	// JWT defaults
	if config.JWT.Secret == "" {
		config.JWT.Secret = GetEnv("JWT_SECRET", "ma-tontine-dev-secret-change-in-production")
	}
	if config.JWT.Expiry == "" {
		config.JWT.Expiry = "24h"
	}

	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = 3000
	}
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if len(config.Server.CORSOrigins) == 0 {
		origins := []string{"http://localhost:5173"}
		if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
			origins = append(origins, frontend)
		}
		config.Server.CORSOrigins = origins
	}

	// Email defaults
	if config.Email.ResendAPIKey == "" {
		config.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	}
	if config.Email.MailerSendAPIKey == "" {
		config.Email.MailerSendAPIKey = os.Getenv("MAILERSEND_API_KEY")
	}
	if config.Email.FromEmail == "" {
		config.Email.FromEmail = GetEnv("EMAIL_FROM", "noreply@matontine.com")
	}
	if config.Email.FromName == "" {
		config.Email.FromName = "Ma Tontine"
	}
	if config.Email.OTPExpiryMinutes == 0 {
		config.Email.OTPExpiryMinutes = 5
	}

	// Security defaults
	if config.Security.BCryptCost == 0 {
		config.Security.BCryptCost = 12
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		config := &Config{}
		setDefaults(config)
		AppConfig = config
	}
	return AppConfig
}

// GetEnv reads an environment variable with a fallback default
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
