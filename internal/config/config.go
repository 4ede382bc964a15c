package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AdminAPI  APIConfig
	TenantAPI APIConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	App       AppConfig
}

type APIConfig struct {
	Port      string
	JWTSecret string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	ExpirationHours int
}

type AppConfig struct {
	Env     string
	GinMode string
}

func Load() *Config {
	// .env optionnel : en production les variables viennent de l'environnement
	_ = godotenv.Load()

	return &Config{
		AdminAPI: APIConfig{
			Port:      getEnv("ADMIN_API_PORT", "8080"),
			JWTSecret: getEnv("ADMIN_JWT_SECRET", "admin-super-secret-jwt-key-change-in-production"),
		},
		TenantAPI: APIConfig{
			Port:      getEnv("TENANT_API_PORT", "8081"),
			JWTSecret: getEnv("TENANT_JWT_SECRET", "tenant-super-secret-jwt-key-change-in-production"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "locagest"),
			Password: getEnv("POSTGRES_PASSWORD", "locagest_password"),
			DBName:   getEnv("POSTGRES_DB", "locagest"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		App: AppConfig{
			Env:     getEnv("APP_ENV", "development"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
