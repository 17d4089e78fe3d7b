// internal/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret indica JWT_SECRET vazia; só o servidor HTTP precisa dela.
var ErrMissingJWTSecret = errors.New("JWT_SECRET não definida")

// Config reúne as variáveis de ambiente da API.
type Config struct {
	Port        string
	APIPrefix   string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	AutoMigrate bool

	// região padrão para interpretar telefones sem DDI
	PhoneRegion string

	DB DBConfig
}

// DBConfig descreve a conexão com o postgres.
type DBConfig struct {
	Host       string
	Port       uint
	Name       string
	Username   string
	Password   string
	SecretID   string
	SSLDisable bool
}

// Load lê o .env (se existir) e o ambiente.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		APIPrefix:   getEnv("API_PREFIX", "/api"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    time.Duration(intFromEnv("TOKEN_TTL_HOURS", 24)) * time.Hour,
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		AutoMigrate: boolFromEnv("AUTO_MIGRATE", true),
		PhoneRegion: strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "US")),
		DB: DBConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       uint(intFromEnv("DB_PORT", 5432)),
			Name:       getEnv("DB_NAME", "crm_db"),
			Username:   os.Getenv("DB_USERNAME"),
			Password:   os.Getenv("DB_PASSWORD"),
			SecretID:   os.Getenv("DB_SECRET_ID"),
			SSLDisable: os.Getenv("DB_SSL_MODE_DISABLE") == "true",
		},
	}

	if cfg.TokenTTL <= 0 {
		return cfg, errors.New("TOKEN_TTL_HOURS deve ser positivo")
	}
	if cfg.JWTSecret == "" {
		return cfg, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolFromEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
