package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port               string `validate:"required,numeric"`
	Debug              bool
	CatalogPath        string   `validate:"required"`
	StaticDir          string   `validate:"required"`
	TemplateDir        string   `validate:"required"`
	SessionSecret      string   `validate:"omitempty,min=16"`
	AllowedOrigins     []string `validate:"min=1,dive,url"`
	LogLevel           string   `validate:"oneof=debug info warn error"`
	UploadRateLimit    int      `validate:"gte=0"`
	MaxMultipartMemory int64    `validate:"gt=0"`
}

// LoadEnv loads .env from the working directory. A missing file is fine;
// in deployment the variables are set directly.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        GetEnv("PORT", "8080"),
		Debug:       getBool("DEBUG", false),
		CatalogPath: GetEnv("CATALOG_PATH", "static/data.json"),
		StaticDir:   GetEnv("STATIC_DIR", "static"),
		TemplateDir: GetEnv("TEMPLATE_DIR", "templates"),
		// Not defaulted: an empty secret in debug mode means an ephemeral key.
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		AllowedOrigins:  splitList(GetEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:        strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		UploadRateLimit: getInt("UPLOAD_RATE_LIMIT", 0),
	}
	cfg.MaxMultipartMemory = int64(getInt("MAX_MULTIPART_MEMORY_MB", 10)) << 20

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", describe(err))
	}

	if cfg.SessionSecret == "" {
		if !cfg.Debug {
			return nil, fmt.Errorf("invalid configuration: SESSION_SECRET is required")
		}
		log.Println("WARNING: SESSION_SECRET not set - using an ephemeral key, sessions will not survive a restart")
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// describe turns validator errors into messages naming the environment variable.
func describe(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var messages []string
	for _, fe := range validationErrors {
		name := envName(fe.StructField())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", name))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s long", name, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", name, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", name))
		}
	}
	return strings.Join(messages, "; ")
}

var envNames = map[string]string{
	"Port":               "PORT",
	"CatalogPath":        "CATALOG_PATH",
	"StaticDir":          "STATIC_DIR",
	"TemplateDir":        "TEMPLATE_DIR",
	"SessionSecret":      "SESSION_SECRET",
	"AllowedOrigins":     "ALLOWED_ORIGINS",
	"LogLevel":           "LOG_LEVEL",
	"UploadRateLimit":    "UPLOAD_RATE_LIMIT",
	"MaxMultipartMemory": "MAX_MULTIPART_MEMORY_MB",
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}
