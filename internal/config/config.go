package config

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string        `env:"ADDR" validate:"required"`
	DBPath        string        `env:"DB_PATH" validate:"required"`
	LogLevel      string        `env:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	LogFormat     string        `env:"LOG_FORMAT" validate:"oneof=console json"`
	DefaultUserID int64         `env:"DEFAULT_USER_ID" validate:"gt=0"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" validate:"dive,required"`
	APIURL        string        `env:"API_URL" validate:"required,url"`
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT" validate:"gt=0"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:          envOr("ADDR", ":5000"),
		DBPath:        envOr("DB_PATH", "file:flashquiz.db"),
		LogLevel:      strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:     strings.ToLower(envOr("LOG_FORMAT", "console")),
		DefaultUserID: int64(envIntOr("DEFAULT_USER_ID", 1)),
		CORSOrigins:   envListOr("CORS_ORIGINS", []string{"http://localhost:3000"}),
		APIURL:        envOr("API_URL", "http://localhost:5000/api"),
		ClientTimeout: envDurationOr("CLIENT_TIMEOUT", 15*time.Second),
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
}

// Validate checks every field and reports all problems in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s cannot be empty", fe.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
