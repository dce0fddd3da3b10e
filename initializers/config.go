package initializers

import (
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds everything the server reads from the environment. It is
// populated once in main and validated before anything connects.
type Config struct {
	Port           int
	DatabaseURL    string
	JWTSecret      string
	AllowedOrigins string
	RedisAddr      string
	RateLimitRPS   float64
	RateLimitBurst int
	AdminUsername  string
	AdminPassword  string
	AdminEmail     string
}

// LoadConfig reads the environment. Call godotenv.Load beforehand if a .env
// file should be honored.
func LoadConfig() Config {
	return Config{
		Port:           envInt("PORT", 8080),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
	}
}

// Validate rejects configurations the server cannot safely start with.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(32, 0)),
		validation.Field(&c.RateLimitRPS, validation.Min(0.01)),
		validation.Field(&c.RateLimitBurst, validation.Min(1)),
	)
}

func envInt(key string, def int) int {
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

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
