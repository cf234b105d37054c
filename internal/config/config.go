package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the client reads from the environment. A .env
// file in the working directory is honored when present.
type Config struct {
	// APIBaseURL is the storefront backend, e.g. http://localhost:5000/api.
	APIBaseURL string
	// RequestTimeout bounds every API call so a hung request cannot
	// wedge the checkout flow.
	RequestTimeout time.Duration
	// ConfirmDelay is how long the order-confirmed screen stays up
	// before returning to the restaurant list.
	ConfirmDelay time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:     getEnv("TIFFIN_API_URL", "http://localhost:5000/api"),
		RequestTimeout: time.Duration(getEnvInt("TIFFIN_TIMEOUT", 10)) * time.Second,
		ConfirmDelay:   time.Duration(getEnvInt("TIFFIN_CONFIRM_SECONDS", 3)) * time.Second,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
