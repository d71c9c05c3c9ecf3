package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Optional integrations (Redis, RabbitMQ, SMTP) have
// their own loaders or read the environment directly and degrade gracefully
// when unset; everything here is required for the API to run at all.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign JWTs
	TokenTTLDays  int    // login token time-to-live in days
	BcryptCost    int    // bcrypt cost for password hashing
	PublicBaseURL string // base URL embedded in public share links
	EmailHost     string // SMTP server host
	EmailPort     string // SMTP server port ("465" enables implicit TLS)
	EmailUser     string // SMTP username, also the From address
	EmailPassword string // SMTP password
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. SMTP settings are optional:
// when EMAIL_HOST is empty the invitation consumer only writes its audit log.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		TokenTTLDays:  envIntDefault("TOKEN_TTL_DAYS", 7),
		BcryptCost:    envIntDefault("BCRYPT_COST", 10),
		PublicBaseURL: must("PUBLIC_BASE_URL"),
		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     os.Getenv("EMAIL_PORT"),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envIntDefault reads an integer environment variable, falling back to def
// when unset and exiting when the value is present but not a number.
func envIntDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
