package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Optional sub-configurations (cache, rate limit,
// queue) are loaded by their own Load* functions so they can be tested in
// isolation.
type Config struct {
	Env            string         // application environment (e.g. "dev", "prod")
	Port           string         // HTTP port to listen on
	LogLevel       string         // echo logger level (debug, info, warn, error, off)
	DBUser         string         // database username
	DBPass         string         // database password (optional)
	DBHost         string         // database host address
	DBPort         string         // database port number
	DBName         string         // database name
	Location       *time.Location // zone used to read show form times and display them
	AdminJWTSecret string         // when set, delete and edit submissions require an ADMIN token
	Cache          CacheConfig
	RateLimit      RateLimitConfig
	Queue          QueueConfig
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		Location:       mustLocation(envStr("APP_TIMEZONE", "UTC")),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		Cache:          LoadCacheConfig(),
		RateLimit:      LoadRateLimitConfig(),
		Queue:          LoadQueueConfig(),
	}
	cfg.RateLimit.TokenSecret = cfg.AdminJWTSecret
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", name, err)
	}
	return loc
}
