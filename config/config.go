package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the report triage service
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port string

	// Auth configuration
	JWTSecret string

	// Classifier configuration
	ClassifierURL     string
	ClassifierAPIKey  string
	ClassifierTimeout time.Duration

	// RabbitMQ configuration. Empty URL disables publishing.
	AMQPURL          string
	AMQPExchange     string
	AMQPRoutingKey   string

	// Timezone used for the dashboard "reports filed today" bucket.
	StatsTimezone string
}

// Load loads configuration from environment variables
func Load() *Config {
	config := &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret"),
		DBName:     getEnv("DB_NAME", "roadreports"),

		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Auth defaults
		JWTSecret: getEnv("JWT_SECRET", ""),

		// Classifier defaults
		ClassifierURL:     getEnv("CLASSIFIER_URL", ""),
		ClassifierAPIKey:  getEnv("CLASSIFIER_API_KEY", ""),
		ClassifierTimeout: getDurationEnv("CLASSIFIER_TIMEOUT", 30*time.Second),

		// RabbitMQ defaults
		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "road_reports"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "report.submitted"),

		// Stats defaults
		StatsTimezone: getEnv("STATS_TIMEZONE", "Local"),
	}

	return config
}

// Timezone resolves the configured stats timezone, falling back to the
// system local zone when the name does not resolve.
func (c *Config) Timezone() *time.Location {
	if c.StatsTimezone == "" || c.StatsTimezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.StatsTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
