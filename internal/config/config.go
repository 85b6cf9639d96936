package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	Rows          int
	Cols          int
	Level         int
	MoveDelay     time.Duration
	RestartDelay  time.Duration
	LogFile       string
	KafkaBrokers  []string
	KafkaTopic    string
	KafkaGroup    string
	StatsInterval time.Duration
}

// LoadDotEnv reads .env from the working directory or its parent. A missing
// file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("no .env file found")
		}
	}
}

func Load() (Config, error) {
	// PORT is what most hosting platforms set.
	addr := GetEnv("ADDR", ":8080")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	cfg := Config{
		Addr:          addr,
		Rows:          GetEnvAsInt("ROWS", 6),
		Cols:          GetEnvAsInt("COLS", 7),
		Level:         GetEnvAsInt("LEVEL", 8),
		MoveDelay:     GetEnvAsDuration("MOVE_DELAY", time.Second),
		RestartDelay:  GetEnvAsDuration("RESTART_DELAY", 3*time.Second),
		LogFile:       GetEnv("LOG_FILE", "log.txt"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    GetEnv("KAFKA_TOPIC", "game-events"),
		KafkaGroup:    GetEnv("KAFKA_GROUP", "analytics-consumer"),
		StatsInterval: GetEnvAsDuration("STATS_INTERVAL", 30*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.MoveDelay < 0 || c.RestartDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("stats interval must be positive, got %s", c.StatsInterval)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts whole seconds ("3") or a Go duration ("750ms").
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	log.Printf("invalid duration for %s: %s, using default: %s", key, valueStr, defaultValue)
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
