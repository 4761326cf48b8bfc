package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Env holds process-level service settings, populated from environment
// variables. Daemon behavior lives in Settings.
type Env struct {
	LogLevel        string
	LogFormat       string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	FetchTimeout    time.Duration

	// Kafka alert mirror. Disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Mapbox location labels. Disabled when MapboxToken is empty.
	MapboxToken   string
	MapboxTimeout time.Duration
}

// LoadEnv reads service settings from environment variables, applying defaults where unset.
func LoadEnv() (*Env, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	env := &Env{
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		ShutdownTimeout: shutdownTimeout,
		FetchTimeout:    fetchTimeout,
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-alerts"),
		MapboxToken:     os.Getenv("MAPBOX_TOKEN"),
		MapboxTimeout:   mapboxTimeout,
	}

	if len(env.KafkaBrokers) > 0 && env.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return env, nil
}

// KafkaEnabled reports whether dispatched alerts should be mirrored to Kafka.
func (e *Env) KafkaEnabled() bool {
	return len(e.KafkaBrokers) > 0
}

// MapboxEnabled reports whether the monitored point should be labeled via Mapbox.
func (e *Env) MapboxEnabled() bool {
	return e.MapboxToken != ""
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
