package config

import (
	"os"
	"strconv"

	"growwise-monitor/pkg/database"
	"growwise-monitor/pkg/mqttclient"
	"growwise-monitor/pkg/redisutil"
)

// Config is the monitor service configuration.
type Config struct {
	Database database.Config
	Redis    redisutil.Config
	MQTT     mqttclient.Config

	// Reading ingestion
	Ingest struct {
		Topic string // MQTT topic filter for incoming readings
	}

	// Latest-reading cache
	Cache struct {
		ReadingKeyPrefix string // e.g. "growwise:space:"
		ReadingSuffix    string // e.g. ":latest"
		ReadingTTL       int    // seconds
	}

	// Periodic fleet sweep
	Sweep struct {
		IntervalMinutes int
	}

	// Push notification gateway
	Notify struct {
		GatewayURL string
		Token      string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load builds the configuration from environment variables with
// sensible local-dev defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "growwise")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "growwise-monitor")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.QoS = 1

	cfg.Ingest.Topic = getEnv("INGEST_TOPIC", "growwise/spaces/+/readings")

	cfg.Cache.ReadingKeyPrefix = getEnv("CACHE_READING_PREFIX", "growwise:space:")
	cfg.Cache.ReadingSuffix = ":latest"
	cfg.Cache.ReadingTTL = getEnvInt("CACHE_READING_TTL", 86400)

	cfg.Sweep.IntervalMinutes = getEnvInt("SWEEP_INTERVAL_MINUTES", 60)

	cfg.Notify.GatewayURL = getEnv("NOTIFY_GATEWAY_URL", "")
	cfg.Notify.Token = getEnv("NOTIFY_TOKEN", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
