// Package config provides configuration management for the bot.
// It loads environment variables and makes them available throughout the application.
package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Store drivers accepted by StoreDriver
const (
	StoreFile   = "file"
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	BotToken      string
	DevGuildID    string
	DefaultPrefix string

	// Storage
	StoreDriver    string
	DataDir        string
	StoreCacheSize string

	// MongoDB
	MongoDBURL string
	DBName     string

	// Redis
	RedisURL string

	// MQTT
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web Server
	Port         string
	AllowedHosts string
	APIToken     string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook      string
	LogsWebhook       string
	LogsWebServerHook string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

// cfg holds the global configuration instance
var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadConfig performs the actual configuration loading
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	cfg = &Config{
		BotToken:      getEnv("botToken", ""),
		DevGuildID:    getEnv("devGuildId", ""),
		DefaultPrefix: getEnv("defaultPrefix", "."),

		StoreDriver:    getEnv("storeDriver", StoreFile),
		DataDir:        getEnv("dataDir", "./data"),
		StoreCacheSize: getEnv("storeCacheSize", "1000"),

		MongoDBURL: getEnv("mongodbUrl", "mongodb://localhost:27017"),
		DBName:     getEnv("dbName", "PancyGuard"),

		RedisURL: getEnv("redisUrl", "redis://localhost:6379/0"),

		MQTTHost:     getEnv("MQTT_Host", "localhost"),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),

		Port:         getEnv("PORT", "3000"),
		AllowedHosts: getEnv("allowedHosts", ".*"),
		APIToken:     getEnv("apiToken", ""),

		Environment: getEnv("enviroment", "dev"),

		ErrorWebhook:      getEnv("errorWebhook", ""),
		LogsWebhook:       getEnv("logsWebhook", ""),
		LogsWebServerHook: getEnv("logsWebServerWebhook", ""),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// CacheSize returns the store cache capacity. Zero disables the cache;
// an unparsable value falls back to 1000.
func (c *Config) CacheSize() int {
	n, err := strconv.Atoi(c.StoreCacheSize)
	if err != nil || n < 0 {
		return 1000
	}
	return n
}
