package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App       *AppConfig       `yaml:"app"`
	Security  *SecurityConfig  `yaml:"security"`
	Store     *StoreConfig     `yaml:"store"`
	WebSocket *WebSocketConfig `yaml:"websocket"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

type SecurityConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	JWTTokenTTL time.Duration `yaml:"jwt_token_ttl"`
	BcryptCost  int           `yaml:"bcrypt_cost"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"` // file, redis, mongo

	FilePath string `yaml:"file_path"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisKey      string `yaml:"redis_key"`

	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
}

type WebSocketConfig struct {
	TrackInterval time.Duration `yaml:"track_interval"`
}

func Load() (*Config, error) {
	config := &Config{
		App:       loadAppConfig(),
		Security:  loadSecurityConfig(),
		Store:     loadStoreConfig(),
		WebSocket: loadWebSocketConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "TaxiGo"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 5001),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:   getEnv("JWT_SECRET", "dev-key"),
		JWTTokenTTL: getEnvAsDuration("JWT_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:  getEnvAsInt("BCRYPT_COST", 8),
	}
}

func loadStoreConfig() *StoreConfig {
	return &StoreConfig{
		Backend: getEnv("STORE_BACKEND", "file"),

		FilePath: getEnv("STORE_FILE_PATH", "./db.json"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisKey:      getEnv("REDIS_KEY", "taxigo:state"),

		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "taxigo"),
		MongoCollection: getEnv("MONGO_COLLECTION", "state"),
	}
}

func loadWebSocketConfig() *WebSocketConfig {
	return &WebSocketConfig{
		TrackInterval: getEnvAsDuration("WS_TRACK_INTERVAL", 3*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}
