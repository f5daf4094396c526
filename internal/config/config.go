package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Client   ClientConfig   `json:"client"`
	Presence PresenceConfig `json:"presence"`
	Upload   UploadConfig   `json:"upload"`
}

// ServerConfig configures the reference backend binary.
type ServerConfig struct {
	Port        string `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"` // development, staging, production
}

// ClientConfig points the messaging client at the backend.
type ClientConfig struct {
	APIBaseURL    string `json:"api_base_url"`
	WebsocketURL  string `json:"websocket_url"`
	ChannelSecret string `json:"channel_secret"`
}

type PresenceConfig struct {
	// ThrottleSeconds is the minimum gap between emitted typing signals.
	ThrottleSeconds int `json:"throttle_seconds"`
}

type UploadConfig struct {
	MaxFileBytes int64 `json:"max_file_bytes"`
}

// LoadConfig reads .env if present and falls back to defaults for anything
// unset.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment and defaults")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("SERVER_PORT", "8090"),
			Host:        getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Client: ClientConfig{
			APIBaseURL:    getEnvOrDefault("API_BASE_URL", "http://localhost:8090"),
			WebsocketURL:  getEnvOrDefault("WS_URL", "ws://localhost:8090/ws"),
			ChannelSecret: getEnvOrDefault("CHANNEL_SECRET", ""),
		},
		Presence: PresenceConfig{
			ThrottleSeconds: getEnvIntOrDefault("TYPING_THROTTLE_SECONDS", 1),
		},
		Upload: UploadConfig{
			MaxFileBytes: int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", 10<<20)),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
