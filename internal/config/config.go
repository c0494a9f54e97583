package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig

	// AdminPassword is the shared secret checked by the admin gate.
	AdminPassword string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string

	MaxOpenConns      int
	MaxIdleConns      int
	MaxLifetime       time.Duration
	KeepaliveInterval time.Duration
}

type KafkaConfig struct {
	Brokers []string
}

type RedisConfig struct {
	Addr string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string

	GalleryFolder string
	MaxResults    int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "3000"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:              getEnvOrDefault("DB_HOST", "localhost"),
			Port:              getEnvOrDefault("DB_PORT", "3306"),
			Username:          getEnvOrDefault("DB_USER", "root"),
			Password:          getEnvOrDefault("DB_PASS", ""),
			Database:          getEnvOrDefault("DB_NAME", "cabana"),
			MaxOpenConns:      getIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:      getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:       getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			KeepaliveInterval: getDurationOrDefault("DB_KEEPALIVE_INTERVAL", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getBrokerList("KAFKA_BROKERS"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:     os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:        os.Getenv("CLOUDINARY_API_KEY"),
			APISecret:     os.Getenv("CLOUDINARY_API_SECRET"),
			GalleryFolder: getEnvOrDefault("CLOUDINARY_GALLERY_FOLDER", "cabana/galeria/"),
			MaxResults:    getIntOrDefault("CLOUDINARY_MAX_RESULTS", 30),
		},
		AdminPassword: os.Getenv("ADMIN_PASS"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getBrokerList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(value, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
