package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	ServerAddr    string

	JWTSecret          string
	JWTIssuer          string
	JWTExpirationHours int
}

// Load reads configuration from the environment, loading a .env file first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	return &Config{
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "todouser"),
		DBPassword:         getEnv("DB_PASSWORD", "todopassword"),
		DBName:             getEnv("DB_NAME", "todo"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		SQLitePath:         getEnv("SQLITE_PATH", "todo.db"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		SessionSecret:      getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
		JWTSecret:          getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		JWTIssuer:          getEnv("JWT_ISSUER", "todo-api"),
		JWTExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 48),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
