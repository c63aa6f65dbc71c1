package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"stamina-backend/internal/pipeline"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Generation provider
	GeminiAPIKey             string
	GeminiModel              string
	GenerationConcurrentReqs int

	// Pipeline tunables (heuristic constants, overridable per deploy)
	MaxSourceChars          int
	WordsPerCard            int
	MinCards                int
	MaxCards                int
	SectionCap              int
	ComplexityBeginnerMax   float64
	ComplexityIntermedMax   float64

	// Workers
	WorkerCount int

	// Uploads
	StoragePath string

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	defaults := pipeline.DefaultConfig()

	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		GeminiAPIKey:             mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:              getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GenerationConcurrentReqs: getEnvAsIntOrDefault("GENERATION_CONCURRENT_REQUESTS", 5),

		MaxSourceChars:        getEnvAsIntOrDefault("MAX_SOURCE_CHARS", defaults.MaxSourceChars),
		WordsPerCard:          getEnvAsIntOrDefault("WORDS_PER_CARD", defaults.WordsPerCard),
		MinCards:              getEnvAsIntOrDefault("MIN_CARDS", defaults.MinCards),
		MaxCards:              getEnvAsIntOrDefault("MAX_CARDS", defaults.MaxCards),
		SectionCap:            getEnvAsIntOrDefault("SECTION_CAP", defaults.SectionCap),
		ComplexityBeginnerMax: getEnvAsFloatOrDefault("COMPLEXITY_BEGINNER_MAX", defaults.BeginnerMax),
		ComplexityIntermedMax: getEnvAsFloatOrDefault("COMPLEXITY_INTERMEDIATE_MAX", defaults.IntermediateMax),

		WorkerCount: getEnvAsIntOrDefault("WORKER_COUNT", 5),
		StoragePath: getEnvOrDefault("STORAGE_PATH", "./uploads"),

		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser: getEnvOrDefault("SMTP_USER", ""),
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom: getEnvOrDefault("SMTP_FROM", "noreply@literacystamina.app"),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

// Pipeline exposes the tunables as the pipeline's own config type.
func (c *Config) Pipeline() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.MaxSourceChars = c.MaxSourceChars
	cfg.WordsPerCard = c.WordsPerCard
	cfg.MinCards = c.MinCards
	cfg.MaxCards = c.MaxCards
	cfg.SectionCap = c.SectionCap
	cfg.BeginnerMax = c.ComplexityBeginnerMax
	cfg.IntermediateMax = c.ComplexityIntermedMax
	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
