package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Providers ProvidersConfig
	Speech    SpeechConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ProviderConfig describes one OpenAI-compatible chat completion backend.
type ProviderConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string
}

type ProvidersConfig struct {
	Primary     ProviderConfig
	Secondary   ProviderConfig
	ChatTimeout time.Duration
}

type SpeechConfig struct {
	APIKey           string
	BaseURL          string
	SynthesisTimeout time.Duration
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ai_interviewer"),
		},
		Providers: ProvidersConfig{
			Primary: ProviderConfig{
				Name:    getEnv("LLM_PRIMARY_NAME", "openai"),
				BaseURL: getEnv("LLM_PRIMARY_URL", "https://api.openai.com/v1"),
				APIKey:  getEnv("LLM_PRIMARY_API_KEY", ""),
				Model:   getEnv("LLM_PRIMARY_MODEL", "gpt-4o-mini"),
			},
			Secondary: ProviderConfig{
				Name:    getEnv("LLM_SECONDARY_NAME", "groq"),
				BaseURL: getEnv("LLM_SECONDARY_URL", "https://api.groq.com/openai/v1"),
				APIKey:  getEnv("LLM_SECONDARY_API_KEY", ""),
				Model:   getEnv("LLM_SECONDARY_MODEL", "llama-3.3-70b-versatile"),
			},
			ChatTimeout: getEnvAsDuration("LLM_CHAT_TIMEOUT", "30s"),
		},
		Speech: SpeechConfig{
			APIKey:           getEnv("SPEECHMATICS_API_KEY", ""),
			BaseURL:          getEnv("SPEECHMATICS_URL", "https://asr.api.speechmatics.com/v2"),
			SynthesisTimeout: getEnvAsDuration("SPEECH_SYNTHESIS_TIMEOUT", "15s"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_context_docs"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
