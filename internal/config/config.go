package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Ai    AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type StoreConfig struct {
	DataDir string
}

type AIConfig struct {
	Provider       string // "gemini" or "ollama"
	GeminiAPIKey   string
	GoogleProject  string
	GoogleLocation string
	Model          string
	FallbackModel  string // secondary model tried when the primary call fails
	OllamaBaseURL  string
	OllamaModel    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Store: StoreConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Ai: AIConfig{
			Provider:       getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GoogleProject:  getEnv("GOOGLE_PROJECT_ID", ""),
			GoogleLocation: getEnv("GOOGLE_LOCATION", "us-central1"),
			Model:          getEnv("LLM_MODEL", "gemini-1.5-pro"),
			FallbackModel:  getEnv("LLM_FALLBACK_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:    getEnv("OLLAMA_MODEL", "llama3"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
