package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMOpenAI LLMBackend = "openai"
	LLMVertex LLMBackend = "vertex"
)

type StorageBackend string

const (
	StorageMemory    StorageBackend = "memory"
	StorageFirestore StorageBackend = "firestore"
	StoragePostgres  StorageBackend = "postgres"
)

type Config struct {
	Port string

	LLMBackend  LLMBackend
	OpenAIKey   string
	OpenAIModel string

	GCPProjectID string
	GCPLocation  string
	VertexModel  string

	StorageBackend StorageBackend
	DatabaseURL    string

	// Simulation defaults; individual runs can override them.
	MaxRounds        int
	UrgencyLevel     int
	EventProbability float64
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getFloatEnv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Load reads all env vars and builds the config. A .env file is honored when
// present but not required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("FUNDSIM_PORT", "8080"),

		LLMBackend:  LLMBackend(getEnv("FUNDSIM_LLM_BACKEND", "mock")),
		OpenAIKey:   os.Getenv("FUNDSIM_OPENAI_API_KEY"),
		OpenAIModel: getEnv("FUNDSIM_OPENAI_MODEL", "gpt-4o-mini"),

		GCPProjectID: os.Getenv("FUNDSIM_GCP_PROJECT"),
		GCPLocation:  getEnv("FUNDSIM_GCP_LOCATION", "us-central1"),
		VertexModel:  getEnv("FUNDSIM_VERTEX_MODEL", "gemini-2.5-flash"),

		StorageBackend: StorageBackend(getEnv("FUNDSIM_STORAGE_BACKEND", "memory")),
		DatabaseURL:    os.Getenv("FUNDSIM_DATABASE_URL"),

		MaxRounds:        getIntEnv("FUNDSIM_MAX_ROUNDS", 10),
		UrgencyLevel:     getIntEnv("FUNDSIM_URGENCY", 5),
		EventProbability: getFloatEnv("FUNDSIM_EVENT_PROBABILITY", 0),
	}

	switch cfg.LLMBackend {
	case LLMMock:
	case LLMOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("FUNDSIM_OPENAI_API_KEY is required for the openai backend")
		}
	case LLMVertex:
		if cfg.GCPProjectID == "" {
			return nil, fmt.Errorf("FUNDSIM_GCP_PROJECT is required for the vertex backend")
		}
	default:
		return nil, fmt.Errorf("unknown FUNDSIM_LLM_BACKEND %q", cfg.LLMBackend)
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StorageFirestore:
		if cfg.GCPProjectID == "" {
			return nil, fmt.Errorf("FUNDSIM_GCP_PROJECT is required for the firestore backend")
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("FUNDSIM_DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown FUNDSIM_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}
