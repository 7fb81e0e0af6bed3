package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	// Question bank and session shape.
	BankPath  string // empty means the built-in bank
	MCQCount  int
	OpenCount int

	// Registry backing. "memory" (default), "sqlite" or "postgres".
	RegistryDriver string
	DBDSN          string

	// Evaluator.
	LLMProvider     string // gemini|openai|anthropic|mock
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string
	EvalTimeout     time.Duration
	EvalTemperature float64
	EvalMaxTokens   int
}

func FromEnv() Config {
	return Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		BankPath:  os.Getenv("QUESTION_BANK_PATH"),
		MCQCount:  envInt("MCQ_COUNT", 5),
		OpenCount: envInt("OPEN_ENDED_COUNT", 5),

		RegistryDriver: envOr("REGISTRY_DRIVER", "memory"),
		DBDSN:          os.Getenv("DB_DSN"),

		LLMProvider:     envOr("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-flash"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-haiku"),
		EvalTimeout:     envDuration("EVAL_TIMEOUT", 30*time.Second),
		EvalTemperature: envFloat("EVAL_TEMPERATURE", 0.3),
		EvalMaxTokens:   envInt("EVAL_MAX_TOKENS", 2048),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
