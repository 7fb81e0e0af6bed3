package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/prepdesk/interviewd/internal/api/http"
	"github.com/prepdesk/interviewd/internal/config"
	"github.com/prepdesk/interviewd/internal/db"
	"github.com/prepdesk/interviewd/internal/evaluate"
	"github.com/prepdesk/interviewd/internal/interview"
	"github.com/prepdesk/interviewd/internal/llm"
	"github.com/prepdesk/interviewd/internal/question"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	// --- Question bank ---
	bank := question.DefaultBank()
	if cfg.BankPath != "" {
		var err error
		bank, err = question.LoadBank(cfg.BankPath)
		if err != nil {
			log.Fatalf("question bank: %v", err)
		}
	}
	if cfg.MCQCount+cfg.OpenCount <= 0 {
		log.Fatalf("interview needs at least one question: MCQ_COUNT=%d OPEN_ENDED_COUNT=%d", cfg.MCQCount, cfg.OpenCount)
	}
	mcq, open := bank.CountByType()
	if mcq < cfg.MCQCount || open < cfg.OpenCount {
		log.Fatalf("question bank too small: have %d multiple_choice / %d open_ended, need %d / %d",
			mcq, open, cfg.MCQCount, cfg.OpenCount)
	}

	// --- Evaluator ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var evaluator evaluate.AnswerEvaluator
	provider, err := llm.NewProvider(ctx, llmConfig(cfg))
	if err != nil {
		// The interview still runs: open-ended answers get the fallback
		// evaluation until the provider is configured.
		log.Printf("evaluator disabled: %v", err)
	} else {
		evaluator = evaluate.NewLLMEvaluator(provider,
			evaluate.WithTemperature(cfg.EvalTemperature),
			evaluate.WithMaxTokens(cfg.EvalMaxTokens),
		)
		log.Printf("evaluator ready (provider=%s, model=%s)", cfg.LLMProvider, provider.ModelID())
	}
	dispatcher := evaluate.NewDispatcher(evaluator, cfg.EvalTimeout)

	// --- Session registry ---
	var registry interview.Registry
	switch cfg.RegistryDriver {
	case "memory", "":
		registry = interview.NewMemoryRegistry()
	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.RegistryDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		registry = interview.NewSQLRegistry(dbh)
	default:
		log.Fatalf("unknown registry driver: %s", cfg.RegistryDriver)
	}

	svc := interview.NewService(bank, registry, dispatcher, cfg.MCQCount, cfg.OpenCount)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/interview", func(ir chi.Router) {
		ir.Post("/start", api.StartInterviewHandler(svc))
		ir.Post("/submit-answer", api.SubmitAnswerHandler(svc))
		ir.Get("/sessions/{sessionID}", api.GetSessionHandler(svc))
		ir.Get("/sessions/{sessionID}/report", api.GetReportHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (registry=%s, questions=%d mcq + %d open-ended)",
		cfg.HTTPAddr, cfg.RegistryDriver, cfg.MCQCount, cfg.OpenCount)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func llmConfig(cfg config.Config) llm.Config {
	lc := llm.DefaultConfig()
	lc.Provider = cfg.LLMProvider
	lc.Gemini.APIKey = cfg.GeminiAPIKey
	lc.Gemini.Model = cfg.GeminiModel
	lc.OpenAI.APIKey = cfg.OpenAIAPIKey
	lc.OpenAI.Model = cfg.OpenAIModel
	lc.OpenAI.BaseURL = cfg.OpenAIBaseURL
	lc.Anthropic.APIKey = cfg.AnthropicAPIKey
	lc.Anthropic.Model = cfg.AnthropicModel
	return lc
}
