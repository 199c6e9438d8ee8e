package main

import (
	"context"
	"log"
	"net/http"

	"github.com/fluentnsunshine/funding-sim-v2/internal/adapters/llm"
	"github.com/fluentnsunshine/funding-sim-v2/internal/adapters/storage/firestore"
	"github.com/fluentnsunshine/funding-sim-v2/internal/adapters/storage/memory"
	"github.com/fluentnsunshine/funding-sim-v2/internal/adapters/storage/postgres"
	"github.com/fluentnsunshine/funding-sim-v2/internal/app/negotiation"
	"github.com/fluentnsunshine/funding-sim-v2/internal/config"
	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"

	httpadapter "github.com/fluentnsunshine/funding-sim-v2/internal/adapters/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var gen domain.TextGenerator
	switch cfg.LLMBackend {
	case config.LLMOpenAI:
		log.Println("[LLM] Using OpenAI text generator")
		gen, err = llm.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("error initializing OpenAI generator: %v", err)
		}
	case config.LLMVertex:
		log.Println("[LLM] Using Vertex text generator")
		gen, err = llm.NewVertexGenerator(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("error initializing Vertex generator: %v", err)
		}
	default:
		log.Println("[LLM] Using MOCK text generator")
		gen = llm.NewMockGenerator()
	}
	gen = llm.WithRetry(gen)

	var store domain.NegotiationStore
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore
	case config.StoragePostgres:
		log.Println("[STORE] Using Postgres storage")
		pgStore, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("error initializing Postgres store: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
	default:
		log.Println("[STORE] Using in-memory storage")
		store = memory.NewNegotiationStore()
	}

	svc := negotiation.NewService(gen, store)
	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Println("funding-sim API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
