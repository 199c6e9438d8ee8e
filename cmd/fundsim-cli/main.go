package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fluentnsunshine/funding-sim-v2/internal/adapters/llm"
	"github.com/fluentnsunshine/funding-sim-v2/internal/app/negotiation"
	"github.com/fluentnsunshine/funding-sim-v2/internal/config"
	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

func main() {
	var (
		initialFunding   = flag.Float64("initial", 100000, "initial funding amount offered by the corporate party")
		requestedFunding = flag.Float64("requested", 150000, "funding amount requested by the nonprofit")
		maxRounds        = flag.Int("rounds", 0, "maximum number of rounds (0 = config/default)")
		urgency          = flag.Int("urgency", 0, "nonprofit urgency level 1-10 (0 = config/default)")
		seed             = flag.Int64("seed", 0, "random seed (0 = time-based)")
		eventProbability = flag.Float64("events", -1, "per-round pressure event probability (negative = config/default)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	var gen domain.TextGenerator
	switch cfg.LLMBackend {
	case config.LLMOpenAI:
		gen, err = llm.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("error initializing OpenAI generator: %v", err)
		}
	case config.LLMVertex:
		gen, err = llm.NewVertexGenerator(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("error initializing Vertex generator: %v", err)
		}
	default:
		gen = llm.NewMockGenerator()
	}
	gen = llm.WithRetry(gen)

	rounds := *maxRounds
	if rounds == 0 {
		rounds = cfg.MaxRounds
	}
	urgencyLevel := *urgency
	if urgencyLevel == 0 {
		urgencyLevel = cfg.UrgencyLevel
	}
	events := *eventProbability
	if events < 0 {
		events = cfg.EventProbability
	}

	// One-shot run, no transcript store.
	svc := negotiation.NewService(gen, nil)

	out, err := svc.Run(ctx, negotiation.RunInput{
		InitialFunding:   *initialFunding,
		RequestedFunding: *requestedFunding,
		MaxRounds:        rounds,
		UrgencyLevel:     urgencyLevel,
		Seed:             *seed,
		EventProbability: events,
		Observer:         printRound,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "negotiation failed: %v\n", err)
		os.Exit(1)
	}

	printReport(out.Report)
}

func printRound(rr negotiation.RoundResult) {
	fmt.Printf("\nRound %d\n", rr.Round)
	if rr.Event != nil {
		fmt.Printf("  event:     %s\n", rr.Event.Type)
	}
	fmt.Printf("  corporate: %s\n", rr.Corporate)
	fmt.Printf("  nonprofit: %s\n", rr.Nonprofit)
	if rr.Accepted {
		fmt.Println("  agreement reached")
	}
}

func printReport(r domain.Report) {
	fmt.Println("\nNegotiation Final Report")
	fmt.Printf("  Status:           %s\n", r.Status)
	fmt.Printf("  Initial Offer:    %s\n", domain.FormatAmount(r.InitialFunding))
	fmt.Printf("  Final Offer:      %s\n", domain.FormatAmount(r.FinalOffer))
	fmt.Printf("  Requested:        %s\n", domain.FormatAmount(r.FundingRequested))
	fmt.Printf("  Rounds Completed: %d\n", r.RoundsCompleted)
	fmt.Printf("  Reputation:       %d\n", r.ReputationScore)
	fmt.Printf("  Events:           %d\n", r.EventCount)
}
