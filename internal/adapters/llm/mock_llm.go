package llm

import (
	"context"
	"strings"
)

// MockGenerator is a deterministic stand-in for a real text-generation
// service. It echoes the tactic angle from the prompt, so simulations stay
// fully reproducible under a fixed seed.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	// Pull the angle line out of the prompt if present; it reads well enough
	// as a canned message and carries no dollar figures.
	for _, line := range strings.Split(prompt, "\n") {
		if rest, ok := strings.CutPrefix(line, "Angle: "); ok {
			rest = strings.TrimSuffix(rest, ".")
			if i := strings.Index(rest, ". "); i > 0 {
				rest = rest[:i]
			}
			return "We want to " + rest + ".", nil
		}
	}
	return "We look forward to continuing this conversation.", nil
}
