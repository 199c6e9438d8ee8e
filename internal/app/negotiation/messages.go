package negotiation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

// Messenger turns a tactic into message prose. With a text generator it asks
// for generated wording; without one, or when the generated text quotes a
// dollar figure that contradicts the offer, it falls back to the deterministic
// template.
type Messenger struct {
	gen domain.TextGenerator
}

func NewMessenger(gen domain.TextGenerator) *Messenger {
	return &Messenger{gen: gen}
}

func (m *Messenger) Compose(ctx context.Context, prompt, fallback string, amount float64) (string, error) {
	if m == nil || m.gen == nil {
		return fallback, nil
	}

	text, err := m.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallback, nil
	}

	// A message must never contradict the offer it accompanies.
	if got, ok := domain.ParseAmount(text); ok && math.Abs(got-amount) > 0.01 {
		return fallback, nil
	}

	return text, nil
}

func corporateFallback(tactic domain.CorporateTactic, amount float64, baitRevised bool) string {
	formatted := domain.FormatAmount(amount)

	switch tactic {
	case domain.TacticBaitAndSwitch:
		if baitRevised {
			return fmt.Sprintf("Due to budget constraints, we must lower our offer to %s.", formatted)
		}
		return fmt.Sprintf("We are offering a generous %s!", formatted)
	case domain.TacticWalkaway:
		return "If we can't reach an agreement, we may need to walk away."
	case domain.TacticConditionalTerms:
		return fmt.Sprintf("We can increase funding to %s if you match 10%%.", formatted)
	default:
		return fmt.Sprintf("We maintain our offer of %s.", formatted)
	}
}

func nonprofitFallback(tactic domain.NonprofitTactic, amount float64) string {
	formatted := domain.FormatAmount(amount)

	switch tactic {
	case domain.TacticUrgencyAppeal:
		return fmt.Sprintf("Without additional funding, we may have to cut critical programs. We urgently request %s.", formatted)
	case domain.TacticCompetitiveOffer:
		return fmt.Sprintf("Another sponsor has shown interest in funding us at %s. Can you match this?", formatted)
	case domain.TacticWalkawayThreat:
		return "If we cannot secure the necessary funding, we may need to seek alternative donors. We hope you can reconsider."
	case domain.TacticGradualCompromise:
		return fmt.Sprintf("We are willing to adjust our request to %s to find a middle ground.", formatted)
	case domain.TacticFinalAppeal:
		return "This is our final appeal. We need your support to continue our mission."
	default:
		return fmt.Sprintf("We maintain our request for %s.", formatted)
	}
}

func corporatePrompt(tactic domain.CorporateTactic, amount float64, n *domain.Negotiation) string {
	var angle string
	switch tactic {
	case domain.TacticBaitAndSwitch:
		angle = "sound enthusiastic and generous"
	case domain.TacticWalkaway:
		angle = "hint that you may walk away from the table"
	case domain.TacticConditionalTerms:
		angle = "attach a condition: the nonprofit must match 10% of the increase"
	default:
		angle = "hold your current position firmly but politely"
	}

	return fmt.Sprintf(
		"You are the corporate sponsor in a funding negotiation, round %d of %d.\n"+
			"Write one or two sentences presenting your offer of %s to the nonprofit.\n"+
			"Angle: %s. Mention no dollar figure other than %s.",
		n.CurrentRound, n.MaxRounds, domain.FormatAmount(amount), angle, domain.FormatAmount(amount),
	)
}

func nonprofitPrompt(tactic domain.NonprofitTactic, amount float64, n *domain.Negotiation) string {
	var angle string
	switch tactic {
	case domain.TacticUrgencyAppeal:
		angle = "stress how urgently your programs depend on this funding"
	case domain.TacticCompetitiveOffer:
		angle = "mention that another sponsor has shown competing interest"
	case domain.TacticWalkawayThreat:
		angle = "hint that you may have to seek alternative donors"
	case domain.TacticGradualCompromise:
		angle = "show willingness to meet in the middle"
	case domain.TacticFinalAppeal:
		angle = "make a final heartfelt plea for support"
	default:
		angle = "restate your request calmly and confidently"
	}

	return fmt.Sprintf(
		"You are the nonprofit in a funding negotiation, round %d of %d.\n"+
			"Write one or two sentences countering with %s.\n"+
			"Angle: %s. Mention no dollar figure other than %s.",
		n.CurrentRound, n.MaxRounds, domain.FormatAmount(amount), angle, domain.FormatAmount(amount),
	)
}
