package domain

// CorporateTactic names a corporate offer-adjustment strategy.
type CorporateTactic string

const (
	TacticBaitAndSwitch    CorporateTactic = "bait_and_switch"
	TacticWalkaway         CorporateTactic = "walkaway"
	TacticConditionalTerms CorporateTactic = "conditional_terms"
	TacticMaintain         CorporateTactic = "maintain"
)

// NonprofitTactic names a nonprofit counter-offer strategy.
type NonprofitTactic string

const (
	TacticUrgencyAppeal     NonprofitTactic = "urgency_appeal"
	TacticCompetitiveOffer  NonprofitTactic = "competitive_offer"
	TacticWalkawayThreat    NonprofitTactic = "walkaway_threat"
	TacticGradualCompromise NonprofitTactic = "gradual_compromise"
	TacticFinalAppeal       NonprofitTactic = "final_appeal"
	TacticMaintainRequest   NonprofitTactic = "maintain_request"
)
