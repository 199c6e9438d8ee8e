package negotiation

// Rand supplies the draws behind tactic selection and event rolls.
// *math/rand.Rand satisfies it; tests inject scripted sequences.
type Rand interface {
	Float64() float64
}
