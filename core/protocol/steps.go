// Package protocol implements the basic protocols every higher-level
// computation composes (spec §4.4): ShareKnownValue, SecureMul, Reshare,
// Reveal, SumOfProducts, and CheckZero. Each primitive's substep tag set is
// a closed enumeration, narrowed from the caller's context, matching the
// discipline spec §9 calls for ("encoding substeps as a closed enumeration
// per protocol rather than ad-hoc strings").
package protocol

// Reserved substep names (spec §6).
const (
	StepReshare1     = "reshare-step-1"
	StepReshare2     = "reshare-step-2"
	StepMultiply     = "multiply"
	StepReveal       = "reveal"
	StepSumOfProds   = "sum-of-products"
	StepCheckZero    = "check-zero"
	StepRandomBits   = "random-bits"
	StepLessThanP    = "less-than-prime"
	StepFallback     = "fallback"
	StepShuffleInput = "shuffle-inputs"
	StepPermutation  = "shuffle-permutation"
	StepPRSSExchange = "prss-exchange"
)
