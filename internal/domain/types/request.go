package types

// MaxTierCoefficient bounds SolveRequest.TierCoefficient so tier bonuses
// stay far inside the int range.
const MaxTierCoefficient = 1e6

const defaultTierCoefficient = 1.0

// SolveRequest describes one team search.
type SolveRequest struct {
	// Size is clamped to [1, 11] by the service.
	Size int
	// HighTier enables the tier-weight bonus.
	HighTier bool
	// Mode names the scoring mode; empty selects the service default.
	Mode string
	// TierCoefficient scales the tier-weight bonus. It must be finite and
	// within [0, MaxTierCoefficient].
	TierCoefficient float64
}

// NewSolveRequest returns a request for size with the default settings:
// no tier bonus, default mode, coefficient 1.0.
func NewSolveRequest(size int) SolveRequest {
	return SolveRequest{Size: size, TierCoefficient: defaultTierCoefficient}
}
