package probe

// Team size bounds enforced by the service.
const (
	minTeamSize = 1
	maxTeamSize = 11
)

// Scoring modes understood by the service.
const (
	ModeStandUnited    = "standUnited"
	ModeBuiltDifferent = "builtDifferent"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Reporting constants.
const (
	PercentageMultiplier = 100
)
