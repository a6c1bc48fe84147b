package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of solve requests to send
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	MaxSize  int           // Largest team size to request
	HighTier bool          // Request the tier-weight bonus
	LogFile  string        // Log file for probe output
	Verbose  bool          // Log every failed check
}

// Trait mirrors a row of GET /traits.
type Trait struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
}

// Champion mirrors a team member of GET /solve/{n}.
type Champion struct {
	ID     string `json:"id"`
	Tier   int    `json:"tier"`
	Traits []int  `json:"traits"`
}

// Team mirrors the GET /solve/{n} response.
type Team struct {
	ID         string      `json:"id"`
	Mode       string      `json:"mode"`
	Champions  []Champion  `json:"champions"`
	Evaluation int         `json:"evaluation"`
	Fitness    int         `json:"fitness"`
	Traits     map[int]int `json:"traits"`
}

// Request is one generated solve call.
type Request struct {
	ID   string
	Size int
	Mode string
}

// Stats holds probe statistics.
type Stats struct {
	RunID          string
	Sent           int
	Verified       int
	Inconsistent   int
	RateLimited    int
	Failed         int
	TotalLatency   time.Duration
	MaxLatency     time.Duration
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	EvaluationSums map[string]int
}
