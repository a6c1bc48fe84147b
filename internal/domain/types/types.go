// Package types contains the response shapes shared by the service and the HTTP API.
package types

// Champion is a team member as returned to clients.
type Champion struct {
	ID     string `json:"id"`
	Tier   int    `json:"tier"`
	Traits []int  `json:"traits"`
}

// Team is the answer to a solve request.
type Team struct {
	ID        string     `json:"id"`
	Mode      string     `json:"mode"`
	Champions []Champion `json:"champions"`
	// Evaluation is the primary metric: active traits in standUnited,
	// penalties in builtDifferent.
	Evaluation int `json:"evaluation"`
	Fitness    int `json:"fitness"`
	// Traits maps a trait key to the number of distinct champions carrying it.
	Traits map[int]int `json:"traits"`
}

// Trait is a trait table row as returned to clients.
type Trait struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
}
