package models

// Goal represents a financial goal for a user
type Goal struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline,omitempty"`
	Priority      int     `json:"priority"`
}
