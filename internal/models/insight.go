package models

import "time"

// Insight is a stored piece of AI-generated advice
type Insight struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	InsightType string    `json:"insight_type"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// BudgetAdvice is the structured response of a budget analysis.
// Raw carries the model reply verbatim when it was not valid JSON.
type BudgetAdvice struct {
	OverallAnalysis  string            `json:"overall_analysis"`
	Recommendations  []string          `json:"recommendations"`
	Improvements     []string          `json:"improvements"`
	ExpenseBreakdown map[string]string `json:"expense_breakdown"`
	Raw              string            `json:"raw,omitempty"`
}
