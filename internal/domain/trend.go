package domain

import "time"

// Trend is one detected trend, ordered as returned by the backend.
type Trend struct {
	ID                     string    `json:"id"`
	Keyword                string    `json:"keyword"`
	Source                 string    `json:"source"`
	TrendScore             float64   `json:"trend_score"`
	Volume                 int       `json:"volume"`
	ProfitabilityPotential float64   `json:"profitability_potential"`
	DetectedAt             time.Time `json:"detected_at"`
	ProductOpportunities   []string  `json:"product_opportunities"`
}
