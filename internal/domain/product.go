package domain

import "time"

// Product is one product the backend has produced from a workflow.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	WorkflowID string    `json:"workflow_id"`
	CreatedAt  time.Time `json:"created_at"`
	Cost       float64   `json:"cost"`
	Revenue    float64   `json:"revenue"`
	Profit     float64   `json:"profit"`
	Status     string    `json:"status"`
}
