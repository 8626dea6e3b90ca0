package domain

import "time"

// Workflow status values as reported by the backend.
const (
	WorkflowStatusPending   = "pending"
	WorkflowStatusRunning   = "running"
	WorkflowStatusCompleted = "completed"
	WorkflowStatusFailed    = "failed"
	WorkflowStatusPaused    = "paused"
)

// Workflow is one backend workflow. Steps and results are opaque
// backend-defined documents and are carried through untouched.
type Workflow struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Type                string           `json:"type"`
	Category            string           `json:"category,omitempty"`
	Steps               []map[string]any `json:"steps"`
	Status              string           `json:"status"`
	Priority            int              `json:"priority"`
	TargetProfitability float64          `json:"target_profitability"`
	ActualProfitability float64          `json:"actual_profitability"`
	CreatedAt           time.Time        `json:"created_at"`
	StartedAt           *time.Time       `json:"started_at"`
	CompletedAt         *time.Time       `json:"completed_at"`
	Progress            int              `json:"progress"`
	CurrentStep         int              `json:"current_step"`
	Results             map[string]any   `json:"results,omitempty"`
	EstimatedRevenue    float64          `json:"estimated_revenue,omitempty"`
}

// WorkflowCreate is the request body for creating a workflow.
type WorkflowCreate struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Type                string           `json:"type"`
	Steps               []map[string]any `json:"steps"`
	Priority            int              `json:"priority"`
	TargetProfitability float64          `json:"target_profitability"`
}
