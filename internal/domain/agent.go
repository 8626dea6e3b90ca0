package domain

import "time"

// Agent status values as reported by the backend.
const (
	AgentStatusActive    = "active"
	AgentStatusIdle      = "idle"
	AgentStatusThinking  = "thinking"
	AgentStatusExecuting = "executing"
)

// AgentStatus is the singleton status snapshot of the backend agent.
// Latest fetch wins; fields pass through unmodified.
type AgentStatus struct {
	Status           string    `json:"status"`
	CurrentTask      *string   `json:"current_task"`
	ActiveWorkflows  int       `json:"active_workflows"`
	CompletedToday   int       `json:"completed_today"`
	TotalProfitToday float64   `json:"total_profit_today"`
	DecisionsMade    int       `json:"decisions_made"`
	LastActivity     time.Time `json:"last_activity"`
}

// AgentLog is one entry of the agent's activity log, in the order the
// backend returns them.
type AgentLog struct {
	ID               string         `json:"id"`
	Timestamp        time.Time      `json:"timestamp"`
	Action           string         `json:"action"`
	Reasoning        string         `json:"reasoning,omitempty"`
	WorkflowID       string         `json:"workflow_id,omitempty"`
	RevenuePotential float64        `json:"revenue_potential,omitempty"`
	Details          map[string]any `json:"details,omitempty"`
}
