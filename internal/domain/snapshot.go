package domain

import "time"

// Slot names. A slot is a named unit of fetched state with an
// independent refresh lifecycle.
const (
	SlotAgentStatus          = "agent_status"
	SlotWorkflows            = "workflows"
	SlotTrends               = "trends"
	SlotDashboardStats       = "dashboard_stats"
	SlotAgentLogs            = "agent_logs"
	SlotRevenueStats         = "revenue_stats"
	SlotRevenueOpportunities = "revenue_opportunities"
	SlotNextActions          = "next_actions"
	SlotProducts             = "products"
)

// SlotMeta carries per-slot sync bookkeeping. LastError holds the most
// recent fetch failure and is cleared on the next successful fetch; the
// slot value itself is never cleared.
type SlotMeta struct {
	Version      uint64     `json:"version"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}

// Snapshot is the full set of slot values plus their sync metadata.
// Each slot holds exactly the last successfully fetched value; slots are
// independent and may reflect different points in time.
type Snapshot struct {
	AgentStatus          *AgentStatus         `json:"agent_status,omitempty"`
	Workflows            []Workflow           `json:"workflows,omitempty"`
	Trends               []Trend              `json:"trends,omitempty"`
	DashboardStats       *DashboardStats      `json:"dashboard_stats,omitempty"`
	AgentLogs            []AgentLog           `json:"agent_logs,omitempty"`
	RevenueStats         *RevenueStats        `json:"revenue_stats,omitempty"`
	RevenueOpportunities []RevenueOpportunity `json:"revenue_opportunities,omitempty"`
	NextActions          []NextAction         `json:"next_actions,omitempty"`
	Products             []Product            `json:"products,omitempty"`

	Slots   map[string]SlotMeta `json:"slots"`
	TakenAt time.Time           `json:"taken_at"`
}
