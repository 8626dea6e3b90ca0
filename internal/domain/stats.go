package domain

import "time"

// DashboardStats is the aggregate counter singleton from the backend.
type DashboardStats struct {
	TotalWorkflows     int     `json:"total_workflows"`
	ActiveWorkflows    int     `json:"active_workflows"`
	CompletedWorkflows int     `json:"completed_workflows"`
	TotalTrends        int     `json:"total_trends"`
	TotalProducts      int     `json:"total_products"`
	TotalProfit        float64 `json:"total_profit"`
	RevenuePotential   float64 `json:"revenue_potential"`
	AgentStatus        string  `json:"agent_status"`
}

// RevenueStats is the revenue-focused counter singleton.
type RevenueStats struct {
	TotalRevenueTarget        float64 `json:"total_revenue_target"`
	PotentialEarned           float64 `json:"potential_earned"`
	ActiveRevenueWorkflows    int     `json:"active_revenue_workflows"`
	PendingRevenueWorkflows   int     `json:"pending_revenue_workflows"`
	OpportunitiesToday        int     `json:"opportunities_today"`
	RevenueWorkflowsCompleted int     `json:"revenue_workflows_completed"`
	AverageTemplatePrice      float64 `json:"average_template_price"`
}

// RevenueOpportunity is one identified template opportunity.
type RevenueOpportunity struct {
	ID              string    `json:"id"`
	TemplateType    string    `json:"template_type"`
	TrendingKeyword string    `json:"trending_keyword"`
	MarketDemand    float64   `json:"market_demand"`
	EstimatedPrice  float64   `json:"estimated_price"`
	Difficulty      string    `json:"difficulty"`
	TimeToCreate    string    `json:"time_to_create"`
	Platforms       []string  `json:"platforms"`
	ProfitPotential float64   `json:"profit_potential"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status"`
}

// NextAction describes the next pending step of a running revenue workflow.
type NextAction struct {
	WorkflowID    string   `json:"workflow_id"`
	WorkflowName  string   `json:"workflow_name"`
	NextStep      string   `json:"next_step"`
	Description   string   `json:"description"`
	Tools         []string `json:"tools"`
	EstimatedTime int      `json:"estimated_time"`
	RevenueTarget float64  `json:"revenue_target"`
	Progress      int      `json:"progress"`
}
