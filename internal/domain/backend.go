package domain

import "context"

// Backend is the upstream AI Agent Manager API. Every method maps to one
// endpoint; implementations return an error for transport failures,
// non-2xx statuses, and undecodable payloads alike.
type Backend interface {
	AgentStatus(ctx context.Context) (*AgentStatus, error)
	Workflows(ctx context.Context) ([]Workflow, error)
	Workflow(ctx context.Context, id string) (*Workflow, error)
	CreateWorkflow(ctx context.Context, req *WorkflowCreate) (string, error)
	UpdateWorkflowStatus(ctx context.Context, id, status string) error
	Trends(ctx context.Context) ([]Trend, error)
	RefreshTrends(ctx context.Context) ([]Trend, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	AgentLogs(ctx context.Context) ([]AgentLog, error)
	RevenueStats(ctx context.Context) (*RevenueStats, error)
	RevenueOpportunities(ctx context.Context) ([]RevenueOpportunity, error)
	NextActions(ctx context.Context) ([]NextAction, error)
	Products(ctx context.Context) ([]Product, error)
	CreateTemplateWorkflow(ctx context.Context, opportunity map[string]any) (string, error)
}
