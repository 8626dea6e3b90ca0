package backend

import (
	"context"
	"sync"

	"github.com/Harshitk-cp/agentdeck/internal/domain"
)

// Mock is a configurable Backend for testing. Set the response fields to
// control what each method returns; call counters track invocations.
// Safe for concurrent use: the orchestrator fetches slots in parallel.
type Mock struct {
	mu sync.Mutex

	AgentStatusResponse          *domain.AgentStatus
	AgentStatusError             error
	WorkflowsResponse            []domain.Workflow
	WorkflowsError               error
	WorkflowResponse             *domain.Workflow
	WorkflowError                error
	CreateWorkflowID             string
	CreateWorkflowError          error
	UpdateWorkflowStatusError    error
	TrendsResponse               []domain.Trend
	TrendsError                  error
	RefreshTrendsResponse        []domain.Trend
	RefreshTrendsError           error
	DashboardStatsResponse       *domain.DashboardStats
	DashboardStatsError          error
	AgentLogsResponse            []domain.AgentLog
	AgentLogsError               error
	RevenueStatsResponse         *domain.RevenueStats
	RevenueStatsError            error
	RevenueOpportunitiesResponse []domain.RevenueOpportunity
	RevenueOpportunitiesError    error
	NextActionsResponse          []domain.NextAction
	NextActionsError             error
	ProductsResponse             []domain.Product
	ProductsError                error
	CreateTemplateWorkflowID     string
	CreateTemplateWorkflowError  error

	// Call tracking for assertions
	Calls                     map[string]int
	CreateWorkflowCalls       []domain.WorkflowCreate
	UpdateWorkflowStatusCalls []struct{ ID, Status string }
}

func NewMock() *Mock {
	return &Mock{
		AgentStatusResponse:    &domain.AgentStatus{Status: domain.AgentStatusIdle},
		DashboardStatsResponse: &domain.DashboardStats{},
		RevenueStatsResponse:   &domain.RevenueStats{},
		CreateWorkflowID:       "mock-workflow-id",
		Calls:                  make(map[string]int),
	}
}

func (m *Mock) record(method string) {
	m.Calls[method]++
}

// CallCount returns how often the named method was invoked.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[method]
}

func (m *Mock) AgentStatus(ctx context.Context) (*domain.AgentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("AgentStatus")
	return m.AgentStatusResponse, m.AgentStatusError
}

func (m *Mock) Workflows(ctx context.Context) ([]domain.Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Workflows")
	return m.WorkflowsResponse, m.WorkflowsError
}

func (m *Mock) Workflow(ctx context.Context, id string) (*domain.Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Workflow")
	return m.WorkflowResponse, m.WorkflowError
}

func (m *Mock) CreateWorkflow(ctx context.Context, req *domain.WorkflowCreate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreateWorkflow")
	m.CreateWorkflowCalls = append(m.CreateWorkflowCalls, *req)
	return m.CreateWorkflowID, m.CreateWorkflowError
}

func (m *Mock) UpdateWorkflowStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateWorkflowStatus")
	m.UpdateWorkflowStatusCalls = append(m.UpdateWorkflowStatusCalls, struct{ ID, Status string }{id, status})
	return m.UpdateWorkflowStatusError
}

func (m *Mock) Trends(ctx context.Context) ([]domain.Trend, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Trends")
	return m.TrendsResponse, m.TrendsError
}

func (m *Mock) RefreshTrends(ctx context.Context) ([]domain.Trend, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RefreshTrends")
	return m.RefreshTrendsResponse, m.RefreshTrendsError
}

func (m *Mock) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DashboardStats")
	return m.DashboardStatsResponse, m.DashboardStatsError
}

func (m *Mock) AgentLogs(ctx context.Context) ([]domain.AgentLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("AgentLogs")
	return m.AgentLogsResponse, m.AgentLogsError
}

func (m *Mock) RevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RevenueStats")
	return m.RevenueStatsResponse, m.RevenueStatsError
}

func (m *Mock) RevenueOpportunities(ctx context.Context) ([]domain.RevenueOpportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RevenueOpportunities")
	return m.RevenueOpportunitiesResponse, m.RevenueOpportunitiesError
}

func (m *Mock) NextActions(ctx context.Context) ([]domain.NextAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("NextActions")
	return m.NextActionsResponse, m.NextActionsError
}

func (m *Mock) Products(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Products")
	return m.ProductsResponse, m.ProductsError
}

func (m *Mock) CreateTemplateWorkflow(ctx context.Context, opportunity map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreateTemplateWorkflow")
	return m.CreateTemplateWorkflowID, m.CreateTemplateWorkflowError
}
