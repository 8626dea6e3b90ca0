package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// Client talks to the AI Agent Manager backend over HTTP. Failures are
// returned as errors and never retried; the caller's next scheduled
// refresh is the retry mechanism.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetRateLimit caps outbound requests so overlapping poll ticks cannot
// stampede the backend. Unset, the client is unlimited.
func (c *Client) SetRateLimit(rps float64, burst int) {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, excerpt(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// excerpt trims an error body so upstream HTML error pages don't flood logs.
func excerpt(b []byte) string {
	const max = 256
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

func (c *Client) AgentStatus(ctx context.Context) (*domain.AgentStatus, error) {
	var status domain.AgentStatus
	if err := c.get(ctx, "/api/agent/status", &status); err != nil {
		return nil, fmt.Errorf("fetch agent status: %w", err)
	}
	return &status, nil
}

func (c *Client) Workflows(ctx context.Context) ([]domain.Workflow, error) {
	var workflows []domain.Workflow
	if err := c.get(ctx, "/api/workflows", &workflows); err != nil {
		return nil, fmt.Errorf("fetch workflows: %w", err)
	}
	return workflows, nil
}

func (c *Client) Workflow(ctx context.Context, id string) (*domain.Workflow, error) {
	var workflow domain.Workflow
	if err := c.get(ctx, "/api/workflows/"+url.PathEscape(id), &workflow); err != nil {
		return nil, fmt.Errorf("fetch workflow %s: %w", id, err)
	}
	return &workflow, nil
}

type createWorkflowResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (c *Client) CreateWorkflow(ctx context.Context, req *domain.WorkflowCreate) (string, error) {
	var resp createWorkflowResponse
	if err := c.do(ctx, http.MethodPost, "/api/workflows", req, &resp); err != nil {
		return "", fmt.Errorf("create workflow: %w", err)
	}
	return resp.ID, nil
}

func (c *Client) UpdateWorkflowStatus(ctx context.Context, id, status string) error {
	path := fmt.Sprintf("/api/workflows/%s/status?status=%s", url.PathEscape(id), url.QueryEscape(status))
	if err := c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		return fmt.Errorf("update workflow %s status: %w", id, err)
	}
	return nil
}

func (c *Client) Trends(ctx context.Context) ([]domain.Trend, error) {
	var trends []domain.Trend
	if err := c.get(ctx, "/api/trends", &trends); err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}
	return trends, nil
}

type refreshTrendsResponse struct {
	Message string         `json:"message"`
	Trends  []domain.Trend `json:"trends"`
}

// RefreshTrends asks the backend to recompute trends and returns the
// newly detected ones. The trends slot itself is refreshed separately.
func (c *Client) RefreshTrends(ctx context.Context) ([]domain.Trend, error) {
	var resp refreshTrendsResponse
	if err := c.get(ctx, "/api/trends/refresh", &resp); err != nil {
		return nil, fmt.Errorf("refresh trends: %w", err)
	}
	return resp.Trends, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, fmt.Errorf("fetch dashboard stats: %w", err)
	}
	return &stats, nil
}

func (c *Client) AgentLogs(ctx context.Context) ([]domain.AgentLog, error) {
	var logs []domain.AgentLog
	if err := c.get(ctx, "/api/agent/logs", &logs); err != nil {
		return nil, fmt.Errorf("fetch agent logs: %w", err)
	}
	return logs, nil
}

func (c *Client) RevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	var stats domain.RevenueStats
	if err := c.get(ctx, "/api/revenue/stats", &stats); err != nil {
		return nil, fmt.Errorf("fetch revenue stats: %w", err)
	}
	return &stats, nil
}

func (c *Client) RevenueOpportunities(ctx context.Context) ([]domain.RevenueOpportunity, error) {
	var opportunities []domain.RevenueOpportunity
	if err := c.get(ctx, "/api/revenue/opportunities", &opportunities); err != nil {
		return nil, fmt.Errorf("fetch revenue opportunities: %w", err)
	}
	return opportunities, nil
}

func (c *Client) NextActions(ctx context.Context) ([]domain.NextAction, error) {
	var actions []domain.NextAction
	if err := c.get(ctx, "/api/revenue/next-actions", &actions); err != nil {
		return nil, fmt.Errorf("fetch next actions: %w", err)
	}
	return actions, nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/api/products", &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

type createTemplateWorkflowResponse struct {
	Message    string `json:"message"`
	WorkflowID string `json:"workflow_id"`
}

func (c *Client) CreateTemplateWorkflow(ctx context.Context, opportunity map[string]any) (string, error) {
	var resp createTemplateWorkflowResponse
	if err := c.do(ctx, http.MethodPost, "/api/revenue/create-template-workflow", opportunity, &resp); err != nil {
		return "", fmt.Errorf("create template workflow: %w", err)
	}
	return resp.WorkflowID, nil
}
