package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshitk-cp/agentdeck/internal/backend"
	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"github.com/Harshitk-cp/agentdeck/internal/service"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*App, *backend.Mock) {
	t.Helper()
	mock := backend.NewMock()
	orch := service.NewOrchestrator(mock, service.NewMetrics(nil), zap.NewNop(), service.Options{RevenueSlots: true})
	orch.LoadAll(context.Background())
	return NewApp(orch, mock, nil, zap.NewNop()), mock
}

func doRequest(app *App, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
	if body["backend"] != "ok" {
		t.Errorf("expected backend ok, got %q", body["backend"])
	}
}

func TestHealthEndpoint_BackendDown(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.AgentStatusError = errors.New("connection refused")

	rec := doRequest(app, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 even with backend down, got %d", rec.Code)
	}

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["backend"] != "unreachable" {
		t.Errorf("expected backend unreachable, got %q", body["backend"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if _, ok := body["uptime_seconds"]; !ok {
		t.Error("expected uptime_seconds in metrics")
	}
	if loading, ok := body["loading"].(bool); !ok || loading {
		t.Error("expected loading false after LoadAll")
	}
}

func TestGetSnapshot(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodGet, "/v1/snapshot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Loading  bool            `json:"loading"`
		Snapshot domain.Snapshot `json:"snapshot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Loading {
		t.Error("expected loading false")
	}
	if body.Snapshot.AgentStatus == nil {
		t.Error("expected agent status to be populated")
	}
	if _, ok := body.Snapshot.Slots[domain.SlotAgentStatus]; !ok {
		t.Error("expected agent_status slot meta")
	}
}

func TestGetSlot(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodGet, "/v1/slots/agent_status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Slot string          `json:"slot"`
		Meta domain.SlotMeta `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Slot != domain.SlotAgentStatus {
		t.Errorf("expected slot agent_status, got %q", body.Slot)
	}
	if body.Meta.Version != 1 {
		t.Errorf("expected version 1 after initial load, got %d", body.Meta.Version)
	}
}

func TestGetSlot_Unknown(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodGet, "/v1/slots/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRefreshSlot(t *testing.T) {
	app, mock := setupTestApp(t)
	task := "researching"
	mock.AgentStatusResponse = &domain.AgentStatus{Status: domain.AgentStatusActive, CurrentTask: &task}

	rec := doRequest(app, http.MethodPost, "/v1/slots/agent_status/refresh", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Meta  domain.SlotMeta    `json:"meta"`
		Value domain.AgentStatus `json:"value"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Meta.Version != 2 {
		t.Errorf("expected version 2, got %d", body.Meta.Version)
	}
	if body.Value.Status != domain.AgentStatusActive {
		t.Errorf("expected active status, got %q", body.Value.Status)
	}
}

func TestRefreshSlot_FailureReturns502WithRetainedValue(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.AgentStatusError = errors.New("backend exploded")

	rec := doRequest(app, http.MethodPost, "/v1/slots/agent_status/refresh", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var body struct {
		Meta  domain.SlotMeta    `json:"meta"`
		Value domain.AgentStatus `json:"value"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Meta.Version != 1 {
		t.Errorf("expected retained version 1, got %d", body.Meta.Version)
	}
	if body.Meta.LastError == "" {
		t.Error("expected last_error to be recorded")
	}
	if body.Value.Status != domain.AgentStatusIdle {
		t.Errorf("expected retained idle status, got %q", body.Value.Status)
	}
}

func TestCreateWorkflow(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.CreateWorkflowID = "wf-99"

	payload := []byte(`{"name":"SEO pass","description":"optimize listings","type":"seo_optimization"}`)
	rec := doRequest(app, http.MethodPost, "/v1/workflows", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["id"] != "wf-99" {
		t.Errorf("expected workflow id wf-99, got %q", body["id"])
	}
	if len(mock.CreateWorkflowCalls) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(mock.CreateWorkflowCalls))
	}
	if mock.CreateWorkflowCalls[0].Priority != 1 {
		t.Errorf("expected defaulted priority 1, got %d", mock.CreateWorkflowCalls[0].Priority)
	}
}

func TestCreateWorkflow_Validation(t *testing.T) {
	app, mock := setupTestApp(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{`},
		{"missing name", `{"description":"d","type":"t"}`},
		{"missing description", `{"name":"n","type":"t"}`},
		{"missing type", `{"name":"n","description":"d"}`},
	}
	for _, tc := range cases {
		rec := doRequest(app, http.MethodPost, "/v1/workflows", []byte(tc.payload))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
	if len(mock.CreateWorkflowCalls) != 0 {
		t.Errorf("expected no backend calls for invalid requests, got %d", len(mock.CreateWorkflowCalls))
	}
}

func TestCreateWorkflow_BackendFailure(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.CreateWorkflowError = errors.New("backend exploded")

	payload := []byte(`{"name":"n","description":"d","type":"t"}`)
	rec := doRequest(app, http.MethodPost, "/v1/workflows", payload)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestUpdateWorkflowStatus(t *testing.T) {
	app, mock := setupTestApp(t)

	rec := doRequest(app, http.MethodPut, "/v1/workflows/wf-1/status", []byte(`{"status":"paused"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(mock.UpdateWorkflowStatusCalls) != 1 {
		t.Fatalf("expected 1 update call, got %d", len(mock.UpdateWorkflowStatusCalls))
	}
	call := mock.UpdateWorkflowStatusCalls[0]
	if call.ID != "wf-1" || call.Status != "paused" {
		t.Errorf("unexpected call: %+v", call)
	}
}

func TestUpdateWorkflowStatus_MissingStatus(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodPut, "/v1/workflows/wf-1/status", []byte(`{}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRefreshTrends(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.TrendsResponse = []domain.Trend{{ID: "t1", Keyword: "digital planner"}}

	rec := doRequest(app, http.MethodPost, "/v1/trends/refresh", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Trends []domain.Trend `json:"trends"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body.Trends) != 1 || body.Trends[0].Keyword != "digital planner" {
		t.Errorf("expected refreshed trends in response, got %+v", body.Trends)
	}
	if got := mock.CallCount("RefreshTrends"); got != 1 {
		t.Errorf("expected 1 RefreshTrends call, got %d", got)
	}
}

func TestCreateTemplateWorkflow(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.CreateTemplateWorkflowID = "wf-tpl"

	payload := []byte(`{"template_type":"Productivity Planner","estimated_revenue":150}`)
	rec := doRequest(app, http.MethodPost, "/v1/revenue/template-workflows", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["workflow_id"] != "wf-tpl" {
		t.Errorf("expected workflow_id wf-tpl, got %q", body["workflow_id"])
	}
	if got := mock.CallCount("CreateTemplateWorkflow"); got != 1 {
		t.Errorf("expected 1 CreateTemplateWorkflow call, got %d", got)
	}
}

func TestCreateTemplateWorkflow_EmptyBody(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodPost, "/v1/revenue/template-workflows", []byte(`{}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := doRequest(app, http.MethodGet, "/health", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}
