package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/agentdeck/internal/service"
)

// ActionHandler exposes the remaining one-shot backend actions.
type ActionHandler struct {
	orch *service.Orchestrator
}

func NewActionHandler(orch *service.Orchestrator) *ActionHandler {
	return &ActionHandler{orch: orch}
}

// RefreshTrends triggers trend recomputation on the backend, then
// refreshes the trends slot so the response reflects the new data.
func (h *ActionHandler) RefreshTrends(w http.ResponseWriter, r *http.Request) {
	if _, err := h.orch.TriggerAction(r.Context(), service.ActionRefreshTrends, nil); err != nil {
		writeError(w, http.StatusBadGateway, "failed to refresh trends")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trends": h.orch.Snapshot().Trends,
	})
}

// CreateTemplateWorkflow forwards an opportunity document to the backend
// to spin up a revenue workflow from it.
func (h *ActionHandler) CreateTemplateWorkflow(w http.ResponseWriter, r *http.Request) {
	var opportunity map[string]any
	if err := json.NewDecoder(r.Body).Decode(&opportunity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(opportunity) == 0 {
		writeError(w, http.StatusBadRequest, "opportunity is required")
		return
	}

	id, err := h.orch.TriggerAction(r.Context(), service.ActionCreateTemplateWorkflow, opportunity)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to create template workflow")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"workflow_id": id})
}
