package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"github.com/Harshitk-cp/agentdeck/internal/service"
	"github.com/go-chi/chi/v5"
)

type WorkflowHandler struct {
	orch *service.Orchestrator
}

func NewWorkflowHandler(orch *service.Orchestrator) *WorkflowHandler {
	return &WorkflowHandler{orch: orch}
}

type createWorkflowRequest struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Type                string           `json:"type"`
	Steps               []map[string]any `json:"steps"`
	Priority            int              `json:"priority"`
	TargetProfitability float64          `json:"target_profitability"`
}

type createWorkflowResponse struct {
	ID string `json:"id"`
}

func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}
	if req.Priority == 0 {
		req.Priority = 1
	}

	payload := &domain.WorkflowCreate{
		Name:                req.Name,
		Description:         req.Description,
		Type:                req.Type,
		Steps:               req.Steps,
		Priority:            req.Priority,
		TargetProfitability: req.TargetProfitability,
	}

	id, err := h.orch.TriggerAction(r.Context(), service.ActionCreateWorkflow, payload)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to create workflow")
		return
	}

	writeJSON(w, http.StatusCreated, createWorkflowResponse{ID: id})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *WorkflowHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	update := &service.WorkflowStatusUpdate{ID: id, Status: req.Status}
	if _, err := h.orch.TriggerAction(r.Context(), service.ActionUpdateWorkflowStatus, update); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "failed to update workflow status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}
