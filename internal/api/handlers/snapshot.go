package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"github.com/Harshitk-cp/agentdeck/internal/service"
	"github.com/go-chi/chi/v5"
)

type SnapshotHandler struct {
	orch *service.Orchestrator
}

func NewSnapshotHandler(orch *service.Orchestrator) *SnapshotHandler {
	return &SnapshotHandler{orch: orch}
}

type snapshotResponse struct {
	Loading  bool            `json:"loading"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshotResponse{
		Loading:  h.orch.Loading(),
		Snapshot: h.orch.Snapshot(),
	})
}

type slotResponse struct {
	Slot  string          `json:"slot"`
	Meta  domain.SlotMeta `json:"meta"`
	Value any             `json:"value"`
}

func (h *SnapshotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	meta, ok := h.orch.SlotMeta(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown slot: "+name)
		return
	}

	writeJSON(w, http.StatusOK, slotResponse{
		Slot:  name,
		Meta:  meta,
		Value: slotValue(h.orch.Snapshot(), name),
	})
}

// RefreshSlot forces a single slot fetch. A failed fetch returns 502
// with the retained prior value; the slot is never cleared.
func (h *SnapshotHandler) RefreshSlot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	err := h.orch.RefreshSlot(r.Context(), name)
	if errors.Is(err, service.ErrUnknownSlot) {
		writeError(w, http.StatusNotFound, "unknown slot: "+name)
		return
	}

	meta, _ := h.orch.SlotMeta(name)
	resp := slotResponse{
		Slot:  name,
		Meta:  meta,
		Value: slotValue(h.orch.Snapshot(), name),
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func slotValue(snap domain.Snapshot, name string) any {
	switch name {
	case domain.SlotAgentStatus:
		return snap.AgentStatus
	case domain.SlotWorkflows:
		return snap.Workflows
	case domain.SlotTrends:
		return snap.Trends
	case domain.SlotDashboardStats:
		return snap.DashboardStats
	case domain.SlotAgentLogs:
		return snap.AgentLogs
	case domain.SlotRevenueStats:
		return snap.RevenueStats
	case domain.SlotRevenueOpportunities:
		return snap.RevenueOpportunities
	case domain.SlotNextActions:
		return snap.NextActions
	case domain.SlotProducts:
		return snap.Products
	default:
		return nil
	}
}
