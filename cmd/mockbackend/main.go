// mockbackend is a stand-in AI Agent Manager backend for local
// development, serving canned but slowly evolving data on the same
// endpoints the real service exposes.
//
// Run with: go run ./cmd/mockbackend
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type store struct {
	mu        sync.Mutex
	status    domain.AgentStatus
	workflows []domain.Workflow
	trends    []domain.Trend
	logs      []domain.AgentLog
}

func newStore() *store {
	task := "Scanning r/Entrepreneur for trends"
	now := time.Now()
	s := &store{
		status: domain.AgentStatus{
			Status:       domain.AgentStatusActive,
			CurrentTask:  &task,
			LastActivity: now,
		},
	}
	s.trends = []domain.Trend{
		{
			ID:                     uuid.NewString(),
			Keyword:                "AI productivity planner",
			Source:                 "reddit_entrepreneur",
			TrendScore:             8.4,
			Volume:                 312,
			ProfitabilityPotential: 0.7,
			DetectedAt:             now,
			ProductOpportunities:   []string{"Productivity Tool", "Digital Template"},
		},
	}
	s.addWorkflow(domain.WorkflowCreate{
		Name:        "Create Productivity Planner - Revenue Target: $22",
		Description: "Design and list a productivity planner template",
		Type:        "revenue_generation",
		Priority:    4,
	})
	return s
}

func (s *store) addWorkflow(req domain.WorkflowCreate) domain.Workflow {
	wf := domain.Workflow{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		Type:                req.Type,
		Steps:               req.Steps,
		Status:              domain.WorkflowStatusPending,
		Priority:            req.Priority,
		TargetProfitability: req.TargetProfitability,
		CreatedAt:           time.Now(),
	}
	s.workflows = append([]domain.Workflow{wf}, s.workflows...)
	s.logs = append(s.logs, domain.AgentLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    "Created workflow: " + req.Name,
		Reasoning: "requested via API",
	})
	return wf
}

// tick advances running workflows so polling clients see movement.
func (s *store) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workflows {
		wf := &s.workflows[i]
		switch wf.Status {
		case domain.WorkflowStatusPending:
			now := time.Now()
			wf.Status = domain.WorkflowStatusRunning
			wf.StartedAt = &now
		case domain.WorkflowStatusRunning:
			wf.Progress += 10 + rand.Intn(15)
			if wf.Progress >= 100 {
				now := time.Now()
				wf.Progress = 100
				wf.Status = domain.WorkflowStatusCompleted
				wf.CompletedAt = &now
			}
		}
	}
	s.status.DecisionsMade++
	s.status.LastActivity = time.Now()
}

func main() {
	addr := flag.String("addr", ":8001", "listen address")
	flag.Parse()

	s := newStore()
	go func() {
		for range time.Tick(3 * time.Second) {
			s.tick()
		}
	}()

	r := chi.NewRouter()

	r.Get("/api/agent/status", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		respond(w, s.status)
	})

	r.Get("/api/workflows", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		respond(w, s.workflows)
	})

	r.Post("/api/workflows", func(w http.ResponseWriter, req *http.Request) {
		var body domain.WorkflowCreate
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		wf := s.addWorkflow(body)
		s.mu.Unlock()
		respond(w, map[string]string{"message": "Workflow created", "id": wf.ID})
	})

	r.Get("/api/workflows/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, wf := range s.workflows {
			if wf.ID == id {
				respond(w, wf)
				return
			}
		}
		http.Error(w, `{"detail":"Workflow not found"}`, http.StatusNotFound)
	})

	r.Put("/api/workflows/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		status := req.URL.Query().Get("status")
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.workflows {
			if s.workflows[i].ID == id {
				s.workflows[i].Status = status
				respond(w, map[string]string{"message": "Status updated"})
				return
			}
		}
		http.Error(w, `{"detail":"Workflow not found"}`, http.StatusNotFound)
	})

	r.Get("/api/trends", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		respond(w, s.trends)
	})

	r.Get("/api/trends/refresh", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		trend := domain.Trend{
			ID:                     uuid.NewString(),
			Keyword:                "Notion budget tracker",
			Source:                 "reddit_entrepreneur",
			TrendScore:             float64(rand.Intn(100)) / 10,
			Volume:                 rand.Intn(500),
			ProfitabilityPotential: rand.Float64(),
			DetectedAt:             time.Now(),
			ProductOpportunities:   []string{"Digital Template"},
		}
		s.trends = append([]domain.Trend{trend}, s.trends...)
		s.mu.Unlock()
		respond(w, map[string]any{"message": "Found 1 new trends", "trends": []domain.Trend{trend}})
	})

	r.Get("/api/dashboard/stats", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		stats := domain.DashboardStats{
			TotalWorkflows: len(s.workflows),
			TotalTrends:    len(s.trends),
			AgentStatus:    s.status.Status,
		}
		for _, wf := range s.workflows {
			switch wf.Status {
			case domain.WorkflowStatusRunning:
				stats.ActiveWorkflows++
			case domain.WorkflowStatusCompleted:
				stats.CompletedWorkflows++
			}
		}
		respond(w, stats)
	})

	r.Get("/api/agent/logs", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		respond(w, s.logs)
	})

	r.Get("/api/revenue/stats", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, domain.RevenueStats{
			TotalRevenueTarget:   22,
			AverageTemplatePrice: 22,
		})
	})

	r.Get("/api/revenue/opportunities", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, []domain.RevenueOpportunity{{
			ID:              uuid.NewString(),
			TemplateType:    "Productivity Planner",
			TrendingKeyword: "AI productivity planner",
			MarketDemand:    8.4,
			EstimatedPrice:  22,
			Difficulty:      "Easy",
			TimeToCreate:    "2-4 hours",
			Platforms:       []string{"Etsy", "Gumroad"},
			ProfitPotential: 15.4,
			CreatedAt:       time.Now(),
			Status:          "opportunity_identified",
		}})
	})

	r.Get("/api/revenue/next-actions", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		actions := []domain.NextAction{}
		for _, wf := range s.workflows {
			if wf.Status != domain.WorkflowStatusRunning {
				continue
			}
			actions = append(actions, domain.NextAction{
				WorkflowID:    wf.ID,
				WorkflowName:  wf.Name,
				NextStep:      "Create template",
				Description:   "Design and build the template using free tools",
				Tools:         []string{"Canva", "Google Docs"},
				EstimatedTime: 180,
				Progress:      wf.Progress,
			})
		}
		respond(w, actions)
	})

	r.Get("/api/products", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, []domain.Product{})
	})

	r.Post("/api/revenue/create-template-workflow", func(w http.ResponseWriter, req *http.Request) {
		var opportunity map[string]any
		if err := json.NewDecoder(req.Body).Decode(&opportunity); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		name, _ := opportunity["template_type"].(string)
		s.mu.Lock()
		wf := s.addWorkflow(domain.WorkflowCreate{
			Name:     "Create " + name,
			Type:     "revenue_generation",
			Priority: 4,
		})
		s.mu.Unlock()
		respond(w, map[string]any{"message": "Template workflow created", "workflow_id": wf.ID})
	})

	log.Printf("mock backend listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
