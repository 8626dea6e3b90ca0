// Seed script for pushing demo workflows through a running agentdeck daemon.
// Run with: go run ./scripts/seed.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("AGENTDECK_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	baseURL := os.Getenv("AGENTDECK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}

	workflows := []map[string]any{
		{
			"name":                 "Notion Template: Freelancer CRM",
			"description":          "Research, build and list a freelancer CRM template",
			"type":                 "content_creation",
			"priority":             1,
			"target_profitability": 150,
		},
		{
			"name":                 "Etsy SEO pass",
			"description":          "Optimize titles and tags for existing listings",
			"type":                 "seo_optimization",
			"priority":             2,
			"target_profitability": 80,
		},
		{
			"name":                 "Trend scan: productivity niche",
			"description":          "Scan trend sources for new productivity keywords",
			"type":                 "market_research",
			"priority":             3,
			"target_profitability": 0,
		},
	}

	for _, wf := range workflows {
		id, err := postJSON(baseURL+"/v1/workflows", wf)
		if err != nil {
			log.Fatalf("create workflow %q: %v", wf["name"], err)
		}
		fmt.Printf("created workflow %s (%s)\n", id, wf["name"])
	}

	resp, err := http.Post(baseURL+"/v1/trends/refresh", "application/json", nil)
	if err != nil {
		log.Fatalf("refresh trends: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("refresh trends: status %d", resp.StatusCode)
	}
	fmt.Println("trends refreshed")
	fmt.Println("\nDone. Check /v1/snapshot to see the seeded state.")
}

func postJSON(url string, body map[string]any) (string, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}
