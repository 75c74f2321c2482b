package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type historyRecord struct {
	ProblemSlug  string    `json:"problem_slug"`
	ProblemTitle string    `json:"problem_title"`
	Language     string    `json:"language"`
	Category     string    `json:"category"`
	Path         string    `json:"path"`
	RemoteURL    string    `json:"remote_url"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func fetchHistory(baseURL string) ([]historyRecord, error) {
	resp, err := http.Get(baseURL + "/history")
	if err != nil {
		return nil, fmt.Errorf("failed to reach service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from /history", resp.StatusCode)
	}

	var body struct {
		Status string          `json:"status"`
		Data   []historyRecord `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return body.Data, nil
}

func main() {
	baseURL := flag.String("addr", "http://localhost:8080", "address of the hrsync service")
	flag.Parse()

	records, err := fetchHistory(*baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(*baseURL, records))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
