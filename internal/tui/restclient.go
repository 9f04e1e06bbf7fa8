package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"codeberg.org/placewise/server/api/rest/plans"
	apierrors "codeberg.org/placewise/server/internal/errors"
	tea "github.com/charmbracelet/bubbletea"
)

// timeout for plan requests
const planRequestTimeout = 60 * time.Second

// manages HTTP requests to the plans REST API
type PlanClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a plan client from PLACEWISE_API_ENDPOINT and PLACEWISE_TOKEN
func NewPlanClient() *PlanClient {
	endpoint := os.Getenv("PLACEWISE_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &PlanClient{
		endpoint: endpoint,
		token:    os.Getenv("PLACEWISE_TOKEN"),
		httpClient: &http.Client{
			Timeout: planRequestTimeout,
		},
	}
}

// sends a plan request to the REST API
func (c *PlanClient) CreatePlan(ctx context.Context, req plans.CreatePlanRequest) (*plans.PlanResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/plans", c.endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apierrors.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return nil, fmt.Errorf("%s: %s (%s)", errResp.Error, errResp.Message, errResp.Details)
			}
			return nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var plan plans.PlanResponse
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &plan, nil
}

// returns a tea.Cmd that sends a plan request
func (c *PlanClient) CreatePlanCmd(req plans.CreatePlanRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), planRequestTimeout)
		defer cancel()

		plan, err := c.CreatePlan(ctx, req)
		if err != nil {
			return PlanErrorMsg{err: err}
		}

		return PlanResultMsg{plan: plan}
	}
}
