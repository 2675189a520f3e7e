// Package recommend calls the external model endpoint that turns a user
// profile into a training plan.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpstream signals the model endpoint failed or answered non-200.
var ErrUpstream = errors.New("recommend: upstream error")

// ProfileInput is the feature payload sent to the model.
type ProfileInput struct {
	Age               *int     `json:"age,omitempty"`
	HeightCm          *int     `json:"height_cm,omitempty"`
	WeightKg          *int     `json:"weight_kg,omitempty"`
	Sex               *string  `json:"sex,omitempty"`
	SelectedSports    []string `json:"selected_sports,omitempty"`
	TrainingFrequency *string  `json:"training_frequency,omitempty"`
	HealthConditions  []string `json:"health_conditions,omitempty"`
	ImprovementTarget []string `json:"improvement_targets,omitempty"`
}

// Plan is the generated training plan.
type Plan struct {
	Description string          `json:"description"`
	Difficulty  int             `json:"difficulty"`
	Schedule    json.RawMessage `json:"schedule,omitempty"`
	Exercises   json.RawMessage `json:"exercises,omitempty"`
}

// Client posts profiles to the model endpoint.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewClient constructs a Client. A nil httpClient gets a 30s-timeout
// default; model cold starts are slow.
func NewClient(url, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, token: token, httpClient: httpClient}
}

// Generate requests a plan for the given profile.
func (c *Client) Generate(ctx context.Context, profile ProfileInput) (*Plan, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: model endpoint returned %d", ErrUpstream, resp.StatusCode)
	}

	var plan Plan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: decode plan: %v", ErrUpstream, err)
	}
	return &plan, nil
}
