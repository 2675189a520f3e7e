package recommend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/recommend"
)

func intPtr(v int) *int { return &v }

func TestGenerateParsesPlan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))

		var input recommend.ProfileInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.NotNil(t, input.Age)
		assert.Equal(t, 30, *input.Age)

		json.NewEncoder(w).Encode(map[string]any{
			"description": "Three runs a week",
			"difficulty":  2,
			"schedule":    map[string]string{"monday": "easy run"},
		})
	}))
	defer server.Close()

	client := recommend.NewClient(server.URL, "hf-token", nil)
	plan, err := client.Generate(context.Background(), recommend.ProfileInput{Age: intPtr(30)})
	require.NoError(t, err)

	assert.Equal(t, "Three runs a week", plan.Description)
	assert.Equal(t, 2, plan.Difficulty)
	assert.JSONEq(t, `{"monday":"easy run"}`, string(plan.Schedule))
}

func TestGenerateMapsNon200ToUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := recommend.NewClient(server.URL, "", nil)
	_, err := client.Generate(context.Background(), recommend.ProfileInput{})
	assert.ErrorIs(t, err, recommend.ErrUpstream)
}

func TestGenerateTimesOutSlowUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := recommend.NewClient(server.URL, "", &http.Client{Timeout: 50 * time.Millisecond})
	_, err := client.Generate(context.Background(), recommend.ProfileInput{})
	assert.ErrorIs(t, err, recommend.ErrUpstream)
}
