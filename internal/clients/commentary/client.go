// Package commentary provides free-text commentary for pipeline runs via the
// OpenAI chat completions API.
package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client for the OpenAI chat completions API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new commentary client. An empty apiKey disables the
// client; callers should check Enabled() before use.
func NewClient(apiKey, model string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.openai.com/v1",
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log.With().Str("client", "commentary").Logger(),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ForRun produces a short prose commentary for a run given its qubit count
// and accuracy percentage.
func (c *Client) ForRun(ctx context.Context, qubits int, accuracy float64) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("commentary client is not configured")
	}

	prompt := fmt.Sprintf(
		"A quantum-inspired bit-detection simulation using %d qubits just finished with %.2f%% detection accuracy. "+
			"Write two sentences of plain-language commentary on this result for a dashboard.",
		qubits, accuracy,
	)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal commentary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build commentary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("commentary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(payload)).
			Msg("Commentary API returned non-200")
		return "", fmt.Errorf("commentary API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode commentary response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("commentary API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
