package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"evervital-bot/config"
	"evervital-bot/models"
)

const anthropicVersion = "2023-06-01"

// ClaudeRequest represents the request to the Anthropic messages API
type ClaudeRequest struct {
	Model     string                    `json:"model"`
	MaxTokens int                       `json:"max_tokens"`
	System    string                    `json:"system,omitempty"`
	Messages  []models.ConversationTurn `json:"messages"`
}

// ContentBlock represents a content block in Claude's response
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ClaudeResponse represents the response from the Anthropic messages API
type ClaudeResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

var upstreamClient = &http.Client{
	Timeout: 30 * time.Second,
}

// GetClaudeReply forwards a sanitized conversation plus a system instruction
// to the upstream model service and returns the first text block of the
// reply. An empty content array yields an empty reply, not an error.
func GetClaudeReply(ctx context.Context, cfg *config.Config, system string, messages []models.ConversationTurn) (string, error) {
	requestBody := ClaudeRequest{
		Model:     cfg.ClaudeModel,
		MaxTokens: cfg.MaxTokens,
		System:    system,
		Messages:  messages,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.AnthropicBaseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cfg.AnthropicAPIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := upstreamClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		// Upstream status and body stay server-side; callers get a generic error.
		slog.Error("Claude API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("claude API error: %s", resp.Status)
	}

	var claudeResp ClaudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", err
	}

	reply := ""
	if len(claudeResp.Content) > 0 {
		reply = claudeResp.Content[0].Text
	}

	slog.Info("Claude response generated",
		"inputTokens", claudeResp.Usage.InputTokens,
		"outputTokens", claudeResp.Usage.OutputTokens,
	)
	return reply, nil
}
