package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"evervital-bot/models"
)

const (
	// historyCapacity bounds the transcript; oldest turns are dropped first
	historyCapacity = 10
	// minSendInterval is the minimum gap between outbound requests
	minSendInterval = 3000 * time.Millisecond

	sessionSystemPrompt = "You are the Evervital assistant, helping members of a health subscription service " +
		"with questions about at-home lab tests, hormone programs, membership, shipping, and results. " +
		"Keep answers brief, friendly, and factual. Do not give medical diagnoses; suggest talking to a " +
		"clinician for anything beyond general product questions."
)

// SendStatus tags the outcome of a SessionClient.Send call
type SendStatus string

const (
	SendDelivered   SendStatus = "delivered"
	SendThrottled   SendStatus = "throttled"
	SendUnavailable SendStatus = "unavailable"
)

// SendResult is the outcome of one send: Reply is set for delivered,
// Reason for unavailable.
type SendResult struct {
	Status SendStatus
	Reply  string
	Reason string
}

// SessionClient holds one conversation's bounded transcript and issues
// throttled calls to the chat endpoint. It performs no local fallback: on
// throttled or unavailable outcomes the caller decides what to do next
// (typically answer via Classify, which never fails).
type SessionClient struct {
	mu          sync.Mutex
	id          string
	endpoint    string
	client      *http.Client
	history     []models.ConversationTurn
	lastRequest time.Time
	inFlight    bool
	now         func() time.Time
}

// NewSessionClient creates a session client targeting the given chat endpoint
func NewSessionClient(endpoint string) *SessionClient {
	return &SessionClient{
		id:       uuid.NewString(),
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		history:  make([]models.ConversationTurn, 0, historyCapacity),
		now:      time.Now,
	}
}

// ID returns the session identifier
func (s *SessionClient) ID() string {
	return s.id
}

// Send appends userText to the transcript and requests a remote reply.
// Overlapping sends and sends within the minimum interval are rejected as
// throttled without touching the network or the transcript.
func (s *SessionClient) Send(ctx context.Context, userText string) SendResult {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		slog.Warn("Send rejected: request already in flight", "sessionID", s.id)
		return SendResult{Status: SendThrottled}
	}
	now := s.now()
	if now.Sub(s.lastRequest) < minSendInterval {
		s.mu.Unlock()
		return SendResult{Status: SendThrottled}
	}
	s.lastRequest = now
	s.inFlight = true
	s.history = appendTrimmed(s.history, models.ConversationTurn{Role: "user", Content: userText})
	messages := make([]models.ConversationTurn, len(s.history))
	copy(messages, s.history)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	reply, err := s.post(ctx, messages)
	if err != nil {
		slog.Warn("Chat endpoint unavailable", "sessionID", s.id, "error", err)
		return SendResult{Status: SendUnavailable, Reason: err.Error()}
	}

	s.mu.Lock()
	s.history = appendTrimmed(s.history, models.ConversationTurn{Role: "assistant", Content: reply})
	s.mu.Unlock()

	return SendResult{Status: SendDelivered, Reply: reply}
}

func (s *SessionClient) post(ctx context.Context, messages []models.ConversationTurn) (string, error) {
	payload := models.ChatRequest{
		Messages:     messages,
		SystemPrompt: sessionSystemPrompt,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %s", resp.Status)
	}

	var reply models.ChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return "", fmt.Errorf("malformed chat response: %w", err)
	}

	return reply.Reply, nil
}

// History returns a copy of the current transcript in chronological order
func (s *SessionClient) History() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Reset clears the transcript. The throttle timer is deliberately left
// intact so a reset cannot be used to bypass the minimum interval.
func (s *SessionClient) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history[:0]
}

func appendTrimmed(history []models.ConversationTurn, turn models.ConversationTurn) []models.ConversationTurn {
	history = append(history, turn)
	if len(history) > historyCapacity {
		history = history[len(history)-historyCapacity:]
	}
	return history
}
