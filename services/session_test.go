package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evervital-bot/models"
)

func newChatStub(t *testing.T, hits *atomic.Int64, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ChatReply{Reply: reply})
	}))
}

// fakeClock lets tests step past the throttle interval without sleeping
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time          { return f.current }
func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func TestSendDelivered(t *testing.T) {
	var hits atomic.Int64
	srv := newChatStub(t, &hits, "We ship within 1-2 business days.")
	defer srv.Close()

	client := NewSessionClient(srv.URL)
	result := client.Send(context.Background(), "when does my kit ship?")

	require.Equal(t, SendDelivered, result.Status)
	assert.Equal(t, "We ship within 1-2 business days.", result.Reply)

	history := client.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.ConversationTurn{Role: "user", Content: "when does my kit ship?"}, history[0])
	assert.Equal(t, models.ConversationTurn{Role: "assistant", Content: "We ship within 1-2 business days."}, history[1])
}

func TestSendThrottledWithinInterval(t *testing.T) {
	var hits atomic.Int64
	srv := newChatStub(t, &hits, "ok")
	defer srv.Close()

	clock := &fakeClock{current: time.Now()}
	client := NewSessionClient(srv.URL)
	client.now = clock.now

	first := client.Send(context.Background(), "hello")
	require.Equal(t, SendDelivered, first.Status)

	clock.advance(time.Second)
	second := client.Send(context.Background(), "hello again")
	assert.Equal(t, SendThrottled, second.Status)
	assert.Equal(t, int64(1), hits.Load(), "a throttled send must not reach the network")

	clock.advance(3 * time.Second)
	third := client.Send(context.Background(), "still there?")
	assert.Equal(t, SendDelivered, third.Status)
}

func TestHistoryBoundedFIFO(t *testing.T) {
	var hits atomic.Int64
	srv := newChatStub(t, &hits, "noted")
	defer srv.Close()

	clock := &fakeClock{current: time.Now()}
	client := NewSessionClient(srv.URL)
	client.now = clock.now

	for i := 0; i < 12; i++ {
		clock.advance(5 * time.Second)
		result := client.Send(context.Background(), fmt.Sprintf("message %d", i))
		require.Equal(t, SendDelivered, result.Status)
		assert.LessOrEqual(t, len(client.History()), historyCapacity)
	}

	history := client.History()
	require.Len(t, history, historyCapacity)
	// 12 sends produce 24 turns; only the most recent 10 survive, so the
	// window starts at the user turn of send 7.
	assert.Equal(t, models.ConversationTurn{Role: "user", Content: "message 7"}, history[0])
	assert.Equal(t, models.ConversationTurn{Role: "assistant", Content: "noted"}, history[len(history)-1])
}

func TestSendUnavailableOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Upstream service unavailable"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewSessionClient(srv.URL)
	result := client.Send(context.Background(), "anyone home?")

	require.Equal(t, SendUnavailable, result.Status)
	assert.NotEmpty(t, result.Reason)

	// The user turn stays in the transcript; no assistant turn is added
	history := client.History()
	require.Len(t, history, 1)
	assert.Equal(t, "user", history[0].Role)
}

func TestSendUnavailableOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewSessionClient(srv.URL)
	result := client.Send(context.Background(), "hello")
	assert.Equal(t, SendUnavailable, result.Status)
}

func TestSendUnavailableOnUnreachableEndpoint(t *testing.T) {
	client := NewSessionClient("http://127.0.0.1:1/chat")
	result := client.Send(context.Background(), "hello")
	assert.Equal(t, SendUnavailable, result.Status)
}

func TestResetClearsHistoryNotThrottle(t *testing.T) {
	var hits atomic.Int64
	srv := newChatStub(t, &hits, "ok")
	defer srv.Close()

	clock := &fakeClock{current: time.Now()}
	client := NewSessionClient(srv.URL)
	client.now = clock.now

	require.Equal(t, SendDelivered, client.Send(context.Background(), "hello").Status)
	client.Reset()
	assert.Empty(t, client.History())

	// Reset must not restart the interval timer
	clock.advance(time.Second)
	assert.Equal(t, SendThrottled, client.Send(context.Background(), "hello").Status)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSessionClient("http://localhost/chat")
	b := NewSessionClient("http://localhost/chat")
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
