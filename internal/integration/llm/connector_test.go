package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/futig/eco-advisor/internal/config"
	"github.com/futig/eco-advisor/internal/entity"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap/zaptest"
)

func newTestConnector(t *testing.T, url string) *Connector {
	t.Helper()
	return NewConnector(config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:   url,
			Token: "test-key",
		},
		Model:        "mistral-small-latest",
		ChatEndpoint: "/v1/chat/completions",
	}, zaptest.NewLogger(t))
}

func TestConnector_GetAdvice_Request(t *testing.T) {
	var got entity.ChatCompletionRequest
	var auth, path, reqID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get("X-Request-ID")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"  Voici mes conseils.\n"}}]}`))
	}))
	defer srv.Close()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "host/req-7")
	result := newTestConnector(t, srv.URL).GetAdvice(ctx, "mon profil")

	if !result.OK() {
		t.Fatalf("GetAdvice() failed: %v", result.Failure())
	}
	if result.Text() != "Voici mes conseils." {
		t.Errorf("Text() = %q, want trimmed content", result.Text())
	}
	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if reqID != "host/req-7" {
		t.Errorf("X-Request-ID = %q", reqID)
	}
	if path != "/v1/chat/completions" {
		t.Errorf("path = %q", path)
	}
	if got.Model != "mistral-small-latest" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if got.Messages[0].Role != entity.RoleSystem || got.Messages[0].Content != SystemPrompt {
		t.Errorf("system message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != entity.RoleUser || got.Messages[1].Content != "mon profil" {
		t.Errorf("user message = %+v", got.Messages[1])
	}
}

func TestConnector_GetAdvice_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind entity.AdviceFailureKind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Unauthorized"}`, wantKind: entity.AdviceFailureAuth},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantKind: entity.AdviceFailureAuth},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantKind: entity.AdviceFailureRemote},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantKind: entity.AdviceFailureRemote},
		{name: "malformed body", status: http.StatusOK, body: `{"choices":`, wantKind: entity.AdviceFailureMalformed},
		{name: "no choices", status: http.StatusOK, body: `{"id":"x","choices":[]}`, wantKind: entity.AdviceFailureMalformed},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`, wantKind: entity.AdviceFailureEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			result := newTestConnector(t, srv.URL).GetAdvice(context.Background(), "prompt")

			if result.OK() {
				t.Fatal("GetAdvice() succeeded, want failure")
			}
			if result.Text() != "" {
				t.Errorf("Text() = %q, want empty", result.Text())
			}
			if kind := result.Failure().Kind; kind != tt.wantKind {
				t.Errorf("failure kind = %s, want %s", kind, tt.wantKind)
			}
			if !strings.HasPrefix(result.Message(), "Erreur API Mistral") {
				t.Errorf("Message() = %q", result.Message())
			}
			if n := atomic.LoadInt32(&calls); n != 1 {
				t.Errorf("server called %d times, want exactly 1", n)
			}
		})
	}
}

func TestConnector_GetAdvice_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := newTestConnector(t, url).GetAdvice(context.Background(), "prompt")

	if result.OK() {
		t.Fatal("GetAdvice() succeeded, want failure")
	}
	if kind := result.Failure().Kind; kind != entity.AdviceFailureNetwork {
		t.Errorf("failure kind = %s, want %s", kind, entity.AdviceFailureNetwork)
	}
}

func TestConnector_GetAdvice_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestConnector(t, srv.URL).GetAdvice(ctx, "prompt")
	if result.OK() {
		t.Fatal("GetAdvice() succeeded with a cancelled context")
	}
	if kind := result.Failure().Kind; kind != entity.AdviceFailureNetwork {
		t.Errorf("failure kind = %s, want %s", kind, entity.AdviceFailureNetwork)
	}
}

func TestMockConnector(t *testing.T) {
	result := NewMockConnector(zaptest.NewLogger(t)).GetAdvice(context.Background(), "prompt")
	if !result.OK() || result.Text() == "" {
		t.Fatalf("mock advice = %+v", result)
	}
}
