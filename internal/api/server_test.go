package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futig/eco-advisor/internal/api/diagnostic"
	"github.com/futig/eco-advisor/internal/entity"
	usecase "github.com/futig/eco-advisor/internal/usecase/diagnostic"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap/zaptest"
)

// contextAdvisor records the context the advice call receives.
type contextAdvisor struct {
	deadline    time.Time
	hasDeadline bool
	requestID   string
}

func (a *contextAdvisor) GetAdvice(ctx context.Context, _ string) entity.AdviceResult {
	a.deadline, a.hasDeadline = ctx.Deadline()
	a.requestID = chimiddleware.GetReqID(ctx)
	return entity.AdviceSucceeded("Conseil")
}

func newTestServer(t *testing.T, advisor *contextAdvisor, timeout time.Duration) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	handler := diagnostic.NewHandler(usecase.NewUsecase(advisor, logger))
	return SetupRouter(handler, logger, timeout)
}

func TestRequestTimeout(t *testing.T) {
	for _, advice := range []time.Duration{30 * time.Second, 60 * time.Second, 3 * time.Minute} {
		if got := RequestTimeout(advice); got <= advice {
			t.Errorf("RequestTimeout(%s) = %s, want more than the advice timeout", advice, got)
		}
	}
}

func TestSetupRouter_AdviceOutlivesConfiguredTimeout(t *testing.T) {
	adviceTimeout := 3 * time.Minute
	advisor := &contextAdvisor{}
	h := newTestServer(t, advisor, RequestTimeout(adviceTimeout))

	body := `{"chauffage":"≤ 19 °C","veille":"Jamais","eclairage":"LED","transport":"Voiture","recyclage":"Oui"}`
	req := httptest.NewRequest(http.MethodPost, "/diagnostics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	start := time.Now()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !advisor.hasDeadline {
		t.Fatal("advice call has no deadline")
	}
	if remaining := advisor.deadline.Sub(start); remaining < adviceTimeout {
		t.Errorf("request deadline %s would cut the %s advice timeout", remaining, adviceTimeout)
	}
	if advisor.requestID == "" {
		t.Error("request id not propagated to the advice call")
	}
}

func TestSetupRouter_Health(t *testing.T) {
	h := newTestServer(t, &contextAdvisor{}, time.Minute)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body)
	}
}
