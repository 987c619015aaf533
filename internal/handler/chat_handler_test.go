package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chatbot/internal/domain"
	"chatbot/internal/metrics"
	"chatbot/internal/service"
	"chatbot/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	exchanges []domain.Exchange
	err       error
}

func (m *memRepo) Record(_ context.Context, in, out string) (domain.Exchange, error) {
	if m.err != nil {
		return domain.Exchange{}, m.err
	}
	ex := domain.Exchange{ID: int64(len(m.exchanges) + 1), UserMessage: in, BotResponse: out, Timestamp: time.Now()}
	m.exchanges = append(m.exchanges, ex)
	return ex, nil
}

func (m *memRepo) List(context.Context, int) ([]domain.Exchange, error) { return m.exchanges, nil }
func (m *memRepo) Count(context.Context) (int64, error)                 { return int64(len(m.exchanges)), nil }
func (m *memRepo) Ping(context.Context) error                           { return m.err }

type testServer struct {
	repo    *memRepo
	metrics *metrics.Metrics
	handler http.Handler
}

func newTestServer(t *testing.T, strict bool) *testServer {
	t.Helper()
	repo := &memRepo{}
	m := metrics.New()
	svc := service.NewChatService(service.NewResponder(), repo, m, zap.NewNop(), strict)
	h := New(svc, repo, zap.NewNop())
	return &testServer{repo: repo, metrics: m, handler: NewRouter(h, m.Handler(), m)}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestChat_OK(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodPost, "/chat", `{"message":"HELLO there"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, utils.GreetingMessage, resp.Response)

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	require.Len(t, s.repo.exchanges, 1)
	assert.Equal(t, "HELLO there", s.repo.exchanges[0].UserMessage)
}

func TestChat_MissingMessage(t *testing.T) {
	s := newTestServer(t, true)

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":null}`} {
		rec := s.do(http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No message provided", resp.Error)
	}
	assert.Empty(t, s.repo.exchanges)
}

func TestChat_InvalidJSON(t *testing.T) {
	s := newTestServer(t, true)

	for _, body := range []string{`not json`, `{"message": 42}`, ``} {
		rec := s.do(http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestChat_StoreFailure(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		s := newTestServer(t, true)
		s.repo.err = errors.New("database is locked")

		rec := s.do(http.MethodPost, "/chat", `{"message":"bye"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "database is locked")
	})

	t.Run("lenient", func(t *testing.T) {
		s := newTestServer(t, false)
		s.repo.err = errors.New("database is locked")

		rec := s.do(http.MethodPost, "/chat", `{"message":"bye"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ChatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, utils.GoodbyeMessage, resp.Response)
	})
}

func TestChat_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, true)
	rec := s.do(http.MethodGet, "/chat", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "AI-Powered Chatbot")
	assert.Contains(t, body, "fetch('/chat'")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/nope", "").Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, true)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "").Code)

	s.repo.err = errors.New("down")
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/healthz", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, true)
	s.do(http.MethodPost, "/chat", `{"message":"hello"}`)
	s.do(http.MethodPost, "/chat", `{"message":"asdkjasd"}`)

	rec := s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `chatbot_replies_total{rule="greeting"} 1`)
	assert.Contains(t, text, `chatbot_replies_total{rule="fallback"} 1`)
	assert.Contains(t, text, `chatbot_http_requests_total{method="POST",route="POST /chat",status="200"} 2`)
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t, true)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}
