package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"loan-underwriter/logger"
	"loan-underwriter/repository"
	"loan-underwriter/service"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

var errCacheDown = errors.New("cache down")

type testServer struct {
	handler http.Handler
	limiter *RateLimiter
	cache   *repository.MemoryCache
}

func newTestServer(t *testing.T, capacity int, deps map[string]Pinger) *testServer {
	t.Helper()
	log := logger.NewTestLogger(t)
	cache := repository.NewMemoryCache()

	loanService := service.NewLoanService(cache, log, time.Minute)
	appService := service.NewApplicationService(repository.NewLoanRepositoryMemory(), service.NewUnderwritingEngine(), log)
	termService := service.NewTermRecommendationService(log)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	if deps == nil {
		deps = map[string]Pinger{"cache": cache}
	}

	return &testServer{
		handler: NewRouter(Handlers{
			Loans:        NewLoanHandler(loanService, log),
			Terms:        NewTermRecommendationHandler(termService, log),
			Applications: NewApplicationHandler(appService, log),
			Health:       NewHealthHandler(log, deps),
			RateLimiter:  limiter,
		}),
		limiter: limiter,
		cache:   cache,
	}
}

func (s *testServer) do(method, path, userID, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}
