// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/catalog/author"
	"github.com/taibuivan/locallibrary/internal/catalog/book"
	"github.com/taibuivan/locallibrary/internal/catalog/instance"
	"github.com/taibuivan/locallibrary/internal/catalog/loanevent"
	"github.com/taibuivan/locallibrary/internal/catalog/stats"
	"github.com/taibuivan/locallibrary/internal/catalog/taxonomy"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

// stubVerifier accepts exactly two fixed tokens.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "member":
		return testutil.Member(), nil
	case "staff":
		return testutil.Staff(), nil
	}
	return nil, errors.New("bad token")
}

// newServer wires every handler around nil repositories. The tests below
// only exercise paths that are rejected before any repository is touched.
func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	logger := testutil.Logger()

	instances := instance.NewService(nil, logger)
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(auth.NewService(nil, nil, logger)),
		Stats:      stats.NewHandler(stats.NewService(nil, nil, logger)),
		Books:      book.NewHandler(book.NewService(nil, instances, logger)),
		Authors:    author.NewHandler(author.NewService(nil, logger)),
		Taxonomy:   taxonomy.NewHandler(taxonomy.NewService(nil, logger)),
		Instances:  instance.NewHandler(instances),
		LoanEvents: loanevent.NewHandler(loanevent.NewService(nil, logger)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "test", DefaultLocale: "en"}
	return api.NewServer(ctx, cfg, logger, stubVerifier{}, handlers).Handler()
}

func call(handler http.Handler, method, path, token string, header ...string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		request.Header.Set(header[i], header[i+1])
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_RouteGates verifies the authentication and permission boundaries
of the route table.
*/
func TestServer_RouteGates(t *testing.T) {
	server := newServer(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"anonymous books", http.MethodGet, "/api/v1/books", "", http.StatusUnauthorized},
		{"anonymous authors", http.MethodGet, "/api/v1/authors", "", http.StatusUnauthorized},
		{"anonymous genres", http.MethodGet, "/api/v1/genres", "", http.StatusUnauthorized},
		{"anonymous loans", http.MethodGet, "/api/v1/loans/mine", "", http.StatusUnauthorized},
		{"anonymous me", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
		{"forged token", http.MethodGet, "/api/v1/books", "forged", http.StatusUnauthorized},
		{"member instances", http.MethodGet, "/api/v1/instances", "member", http.StatusForbidden},
		{"member events", http.MethodGet, "/api/v1/instances/0190a5b2-7c3e-7d4f-8a1b-00000000c0de/events", "member", http.StatusForbidden},
		{"member renew", http.MethodPost, "/api/v1/instances/0190a5b2-7c3e-7d4f-8a1b-00000000c0de/renew", "member", http.StatusForbidden},
		{"member borrowed", http.MethodGet, "/api/v1/loans/borrowed", "member", http.StatusForbidden},
		{"member creates book", http.MethodPost, "/api/v1/books", "member", http.StatusForbidden},
		{"member deletes genre", http.MethodDelete, "/api/v1/genres/1", "member", http.StatusForbidden},
		{"staff unknown copy id", http.MethodGet, "/api/v1/instances/not-a-uuid", "staff", http.StatusNotFound},
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := call(server, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestServer_NegotiatesLanguage verifies error messages follow Accept-Language.
*/
func TestServer_NegotiatesLanguage(t *testing.T) {
	server := newServer(t, api.HealthDependencies{})

	recorder := call(server, http.MethodGet, "/api/v1/instances", "member", "Accept-Language", "ru-RU,ru;q=0.9")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "ru", recorder.Header().Get("Content-Language"))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = call(server, http.MethodGet, "/api/v1/instances", "member", "Accept-Language", "de")
	assert.Equal(t, "en", recorder.Header().Get("Content-Language"))
}

/*
TestReadiness reports 503 while any dependency is down.
*/
func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	recorder := call(newServer(t, api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}), http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = call(newServer(t, api.HealthDependencies{CheckDatabase: healthy, CheckCache: down}), http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	body := testutil.Decode(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "degraded", body["status"])
	assert.Len(t, body["checks"], 2)
}
