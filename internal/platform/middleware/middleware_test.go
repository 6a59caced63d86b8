// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

type verifierFunc func(string) (*sec.AuthClaims, error)

func (fn verifierFunc) VerifyToken(token string) (*sec.AuthClaims, error) { return fn(token) }

/*
TestAuthenticate verifies header parsing and claim injection.
*/
func TestAuthenticate(t *testing.T) {
	verifier := verifierFunc(func(token string) (*sec.AuthClaims, error) {
		if token == "good" {
			return testutil.Member(), nil
		}
		return nil, errors.New("bad token")
	})

	var seen *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   bool
	}{
		{"anonymous", "", http.StatusOK, false},
		{"bearer", "Bearer good", http.StatusOK, true},
		{"lowercase scheme", "bearer good", http.StatusOK, true},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, false},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantUser, seen != nil)
		})
	}
}

/*
TestRequirePermission verifies the 401/403 split and the superuser bypass.
*/
func TestRequirePermission(t *testing.T) {
	gate := middleware.RequirePermission(sec.PermCanMarkReturned)(ok)

	tests := []struct {
		name   string
		claims *sec.AuthClaims
		want   int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", testutil.Member(), http.StatusForbidden},
		{"staff", testutil.Staff(), http.StatusOK},
		{"superuser", &sec.AuthClaims{UserID: testutil.MemberID, Superuser: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()

			gate.ServeHTTP(recorder, request)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestRateLimit verifies that each client IP gets its own bucket.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	handler := middleware.RateLimit(ctx, 0.001, 2)(ok)

	call := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

/*
TestPanicRecovery verifies that a panicking handler becomes a 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(testutil.Logger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestLocale verifies negotiation against the supported languages.
*/
func TestLocale(t *testing.T) {
	var seen language.Tag
	handler := middleware.Locale(language.English)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetLocale(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, language.Russian, seen)
	assert.Equal(t, "ru", recorder.Header().Get("Content-Language"))
}

/*
TestRealIP verifies the proxy header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "198.51.100.3", middleware.RealIP(request))
}

/*
TestCORS verifies preflight handling for trusted and untrusted origins.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{suffix: ".locallibrary.app"})(ok)

	preflight := func(origin string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil)
		request.Header.Set("Origin", origin)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	trusted := preflight("https://desk.locallibrary.app")
	assert.Equal(t, http.StatusNoContent, trusted.Code)
	assert.Equal(t, "https://desk.locallibrary.app", trusted.Header().Get("Access-Control-Allow-Origin"))

	untrusted := preflight("https://evil.example.com")
	assert.Equal(t, http.StatusNoContent, untrusted.Code)
	assert.Empty(t, untrusted.Header().Get("Access-Control-Allow-Origin"))
}

type corsConfig struct{ suffix string }

func (corsConfig) IsDevelopment() bool { return false }

func (c corsConfig) OriginAllowed(origin string) bool {
	return strings.HasSuffix(origin, c.suffix)
}
