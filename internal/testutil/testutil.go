// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testutil holds the fixtures shared by handler, service and
// repository tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// Fixed identities used across handler tests.
const (
	MemberID = "0190a5b2-7c3e-7d4f-8a1b-2c3d4e5f6a7b"
	StaffID  = "0190a5b2-7c3e-7d4f-8a1b-2c3d4e5f6a7c"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Member returns claims of an authenticated user without staff grants.
func Member() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: MemberID, Username: "reader"}
}

// Staff returns claims of a librarian holding catalog.can_mark_returned.
func Staff() *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:      StaffID,
		Username:    "librarian",
		Permissions: []string{string(sec.PermCanMarkReturned)},
	}
}

// Request describes one call against a test router.
type Request struct {
	Method string
	Path   string
	Body   any
	Claims *sec.AuthClaims
	Header http.Header
}

// Serve mounts routes on a fresh chi router and executes the request.
//
// Claims, when set, are injected the way the Authenticate middleware would.
func Serve(t testing.TB, mount func(chi.Router), call Request) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := ctxutil.WithLogger(request.Context(), Logger())
			if call.Claims != nil {
				ctx = ctxutil.WithAuthUser(ctx, call.Claims)
			}
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	})
	mount(router)

	var body io.Reader
	if call.Body != nil {
		if raw, ok := call.Body.(string); ok {
			body = bytes.NewBufferString(raw)
		} else {
			payload, err := json.Marshal(call.Body)
			require.NoError(t, err)
			body = bytes.NewReader(payload)
		}
	}

	request := httptest.NewRequest(call.Method, call.Path, body)
	for key, values := range call.Header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// Decode unmarshals a JSON response body into a generic map.
func Decode(t testing.TB, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	return body
}

// DecodeInto unmarshals the "data" member of a success envelope into target.
func DecodeInto(t testing.TB, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope), recorder.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}
