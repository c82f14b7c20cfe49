package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

func TestHTTPOps(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(newTestHandler(t, nil), []string{testOrigin}))
	defer srv.Close()

	testCases := []struct {
		method      string
		path        string
		body        string
		status      int
		contains    string
		description string
	}{
		{http.MethodGet, "/api/health", "", 200, `"status":"ok"`, "health"},
		{http.MethodGet, "/api/stats", "", 200, `"total_words"`, "stats"},
		{http.MethodPost, "/api/check", `{"text":"Tsaara daholo"}`, 200, `"type":"spelling"`, "check"},
		{http.MethodPost, "/api/word", `{"word":"tsaara"}`, 200, `"best_match":"tsara"`, "word info"},
		{http.MethodPost, "/api/translate", `{"word":"faire","direction":"fr-mg"}`, 200, `"translation":"manao"`, "translate"},
		{http.MethodPost, "/api/check", `{"text":""}`, 400, `"error"`, "empty text"},
		{http.MethodPost, "/api/check", `not json`, 400, "JSON object", "bad body"},
		{http.MethodPost, "/api/unknown", `{}`, 400, "Unknown op", "unknown op"},
		{http.MethodGet, "/api/check", "", 405, "", "wrong method"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var raw json.RawMessage
			if tc.contains != "" {
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
				assert.Contains(t, string(raw), tc.contains)
			}
		})
	}
}

func TestHTTPErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTTPHandler(newTestHandler(t, nil), []string{testOrigin}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/suggest", strings.NewReader(`{}`)))

	require.Equal(t, 400, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 400, body.Code)
	assert.Equal(t, "Missing 'w' field", body.Error)
}

func TestHTTPCORS(t *testing.T) {
	h := NewHTTPHandler(newTestHandler(t, nil), []string{testOrigin})

	preflight := httptest.NewRequest(http.MethodOptions, "/api/check", nil)
	preflight.Header.Set("Origin", testOrigin)
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, preflight)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	other.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
