package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festx/infrastructure"
)

func TestRecovererConvertsPanicTo500(t *testing.T) {
	handler := Recoverer(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/events", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp infrastructure.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestRecovererPassesThrough(t *testing.T) {
	handler := Recoverer(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
