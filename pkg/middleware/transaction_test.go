package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxResponseWriter_BuffersUntilFlush(t *testing.T) {
	buffered := newTxResponseWriter()
	buffered.Header().Set("Content-Type", "application/json")
	buffered.WriteHeader(http.StatusCreated)
	_, err := buffered.Write([]byte(`{"id":"42"}`))
	assert.NoError(t, err)

	// Nothing reaches the client until the transaction outcome is known.
	rec := httptest.NewRecorder()
	assert.Empty(t, rec.Body.String())

	buffered.flush(rec)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":"42"}`, rec.Body.String())
}

func TestTxResponseWriter_DefaultsToOK(t *testing.T) {
	buffered := newTxResponseWriter()
	_, err := buffered.Write([]byte("ok"))
	assert.NoError(t, err)

	rec := httptest.NewRecorder()
	buffered.flush(rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTxResponseWriter_FirstStatusWins(t *testing.T) {
	buffered := newTxResponseWriter()
	buffered.WriteHeader(http.StatusAccepted)
	buffered.WriteHeader(http.StatusTeapot)

	rec := httptest.NewRecorder()
	buffered.flush(rec)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
