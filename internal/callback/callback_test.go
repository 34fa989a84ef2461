package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeliver_FirstAttempt(t *testing.T) {
	var body map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := New(zap.NewNop())
	err := notifier.Deliver(context.Background(), server.URL, map[string]string{"status": "scored"})

	assert.NoError(t, err)
	assert.Equal(t, "scored", body["status"])
}

func TestDeliver_RetriesThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := New(zap.NewNop())
	err := notifier.Deliver(context.Background(), server.URL, map[string]int{"score": 700})

	assert.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := New(zap.NewNop())
	err := notifier.Deliver(context.Background(), server.URL, map[string]int{"score": 700})

	assert.Error(t, err)
	assert.Equal(t, int32(maxRetries), attempts.Load())
}

func TestDeliver_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	notifier := New(zap.NewNop())
	err := notifier.Deliver(ctx, server.URL, map[string]int{"score": 700})

	assert.Error(t, err)
}
