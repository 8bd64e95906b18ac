package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastClient returns a client with negligible delays so tests run quickly.
func fastClient() *Client {
	return NewClient(Config{
		RequestDelay: time.Microsecond,
		MaxRetries:   3,
		Backoff:      time.Millisecond,
	})
}

func TestClient_GetText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	text, err := fastClient().GetText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("eventually"))
	}))
	defer server.Close()

	text, err := fastClient().GetText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "eventually", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := fastClient().GetText(context.Background(), server.URL)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := fastClient().GetText(context.Background(), server.URL)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	// Initial attempt plus three retries.
	assert.Equal(t, int32(4), calls.Load())
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastClient().GetText(ctx, server.URL)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_SpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(Config{
		RequestDelay: 30 * time.Millisecond,
		MaxRetries:   1,
		Backoff:      time.Millisecond,
	})

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.GetText(ctx, server.URL)
		require.NoError(t, err)
	}
	// The second and third requests each wait for a token.
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
