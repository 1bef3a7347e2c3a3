package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stock-trading-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *FinnhubSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewFinnhubSource(config.FinnhubConfig{
		Token:             "test-token",
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
		Burst:             100,
		Timeout:           time.Second,
	}, zap.NewNop())
}

func TestFinnhubSourceGetPrice(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		expectError bool
		expected    string
	}{
		{
			name:     "current price is returned",
			status:   http.StatusOK,
			body:     `{"c":189.84,"d":1.2,"dp":0.64,"h":190.1,"l":187.5,"o":188,"pc":188.64,"t":1700000000}`,
			expected: "189.84",
		},
		{
			name:        "zero quote for unknown symbol",
			status:      http.StatusOK,
			body:        `{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`,
			expectError: true,
		},
		{
			name:        "upstream rate limit response",
			status:      http.StatusTooManyRequests,
			body:        `{"error":"API limit reached"}`,
			expectError: true,
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			body:        `oops`,
			expectError: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			//given
			src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/quote", r.URL.Path)
				assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
				assert.Equal(t, "test-token", r.URL.Query().Get("token"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			//when
			price, err := src.GetPrice(context.Background(), "AAPL")

			//then
			if tt.expectError {
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, price.String())
		})
	}
}

func TestFinnhubSourceTimeout(t *testing.T) {
	//given
	release := make(chan struct{})
	defer close(release)
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	//when
	start := time.Now()
	_, err := src.GetPrice(ctx, "AAPL")

	//then
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestFinnhubSourceBreakerOpens(t *testing.T) {
	//given
	var calls atomic.Int32
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	//when
	for i := 0; i < breakerFailureThreshold+3; i++ {
		_, err := src.GetPrice(context.Background(), "AAPL")
		assert.ErrorIs(t, err, ErrUnavailable)
	}

	//then
	assert.Equal(t, int32(breakerFailureThreshold), calls.Load())
}

func TestFinnhubSourceCoalescesConcurrentRequests(t *testing.T) {
	//given
	var calls atomic.Int32
	gate := make(chan struct{})
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-gate
		_, _ = w.Write([]byte(`{"c":420.5}`))
	})

	//when
	var wg sync.WaitGroup
	prices := make([]string, 5)
	for i := range prices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := src.GetPrice(context.Background(), "NVDA")
			if err == nil {
				prices[i] = p.String()
			}
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	//then
	assert.Equal(t, int32(1), calls.Load())
	for _, p := range prices {
		assert.Equal(t, "420.5", p)
	}
}
