package appfilter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// **Feature: appfilter-fetch, Property 1: Retry exponential backoff**
func TestRetryExponentialBackoff(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("retry delays follow exponential backoff", prop.ForAll(
		func(numFailures int) bool {
			numFailures = (numFailures % 3) + 1

			var requestCount int32
			var recordedDelays []time.Duration

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if int(atomic.AddInt32(&requestCount, 1)) <= numFailures {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewRetryableHTTPClient()
			client.SetHTTPClient(server.Client())
			client.SetDelayFunc(func(d time.Duration) {
				recordedDelays = append(recordedDelays, d)
			})

			resp, err := client.Get(context.Background(), server.URL)
			if err != nil {
				return false
			}
			defer resp.Body.Close()

			if len(recordedDelays) != numFailures {
				return false
			}
			for i := 1; i < len(recordedDelays); i++ {
				if recordedDelays[i] <= recordedDelays[i-1] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100),
	))

	properties.Property("after max retries no more attempts are made", prop.ForAll(
		func(seed int) bool {
			var requestCount int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requestCount, 1)
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			client := NewRetryableHTTPClient()
			client.SetHTTPClient(server.Client())
			client.SetDelayFunc(func(time.Duration) {})

			if _, err := client.Get(context.Background(), server.URL); err == nil {
				return false
			}

			// 1 initial attempt + 3 retries
			return atomic.LoadInt32(&requestCount) == 4
		},
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

func TestCalculateDelay(t *testing.T) {
	client := NewRetryableHTTPClient()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 4 * time.Second}, // capped at MaxDelay
	}

	for _, tt := range tests {
		if got := client.calculateDelay(tt.attempt); got != tt.want {
			t.Errorf("calculateDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestShouldRetry(t *testing.T) {
	client := NewRetryableHTTPClient()

	tests := []struct {
		status int
		want   bool
	}{
		{200, false},
		{301, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := client.shouldRetry(tt.status); got != tt.want {
			t.Errorf("shouldRetry(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRetryableHTTPClient()
	client.SetHTTPClient(server.Client())

	var attempts int32
	ctx, cancel := context.WithCancel(context.Background())
	client.SetDelayFunc(func(time.Duration) {
		// Cancel during the first backoff delay
		if atomic.AddInt32(&attempts, 1) == 1 {
			cancel()
		}
	})

	_, err := client.Get(ctx, server.URL)
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("ICONKIT_TEST_VAR", "value123")

	tests := []struct {
		in   string
		want string
	}{
		{"Bearer ${ICONKIT_TEST_VAR}", "Bearer value123"},
		{"${ICONKIT_TEST_VAR}", "value123"},
		{"no variables here", "no variables here"},
		{"${ICONKIT_UNSET_VAR}", ""},
	}

	for _, tt := range tests {
		if got := SubstituteEnvVars(tt.in); got != tt.want {
			t.Errorf("SubstituteEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
