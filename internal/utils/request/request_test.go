package request

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWithStatus(status int) *resty.Response {
	return &resty.Response{RawResponse: &http.Response{StatusCode: status}}
}

func TestRetryAfterPolicy(t *testing.T) {
	c := New()
	require.NotNil(t, c.RetryAfter)

	// 429 waits the flat rate-limit penalty.
	d, err := c.RetryAfter(c, responseWithStatus(http.StatusTooManyRequests))
	require.NoError(t, err)
	assert.Equal(t, rateLimitPenalty, d)

	// Anything else returns zero so resty's exponential backoff between the
	// configured wait bounds governs the delay.
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable} {
		d, err = c.RetryAfter(c, responseWithStatus(status))
		require.NoError(t, err)
		assert.Zero(t, d, "status %d must defer to the backoff schedule", status)
	}
}

func TestRetryBackoffGrows(t *testing.T) {
	var (
		mu       sync.Mutex
		attempts []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts = append(attempts, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New().R().Get(srv.URL)
	require.NoError(t, err) // a 5xx is a response, not a transport error

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, attempts, maxAttempts)

	gap1 := attempts[1].Sub(attempts[0])
	gap2 := attempts[2].Sub(attempts[1])
	assert.GreaterOrEqual(t, gap1, retryBaseDelay)
	// The second wait draws from the doubled backoff window, not a flat
	// repeat of the first.
	assert.Greater(t, gap2, gap1)
	assert.LessOrEqual(t, gap2, retryMaxDelay+time.Second)
}
