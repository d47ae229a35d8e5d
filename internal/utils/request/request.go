package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout   = 10 * time.Second
	retryBaseDelay   = 500 * time.Millisecond
	retryMaxDelay    = 5 * time.Second
	rateLimitPenalty = 2 * time.Second
	maxAttempts      = 3
)

// New builds a resty client with the transport retry policy shared by every
// provider adapter: bounded exponential backoff for transient failures and a
// longer flat wait when the provider answers 429.
func New() *resty.Client {
	return resty.New().
		SetTransport(&http.Transport{
			Proxy: http.ProxyFromEnvironment,
		}).
		SetTimeout(defaultTimeout).
		SetRetryCount(maxAttempts - 1).
		SetRetryWaitTime(retryBaseDelay).
		SetRetryMaxWaitTime(retryMaxDelay).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests ||
				r.StatusCode() >= http.StatusInternalServerError
		}).
		SetRetryAfter(func(c *resty.Client, r *resty.Response) (time.Duration, error) {
			if r != nil && r.StatusCode() == http.StatusTooManyRequests {
				return rateLimitPenalty, nil
			}
			// Zero hands the wait back to resty's jittered exponential
			// backoff between the configured min and max.
			return 0, nil
		})
}

// Request is the default shared client. Adapters may swap it out for a
// test-server client via resty.NewWithClient.
var Request = New()
