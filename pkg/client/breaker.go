package client

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// breakerTripAfter is the number of consecutive failed reads that opens the breaker.
const breakerTripAfter = 5

func newReadBreaker(name string, log *zap.Logger) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
		IsSuccessful: readSucceeded,
	})
}

// readSucceeded counts only transport failures and 5xx responses against the
// breaker. A 4xx or a malformed body means the API is up.
func readSucceeded(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 500
	}
	return errors.Is(err, domain.ErrValidation)
}
