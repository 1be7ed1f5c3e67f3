package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// breakerAnalyzer stops calling a backend that keeps failing and reports
// ErrUnavailable until the cooldown has passed.
type breakerAnalyzer struct {
	next Analyzer
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps a with a circuit breaker that opens after failures
// consecutive backend errors. Unrecognized documents and cancelled calls do
// not count as failures. A nil analyzer or failures <= 0 returns a as is.
func WithBreaker(a Analyzer, failures int, cooldown time.Duration, log *slog.Logger) Analyzer {
	if a == nil || failures <= 0 {
		return a
	}
	threshold := uint32(failures) //nolint:gosec // validated to a small positive value

	settings := gobreaker.Settings{
		Name:        a.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotRecognized) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Vision circuit breaker state changed", "analyzer", name, "from", from.String(), "to", to.String())
		},
	}
	return &breakerAnalyzer{next: a, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerAnalyzer) Analyze(ctx context.Context, img Image) (Result, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Analyze(ctx, img)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

func (b *breakerAnalyzer) Name() string {
	return b.next.Name()
}
