package retry

import (
	"context"
	"errors"
	"time"
)

// Terminal wraps errors that must not be retried, such as field validation
// failures. Do waits only on transient failures.
type Terminal struct {
	Err error
}

func (t *Terminal) Error() string {
	return t.Err.Error()
}

func (t *Terminal) Unwrap() error {
	return t.Err
}

func MarkTerminal(err error) error {
	if err == nil {
		return nil
	}
	return &Terminal{Err: err}
}

func IsTerminal(err error) bool {
	var t *Terminal
	return errors.As(err, &t)
}

type Policy struct {
	Attempts     int
	InitialDelay time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:     3,
		InitialDelay: time.Second,
	}
}

// Do runs fn up to p.Attempts times with exponential backoff (1s, 2s, 4s for
// the default policy). Terminal errors and context cancellation stop the loop
// immediately.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if IsTerminal(lastErr) {
			var t *Terminal
			errors.As(lastErr, &t)
			return t.Err
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}
