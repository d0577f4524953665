package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// Retrier bounds every store call with a timeout and retries transient
// failures with exponential backoff.
type Retrier struct {
	MaxRetries uint64
	Timeout    time.Duration

	// InitialInterval and MaxInterval tune the backoff; zero values use defaults.
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func NewRetrier(maxRetries uint64, timeout time.Duration) *Retrier {
	return &Retrier{
		MaxRetries:      maxRetries,
		Timeout:         timeout,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// Do runs op until it succeeds, fails permanently, runs out of attempts or ctx
// is done. Each attempt gets its own deadline.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if r == nil {
		return op(ctx)
	}

	attempt := func() error {
		callCtx := ctx
		if r.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, r.Timeout)
			defer cancel()
		}

		err := op(callCtx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(r.backOff(), r.MaxRetries), ctx))
}

func (r *Retrier) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if r.InitialInterval > 0 {
		b.InitialInterval = r.InitialInterval
	}
	if r.MaxInterval > 0 {
		b.MaxInterval = r.MaxInterval
	}
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// IsTransient reports whether err is worth retrying: dropped connections,
// timeouts, serialization failures and deadlocks.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001", pgErr.Code == "40P01":
			return true
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			return true
		}
		return false
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
