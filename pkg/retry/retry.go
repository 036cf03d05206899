// Package retry wraps fallible store operations with bounded exponential
// backoff, limited to transient connectivity failures.
package retry

import (
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// Default matches the store client defaults: three attempts, one second
// initial delay, doubling each retry.
var Default = Config{MaxAttempts: 3, InitialDelay: time.Second}

// MySQL error numbers treated as "resource temporarily unavailable".
const (
	errTooManyConnections = 1040
	errTooManyUserConns   = 1203
	errLockWaitTimeout    = 1205
	errServerShutdown     = 1053
)

// IsTransient reports whether err looks like a connectivity failure worth
// retrying. Anything else (validation, conflicts, plain store errors) is
// re-raised immediately by Do.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errTooManyConnections, errTooManyUserConns, errLockWaitTimeout, errServerShutdown:
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "network")
}

// Do runs op up to cfg.MaxAttempts times, sleeping the current delay between
// attempts and doubling it each time. Non-transient errors abort immediately;
// after the last attempt the last error is returned. The wait is a plain
// sleep: there is no cancellation mid-backoff.
func Do[T any](op func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = Default.MaxAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = Default.InitialDelay
	}

	delay := cfg.InitialDelay
	var zero T
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		out, err := op()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt == cfg.MaxAttempts || !IsTransient(err) {
			return zero, err
		}
		time.Sleep(delay)
		delay *= 2
	}
	return zero, lastErr
}
