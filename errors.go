package captcha

import (
	"errors"
	"fmt"
	"time"
)

// Retryable classifies an error along two independent axes.
//
// IsRetryable reports whether the identical call (same task, same task id)
// may be retried. ShouldRetryOperation reports whether submitting a fresh
// task might succeed even though this one should not be retried as-is. A
// solution timeout is the canonical example: the task has expired server-side
// but nothing says a new one would fail.
//
// Every error type in this module implements both methods explicitly; new
// error kinds must not inherit one axis from the other implicitly.
type Retryable interface {
	IsRetryable() bool
	ShouldRetryOperation() bool
}

// IsRetryable reports whether err, or any error in its chain, classifies
// itself as retryable. Errors outside the Retryable contract are treated as
// permanent.
func IsRetryable(err error) bool {
	var r Retryable
	if errors.As(err, &r) {
		return r.IsRetryable()
	}
	return false
}

// ShouldRetryOperation reports whether a fresh solve operation might succeed
// after err. Errors outside the Retryable contract are treated as permanent.
func ShouldRetryOperation(err error) bool {
	var r Retryable
	if errors.As(err, &r) {
		return r.ShouldRetryOperation()
	}
	return false
}

// UnsupportedTaskError is returned by a provider when it cannot solve the
// requested task kind. It is detected during task conversion, before any
// network call.
type UnsupportedTaskError struct {
	Provider string
	Kind     string
}

func (e *UnsupportedTaskError) Error() string {
	return fmt.Sprintf("%s: task kind %s is not supported", e.Provider, e.Kind)
}

// IsRetryable always reports false: the same backend will keep rejecting the
// same task kind.
func (e *UnsupportedTaskError) IsRetryable() bool { return false }

// ShouldRetryOperation always reports false: a fresh submission of the same
// task to the same provider is equally unsupported.
func (e *UnsupportedTaskError) ShouldRetryOperation() bool { return false }

// TransportError wraps a network-level failure talking to a backend: the
// request never produced a decodable HTTP response.
type TransportError struct {
	Provider string
	Op       string // "createTask", "getTaskResult", "getBalance"
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s request failed: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable always reports true: transport failures are transient.
func (e *TransportError) IsRetryable() bool { return true }

// ShouldRetryOperation always reports true.
func (e *TransportError) ShouldRetryOperation() bool { return true }

// DecodeError wraps a response body that could not be parsed. Unlike a
// transport failure this is permanent: the backend answered, and repeating
// the call will produce the same unparseable answer.
type DecodeError struct {
	Provider string
	Op       string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding %s response: %v", e.Provider, e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsRetryable always reports false.
func (e *DecodeError) IsRetryable() bool { return false }

// ShouldRetryOperation always reports false.
func (e *DecodeError) ShouldRetryOperation() bool { return false }

// ProviderError is the Service's terminal wrapper around a provider failure,
// either from task creation or from a permanent polling error. The retry
// classification is copied from the wrapped error at construction so callers
// can inspect it without re-walking the chain.
type ProviderError struct {
	Err            error
	Retryable      bool
	RetryOperation bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("captcha provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsRetryable reports the classification captured from the provider error.
func (e *ProviderError) IsRetryable() bool { return e.Retryable }

// ShouldRetryOperation reports the classification captured from the provider
// error.
func (e *ProviderError) ShouldRetryOperation() bool { return e.RetryOperation }

// newProviderError captures err together with its retry classification.
func newProviderError(err error) *ProviderError {
	return &ProviderError{
		Err:            err,
		Retryable:      IsRetryable(err),
		RetryOperation: ShouldRetryOperation(err),
	}
}

// TimeoutError is returned by the Service when the configured timeout elapsed
// before the backend produced a solution.
type TimeoutError struct {
	Timeout time.Duration
	Elapsed time.Duration
	Polls   int
	TaskID  TaskID
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for captcha solution after %.1fs (%d polls); task id: %s",
		e.Elapsed.Seconds(), e.Polls, e.TaskID)
}

// IsRetryable always reports false: the remote task has expired and polling
// it again cannot succeed.
func (e *TimeoutError) IsRetryable() bool { return false }

// ShouldRetryOperation always reports true: a fresh task may well solve
// within the deadline.
func (e *TimeoutError) ShouldRetryOperation() bool { return true }

// CancelledError is returned by the Service when the caller's context was
// cancelled mid-solve. It reflects caller intent rather than a failure, so it
// carries no retry recommendation.
type CancelledError struct {
	Cause   error // the context error
	Elapsed time.Duration
	Polls   int
	TaskID  TaskID
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("captcha solve cancelled after %.1fs (%d polls); task id: %s",
		e.Elapsed.Seconds(), e.Polls, e.TaskID)
}

func (e *CancelledError) Unwrap() error { return e.Cause }

// IsRetryable always reports false.
func (e *CancelledError) IsRetryable() bool { return false }

// ShouldRetryOperation always reports false: the caller asked to stop, so no
// automatic retry is suggested.
func (e *CancelledError) ShouldRetryOperation() bool { return false }

// IsTimeout reports whether err is a solution timeout from the Service.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsCancelled reports whether err is a cancellation from the Service.
func IsCancelled(err error) bool {
	var ce *CancelledError
	return errors.As(err, &ce)
}
