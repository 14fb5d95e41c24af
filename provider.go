package captcha

import "context"

// CreateResult is the outcome of creating a remote task. TaskID is always
// set. Solution is non-nil when the backend solved synchronously (Capsolver
// does this for image recognition tasks); the Service returns it without
// polling.
type CreateResult[S any] struct {
	TaskID   TaskID
	Solution *S
}

// Provider is the contract a captcha-solving backend must satisfy to be
// driven by a Service. S is the provider-specific solution payload; the
// Service treats it as opaque.
//
// Both methods perform network I/O and must be safe for concurrent use: a
// single Provider instance is shared by every in-flight solve, and by the
// RetryProvider wrapping it.
//
// Errors returned by either method should implement the Retryable contract;
// errors that don't are treated as permanent.
type Provider[S any] interface {
	// CreateTask converts the unified task to the backend's format and
	// submits it. Unsupported task kinds fail with an UnsupportedTaskError
	// before any network call.
	CreateTask(ctx context.Context, task Task) (CreateResult[S], error)

	// GetTaskResult polls a previously created task. It returns (nil, nil)
	// while the backend is still working.
	GetTaskResult(ctx context.Context, id TaskID) (*S, error)
}
