package captcha

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Outcome labels passed to Config.MetricsHook, one per terminal state of a
// solve.
const (
	OutcomeSolved        = "solved"
	OutcomeProviderError = "provider_error"
	OutcomeTimeout       = "timeout"
	OutcomeCancelled     = "cancelled"
)

// Config holds the solving parameters of a Service.
type Config struct {
	// Timeout bounds a whole solve operation, measured from the moment
	// polling starts. Default: 120s.
	Timeout time.Duration

	// PollInterval is the wait between result polls. Default: 3s. A poll
	// interval at or above the timeout degrades to a single poll.
	PollInterval time.Duration

	// MetricsHook is called once per solve with the terminal outcome, for
	// external metrics collection. outcome is one of the Outcome constants.
	MetricsHook func(task, outcome string, elapsed time.Duration, polls int)
}

func (c *Config) defaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.PollInterval == 0 {
		c.PollInterval = 3 * time.Second
	}
}

func (c Config) validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("captcha: negative timeout %v", c.Timeout)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("captcha: negative poll interval %v", c.PollInterval)
	}
	return nil
}

// FastConfig suits development and tests: 60s timeout, 2s polls.
func FastConfig() Config {
	return Config{Timeout: 60 * time.Second, PollInterval: 2 * time.Second}
}

// BalancedConfig is the default: 120s timeout, 3s polls.
func BalancedConfig() Config {
	return Config{Timeout: 120 * time.Second, PollInterval: 3 * time.Second}
}

// PatientConfig suits slow providers and hard captchas: 300s timeout, 5s
// polls.
func PatientConfig() Config {
	return Config{Timeout: 300 * time.Second, PollInterval: 5 * time.Second}
}

// Service turns a Task into a solution by driving a Provider: it creates the
// remote task, then polls for the result until solved, timed out, cancelled,
// or permanently failed.
//
// A Service holds no per-solve state; one instance serves any number of
// concurrent Solve calls against the same provider.
type Service[S any] struct {
	provider Provider[S]
	cfg      Config
}

// NewService builds a Service around provider. Zero cfg fields take their
// documented defaults; negative durations are rejected.
func NewService[S any](provider Provider[S], cfg Config) (*Service[S], error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Service[S]{provider: provider, cfg: cfg}, nil
}

// Provider returns the underlying provider.
func (s *Service[S]) Provider() Provider[S] { return s.provider }

// Config returns the service configuration.
func (s *Service[S]) Config() Config { return s.cfg }

// Solve submits task and waits for its solution.
//
// The terminal result is always one of four shapes: the solution, a
// *ProviderError carrying the backend failure and its retry classification, a
// *TimeoutError once Config.Timeout elapses, or a *CancelledError when ctx is
// cancelled. Transient polling errors are swallowed and polling continues;
// permanent ones return immediately.
//
// Cancellation is cooperative: it is observed between polls, never by
// aborting an in-flight request, and no cancellation is sent to the backend.
func (s *Service[S]) Solve(ctx context.Context, task Task) (*S, error) {
	kind := task.Kind()

	if err := ctx.Err(); err != nil {
		s.record(kind, OutcomeCancelled, 0, 0)
		return nil, &CancelledError{Cause: err}
	}

	created, err := s.provider.CreateTask(ctx, task)
	if err != nil {
		// A decorated provider may surface the caller's cancellation as its
		// own error; that is still a cancelled solve, not a broken backend.
		if cerr := ctx.Err(); cerr != nil {
			s.record(kind, OutcomeCancelled, 0, 0)
			return nil, &CancelledError{Cause: cerr}
		}
		s.record(kind, OutcomeProviderError, 0, 0)
		return nil, newProviderError(err)
	}
	taskID := created.TaskID

	if created.Solution != nil {
		slog.Debug("captcha solved in create response",
			slog.String("task", kind), slog.String("task_id", taskID.String()))
		s.record(kind, OutcomeSolved, 0, 0)
		return created.Solution, nil
	}

	slog.Info("captcha task created, polling for solution",
		slog.String("task", kind), slog.String("task_id", taskID.String()))

	start := time.Now()
	polls := 0

	for {
		// Cancellation wins over an expired timeout in the same iteration.
		if err := ctx.Err(); err != nil {
			elapsed := time.Since(start)
			slog.Warn("captcha solve cancelled",
				slog.String("task_id", taskID.String()),
				slog.Duration("elapsed", elapsed), slog.Int("polls", polls))
			s.record(kind, OutcomeCancelled, elapsed, polls)
			return nil, &CancelledError{Cause: err, Elapsed: elapsed, Polls: polls, TaskID: taskID}
		}

		if elapsed := time.Since(start); elapsed >= s.cfg.Timeout {
			slog.Warn("captcha solution timeout",
				slog.String("task_id", taskID.String()),
				slog.Duration("elapsed", elapsed), slog.Int("polls", polls))
			s.record(kind, OutcomeTimeout, elapsed, polls)
			return nil, &TimeoutError{Timeout: s.cfg.Timeout, Elapsed: elapsed, Polls: polls, TaskID: taskID}
		}

		polls++
		sol, err := s.provider.GetTaskResult(ctx, taskID)
		switch {
		case err == nil && sol != nil:
			elapsed := time.Since(start)
			slog.Info("captcha solved",
				slog.String("task_id", taskID.String()),
				slog.Duration("elapsed", elapsed), slog.Int("polls", polls))
			s.record(kind, OutcomeSolved, elapsed, polls)
			return sol, nil

		case err == nil:
			// Still processing.

		case !IsRetryable(err):
			elapsed := time.Since(start)
			if cerr := ctx.Err(); cerr != nil {
				slog.Warn("captcha solve cancelled",
					slog.String("task_id", taskID.String()),
					slog.Duration("elapsed", elapsed), slog.Int("polls", polls))
				s.record(kind, OutcomeCancelled, elapsed, polls)
				return nil, &CancelledError{Cause: cerr, Elapsed: elapsed, Polls: polls, TaskID: taskID}
			}
			slog.Error("permanent error while polling for solution",
				slog.String("task_id", taskID.String()), slog.Any("error", err))
			s.record(kind, OutcomeProviderError, elapsed, polls)
			return nil, newProviderError(err)

		default:
			// Transient; the timer and poll count keep running, so a burst
			// of these still terminates at the configured timeout.
			slog.Warn("transient error while polling, will retry",
				slog.String("task_id", taskID.String()), slog.Any("error", err))
		}

		select {
		case <-time.After(s.cfg.PollInterval):
		case <-ctx.Done():
			// Picked up at the top of the next iteration.
		}
	}
}

func (s *Service[S]) record(task, outcome string, elapsed time.Duration, polls int) {
	if s.cfg.MetricsHook != nil {
		s.cfg.MetricsHook(task, outcome, elapsed, polls)
	}
}
