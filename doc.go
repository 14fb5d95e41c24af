// Package captcha is a provider-agnostic client for remote captcha-solving
// services such as Capsolver and RuCaptcha.
//
// A caller describes a challenge once with one of the shared task types
// (ReCaptchaV2, ReCaptchaV3, Turnstile, CloudflareChallenge, ImageToText),
// hands it to a Service backed by a Provider, and receives the solved token
// once the remote service finishes:
//
//	provider := capsolver.New("api-key")
//	svc, err := captcha.NewService[capsolver.Solution](provider, captcha.Config{})
//	if err != nil {
//		// bad config
//	}
//
//	sol, err := svc.Solve(ctx, captcha.ReCaptchaV2{
//		WebsiteURL: "https://example.com",
//		WebsiteKey: "6LeIxAcT...",
//	})
//
// The Service creates the remote task and polls for the result under a
// configurable timeout. Transient failures (network errors, rate limits) are
// absorbed; permanent ones short-circuit. Wrap a provider in a RetryProvider
// for per-call exponential backoff beneath the poll loop.
//
// Every error in this module answers two questions via the Retryable
// contract: is it safe to retry the identical call, and could a fresh task
// submission succeed where this one failed. See IsRetryable and
// ShouldRetryOperation.
package captcha
