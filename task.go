package captcha

// Task is the unified description of a captcha challenge, independent of any
// backend. The set of implementations is closed: ReCaptchaV2, ReCaptchaV3,
// Turnstile, CloudflareChallenge and ImageToText. Providers convert a Task to
// their own wire format internally, or reject it with an
// UnsupportedTaskError.
//
// Tasks are plain value objects. Construct one, fill in the exported fields,
// and hand it to Service.Solve; nothing in this library mutates it.
type Task interface {
	// Kind names the challenge type, decorated with the variant flags that
	// change how providers handle it (e.g. "ReCaptchaV2InvisibleEnterprise").
	Kind() string

	isTask()
}
