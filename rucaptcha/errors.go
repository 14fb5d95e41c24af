package rucaptcha

import "fmt"

// ErrorCode is a RuCaptcha API error code. The service retries almost nothing
// on the same call: only a full worker queue is worth asking again about.
// Unknown codes are classified as permanent on both axes.
type ErrorCode string

const (
	// All workers are busy. The only same-call retryable condition.
	CodeNoSlotAvailable ErrorCode = "ERROR_NO_SLOT_AVAILABLE"

	// The workers gave up on this captcha. A fresh task may still succeed.
	CodeCaptchaUnsolvable ErrorCode = "ERROR_CAPTCHA_UNSOLVABLE"

	// Account and access conditions.
	CodeKeyDoesNotExist  ErrorCode = "ERROR_KEY_DOES_NOT_EXIST"
	CodeZeroBalance      ErrorCode = "ERROR_ZERO_BALANCE"
	CodeIPNotAllowed     ErrorCode = "ERROR_IP_NOT_ALLOWED"
	CodeIPBlocked        ErrorCode = "ERROR_IP_BLOCKED"
	CodeAccountSuspended ErrorCode = "ERROR_ACCOUNT_SUSPENDED"

	// Task validation conditions.
	CodePageURL          ErrorCode = "ERROR_PAGEURL"
	CodeBadParameters    ErrorCode = "ERROR_BAD_PARAMETERS"
	CodeBadProxy         ErrorCode = "ERROR_BAD_PROXY"
	CodeInvalidSiteKey   ErrorCode = "ERROR_RECAPTCHA_INVALID_SITEKEY"
	CodeTaskAbsent       ErrorCode = "ERROR_TASK_ABSENT"
	CodeTaskNotSupported ErrorCode = "ERROR_TASK_NOT_SUPPORTED"
	CodeZeroImageSize    ErrorCode = "ERROR_ZERO_CAPTCHA_FILESIZE"
	CodeImageTooBig      ErrorCode = "ERROR_TOO_BIG_CAPTCHA_FILESIZE"
)

func (c ErrorCode) IsRetryable() bool {
	return c == CodeNoSlotAvailable
}

func (c ErrorCode) ShouldRetryOperation() bool {
	switch c {
	case CodeNoSlotAvailable, CodeCaptchaUnsolvable:
		return true
	}
	return false
}

// APIError is a structured error response from the RuCaptcha API.
type APIError struct {
	ErrorID     int
	Code        ErrorCode
	Description string
}

func (e *APIError) Error() string {
	desc := e.Description
	if desc == "" {
		desc = "no description"
	}
	return fmt.Sprintf("rucaptcha error [%d]: %s - %s", e.ErrorID, e.Code, desc)
}

func (e *APIError) IsRetryable() bool { return e.Code.IsRetryable() }

func (e *APIError) ShouldRetryOperation() bool { return e.Code.ShouldRetryOperation() }
