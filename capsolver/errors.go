package capsolver

import "fmt"

// ErrorCode is a Capsolver API error code. Codes not listed here are kept
// verbatim and classified as permanent on both axes.
//
// See https://docs.capsolver.com for the full table.
type ErrorCode string

const (
	// Transient server-side conditions.
	CodeServiceUnavailable ErrorCode = "ERROR_SERVICE_UNAVALIABLE" // sic, as the API spells it
	CodeRateLimit          ErrorCode = "ERROR_RATE_LIMIT"
	CodeIPBanned           ErrorCode = "ERROR_IP_BANNED"
	CodeKeyTempBlocked     ErrorCode = "ERROR_KEY_TEMP_BLOCKED"

	// Client-side / account conditions.
	CodeZeroBalance      ErrorCode = "ERROR_ZERO_BALANCE"
	CodeKeyDeniedAccess  ErrorCode = "ERROR_KEY_DENIED_ACCESS"
	CodeInvalidTaskData  ErrorCode = "ERROR_INVALID_TASK_DATA"
	CodeBadRequest       ErrorCode = "ERROR_BAD_REQUEST"
	CodeTaskIDInvalid    ErrorCode = "ERROR_TASKID_INVALID"
	CodeTaskNotFound     ErrorCode = "ERROR_TASK_NOT_FOUND"
	CodeTaskNotSupported ErrorCode = "ERROR_TASK_NOT_SUPPORTED"
	CodeUnknownQuestion  ErrorCode = "ERROR_UNKNOWN_QUESTION"
	CodeProxyBanned      ErrorCode = "ERROR_PROXY_BANNED"
	CodeInvalidImage     ErrorCode = "ERROR_INVALID_IMAGE"
	CodeParseImageFail   ErrorCode = "ERROR_PARSE_IMAGE_FAIL"

	// Task outcomes: the task itself is dead, a fresh one might work.
	CodeTaskTimeout       ErrorCode = "ERROR_TASK_TIMEOUT"
	CodeCaptchaUnsolvable ErrorCode = "ERROR_CAPTCHA_UNSOLVABLE"
	CodeSettlementFailed  ErrorCode = "ERROR_SETTLEMENT_FAILED"
)

// IsRetryable reports whether the same call may be repeated after this code.
// TASK_NOT_FOUND is included: Capsolver sometimes returns it for a freshly
// created task before it propagates.
func (c ErrorCode) IsRetryable() bool {
	switch c {
	case CodeServiceUnavailable, CodeRateLimit, CodeIPBanned, CodeKeyTempBlocked, CodeTaskNotFound:
		return true
	}
	return false
}

// ShouldRetryOperation reports whether a fresh task submission might succeed
// after this code. Task-outcome codes are included: the task failed, not the
// account.
func (c ErrorCode) ShouldRetryOperation() bool {
	if c.IsRetryable() {
		return true
	}
	switch c {
	case CodeTaskTimeout, CodeCaptchaUnsolvable, CodeSettlementFailed:
		return true
	}
	return false
}

// APIError is a structured error response from the Capsolver API. Its retry
// classification is driven entirely by the error code table.
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
	return fmt.Sprintf("capsolver error [%d]: %s - %s", e.ErrorID, e.Code, desc)
}

func (e *APIError) IsRetryable() bool { return e.Code.IsRetryable() }

func (e *APIError) ShouldRetryOperation() bool { return e.Code.ShouldRetryOperation() }
