package webhooks

import "fmt"

// ErrorType categorizes webhook delivery failures
type ErrorType string

const (
	ErrorTypeTimeout          ErrorType = "timeout"
	ErrorTypeNetwork          ErrorType = "network"
	ErrorTypeServerError      ErrorType = "server_error"
	ErrorTypeRejected         ErrorType = "rejected"
	ErrorTypeGone             ErrorType = "gone"
	ErrorTypeInvalidTarget    ErrorType = "invalid_target"
	ErrorTypeInvalidPayload   ErrorType = "invalid_payload"
	ErrorTypeCancelled        ErrorType = "cancelled"
	ErrorTypeQueueUnavailable ErrorType = "queue_unavailable"
)

// DeliveryError represents a failed attempt to deliver a webhook
type DeliveryError struct {
	Type       ErrorType
	Message    string
	Cause      error
	StatusCode int
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns true if the delivery is likely to succeed on retry
func (e *DeliveryError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeServerError, ErrorTypeNetwork, ErrorTypeTimeout:
		return true
	default:
		return false
	}
}

// UserMessage returns the text stored as the webhook's last error
func (e *DeliveryError) UserMessage() string {
	switch e.Type {
	case ErrorTypeTimeout:
		return "Request timed out"
	case ErrorTypeNetwork:
		return fmt.Sprintf("Network error: %v", e.Cause)
	case ErrorTypeServerError, ErrorTypeRejected, ErrorTypeGone:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	case ErrorTypeInvalidTarget:
		return fmt.Sprintf("Invalid target URL: %s", e.Message)
	case ErrorTypeInvalidPayload:
		return fmt.Sprintf("Could not encode payload: %v", e.Cause)
	case ErrorTypeCancelled:
		return "Delivery was cancelled"
	case ErrorTypeQueueUnavailable:
		return "Delivery queue unavailable"
	default:
		return e.Message
	}
}

// Status is the value recorded as last_triggered_status.
func (e *DeliveryError) Status() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%d", e.StatusCode)
	}
	return string(e.Type)
}

func newTimeoutError(cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrorTypeTimeout,
		Message: "Request timed out",
		Cause:   cause,
	}
}

func newNetworkError(cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrorTypeNetwork,
		Message: "Network error",
		Cause:   cause,
	}
}

func newCancelledError(cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrorTypeCancelled,
		Message: "Delivery cancelled",
		Cause:   cause,
	}
}

func newStatusError(statusCode int, status string) *DeliveryError {
	t := ErrorTypeRejected
	switch {
	case statusCode == 410:
		t = ErrorTypeGone
	case statusCode >= 500:
		t = ErrorTypeServerError
	}
	return &DeliveryError{
		Type:       t,
		Message:    status,
		StatusCode: statusCode,
	}
}

func newInvalidTargetError(message string, cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrorTypeInvalidTarget,
		Message: message,
		Cause:   cause,
	}
}

func newInvalidPayloadError(cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrorTypeInvalidPayload,
		Message: "payload could not be encoded",
		Cause:   cause,
	}
}

func newQueueUnavailableError(cause error) *DeliveryError {
	return &DeliveryError{
		Type:    ErrorTypeQueueUnavailable,
		Message: "delivery queue unavailable",
		Cause:   cause,
	}
}
