package translator

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed translation attempt.
type ErrorKind string

const (
	KindTimeout            ErrorKind = "timeout"
	KindServerError        ErrorKind = "server_error"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindRateLimited        ErrorKind = "rate_limited"
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindAccessDenied       ErrorKind = "access_denied"
	KindNotFound           ErrorKind = "not_found"
	KindGenericFailure     ErrorKind = "generic_failure"
	KindMalformedResponse  ErrorKind = "malformed_response"
	KindNetworkError       ErrorKind = "network_error"
)

// User-facing messages.
const (
	msgServerError        = "Server error. The translation service is experiencing issues."
	msgServiceUnavailable = "Service unavailable. Please try again in a moment."
	msgGatewayTimeout     = "Request timed out. Try a shorter text."
	msgRateLimited        = "Too many requests. Please wait a moment."
	msgInvalidRequest     = "Invalid request. Please try different text."
	msgAccessDenied       = "Access denied. Please try again."
	msgNotFound           = "Translation service not found."
	msgInvalidJSON        = "Invalid response from server. Please try again."
	msgInvalidFormat      = "Invalid response format"
	msgNoCompletion       = "No translation received"
	msgDeadline           = "Request timed out. Please check your connection and try again."
	msgNetworkNative      = "Cannot connect to translation service. Please check your internet connection."
	msgNetworkBrowser     = "Connection error. Please check your internet or try refreshing the page."
	msgUnexpected         = "Translation failed. Please check your connection and try again."
	msgConnectionFailed   = "Connection failed. Please check your internet and try again 💡"
)

// Error is a classified translation failure. Error() returns a message that
// can be shown to the user as is.
type Error struct {
	Kind    ErrorKind
	Message string
	// StatusCode is set for failures derived from an HTTP response.
	StatusCode int
	// Detail is the diagnostic text read from an error response body.
	Detail string
	// Connectivity marks transport failures and client-side deadline expiry,
	// the only failures eligible for a retry.
	Connectivity bool
	// Attempt is 1 or 2.
	Attempt int
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure qualifies for the single retry.
func (e *Error) Retryable() bool {
	return e.Connectivity
}

// KindOf returns the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}

// IsRetryable reports whether err is a connectivity failure.
func IsRetryable(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Retryable()
}

// classifyStatus maps a non-2xx status to an Error. First match wins.
func classifyStatus(status int, detail string) *Error {
	e := &Error{StatusCode: status, Detail: detail}

	switch {
	case status == http.StatusInternalServerError:
		e.Kind, e.Message = KindServerError, msgServerError
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		e.Kind, e.Message = KindServiceUnavailable, msgServiceUnavailable
	case status == http.StatusGatewayTimeout:
		// Same kind as a client-side deadline, but the server gave up, so it
		// is not a connectivity failure.
		e.Kind, e.Message = KindTimeout, msgGatewayTimeout
	case status == http.StatusTooManyRequests:
		e.Kind, e.Message = KindRateLimited, msgRateLimited
	case status == http.StatusBadRequest:
		e.Kind, e.Message = KindInvalidRequest, msgInvalidRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind, e.Message = KindAccessDenied, msgAccessDenied
	case status == http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, msgNotFound
	case status >= 500:
		e.Kind, e.Message = KindServerError, fmt.Sprintf("Server error (%d). Please try again.", status)
	default:
		hint := detail
		if hint == "" {
			hint = "Please try again."
		}
		e.Kind, e.Message = KindGenericFailure, fmt.Sprintf("Translation failed (%d). %s", status, hint)
	}

	return e
}

func malformed(msg string, cause error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: msg, Cause: cause}
}

func deadlineExceeded(cause error) *Error {
	return &Error{Kind: KindTimeout, Message: msgDeadline, Connectivity: true, Cause: cause}
}

func networkError(host Host, cause error) *Error {
	msg := msgNetworkNative
	if host == HostBrowser {
		msg = msgNetworkBrowser
	}
	return &Error{Kind: KindNetworkError, Message: msg, Connectivity: true, Cause: cause}
}

func unexpected(cause error) *Error {
	return &Error{Kind: KindGenericFailure, Message: msgUnexpected, Cause: cause}
}

func connectionFailed(cause error) *Error {
	return &Error{Kind: KindNetworkError, Message: msgConnectionFailed, Connectivity: true, Attempt: 2, Cause: cause}
}
