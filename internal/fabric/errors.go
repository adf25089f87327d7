package fabric

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthError is returned when the OAuth2 token endpoint rejects the client
// credentials or answers with something that is not a usable token.
type AuthError struct {
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed: token endpoint returned HTTP %d: %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	default:
		return "authentication failed"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response from the Fabric API. Body holds the raw
// response text so provider validation messages reach the caller verbatim.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s (%s %s): %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.Path, e.Body)
}

// TransportError wraps connection level failures: DNS, TLS, refused
// connections and timeouts.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotSupportedError marks an operation the Fabric v4 API does not offer.
// Retrying it never helps.
type NotSupportedError struct {
	Operation string
	Reason    string
}

func (e *NotSupportedError) Error() string {
	msg := fmt.Sprintf("%s is not supported by the Equinix Fabric v4 API", e.Operation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NotFoundError is returned when a lookup implemented as a search matched nothing.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ArgumentError reports a missing or invalid caller argument. It is raised
// before any payload is built or request sent.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &ArgumentError{Field: field, Reason: "is required"}
}

// IsNotSupported reports whether err is, or wraps, a *NotSupportedError.
func IsNotSupported(err error) bool {
	var target *NotSupportedError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsArgumentError reports whether err is, or wraps, an *ArgumentError.
func IsArgumentError(err error) bool {
	var target *ArgumentError
	return errors.As(err, &target)
}
