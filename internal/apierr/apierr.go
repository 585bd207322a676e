// Package apierr defines the stable error taxonomy returned to API clients and
// the gin helpers that render it.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind string

const (
	MissingCredential   Kind = "missing_credential"
	InvalidCredential   Kind = "invalid_credential"
	CredentialExpired   Kind = "credential_expired"
	PrincipalNotFound   Kind = "principal_not_found"
	Forbidden           Kind = "forbidden"
	InvalidPayload      Kind = "invalid_payload"
	MalformedIdentifier Kind = "malformed_identifier"
	ResourceNotFound    Kind = "resource_not_found"
	RouteNotFound       Kind = "route_not_found"
	UpstreamFailure     Kind = "upstream_failure"
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case MissingCredential, InvalidCredential, CredentialExpired:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case PrincipalNotFound, ResourceNotFound, RouteNotFound:
		return http.StatusNotFound
	case InvalidPayload, MalformedIdentifier:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and a client-facing message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Upstream classifies a store or provider failure.
func Upstream(message string, err error) *Error {
	return Wrap(UpstreamFailure, message, err)
}

// KindOf returns the kind carried by err, or UpstreamFailure when err carries none.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return UpstreamFailure
}

type Body struct {
	Message string `json:"message"`
	Code    Kind   `json:"code"`
}

type Envelope struct {
	Error  Body   `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Respond aborts the request with err rendered as an Envelope. Errors without a
// kind are treated as upstream failures; their detail is only exposed outside
// release mode.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Upstream("internal server error", err)
	}

	env := Envelope{Error: Body{Message: apiErr.Message, Code: apiErr.Kind}}
	if env.Error.Message == "" {
		env.Error.Message = http.StatusText(apiErr.Kind.Status())
	}
	if apiErr.Kind == UpstreamFailure && apiErr.Err != nil && gin.Mode() != gin.ReleaseMode {
		env.Detail = apiErr.Err.Error()
	}
	if apiErr.Kind == UpstreamFailure {
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(apiErr.Kind.Status(), env)
}
