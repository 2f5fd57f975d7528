package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Kind classifies a facade failure per the client error taxonomy.
type Kind int

const (
	// KindTransport: no usable response was received.
	KindTransport Kind = iota
	// KindAuth: 401/403, the session has been invalidated.
	KindAuth
	// KindValidation: other 4xx carrying a backend message.
	KindValidation
	// KindServer: 5xx.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the normalized failure every facade call returns. Message is
// human-readable: the backend's own error field when present, otherwise a
// generic fallback.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	wrapped    error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// errorEnvelope covers both envelopes the backend uses: {"message": ...}
// and {"error": ...}.
type errorEnvelope struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// newHTTPError builds an *Error from a non-2xx response body.
func newHTTPError(status int, body []byte) *Error {
	var env errorEnvelope
	msg := ""
	if len(body) > 0 && json.Unmarshal(body, &env) == nil {
		if env.Message != "" {
			msg = env.Message
		} else if env.Err != "" {
			msg = env.Err
		}
	}

	switch {
	case status == 401 || status == 403:
		if msg == "" {
			msg = "session expirée, veuillez vous reconnecter"
		}
		return &Error{Kind: KindAuth, StatusCode: status, Message: msg, wrapped: domain.ErrSessionExpired}
	case status == 404:
		if msg == "" {
			msg = "ressource introuvable"
		}
		return &Error{Kind: KindValidation, StatusCode: status, Message: msg, wrapped: domain.ErrNotFound}
	case status >= 500:
		if msg == "" {
			msg = "erreur serveur, veuillez réessayer"
		}
		return &Error{Kind: KindServer, StatusCode: status, Message: msg}
	default:
		if msg == "" {
			msg = fmt.Sprintf("requête rejetée (%d)", status)
		}
		return &Error{Kind: KindValidation, StatusCode: status, Message: msg}
	}
}

// MessageFor extracts the human-readable message from any error the facade
// or a store returned, falling back to the supplied default. Domain stores
// use it to fill their lastError field.
func MessageFor(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
