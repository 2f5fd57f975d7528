package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when the backend rejects a login
	// or when a credential payload fails basic validation.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned once the backend answers 401 to an
	// authenticated request; the local session is cleared as a side effect.
	ErrSessionExpired = errors.New("session expired")

	// ErrRoleNotAllowed is returned when a freshly issued profile does not
	// carry the role the calling application requires (admin console).
	ErrRoleNotAllowed = errors.New("role not allowed for this application")

	// ErrNotAuthenticated is returned by operations that need a session
	// when none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound mirrors a backend 404.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden mirrors a backend 403.
	ErrForbidden = errors.New("access forbidden")

	// ErrUserExists mirrors a backend 409 on registration.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidTransition is reported by the devserver when a lifecycle
	// move is not permitted from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
