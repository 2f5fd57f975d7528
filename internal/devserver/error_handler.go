package devserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// errorResponse is the canonical error envelope: {"message": "<cause>"}.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler maps known domain errors to deterministic HTTP codes,
// logs unexpected errors without leaking details, and renders the canonical
// envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "ressource introuvable"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "accès refusé"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "identifiants invalides"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "un compte existe déjà pour cet email"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "erreur interne du serveur"
}
