package handler

import (
	"errors"
	"net/http"

	"noteshare-server/internal/service"
	"noteshare-server/pkg/response"
)

// writeServiceError maps the service error taxonomy onto status codes.
// Unrecognized errors are storage failures and surface as 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmailTaken):
		response.UnprocessableEntity(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
