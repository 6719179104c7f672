package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripform/internal/models"
)

func errorJSON(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    code,
	})
}

// respondError maps engine and collaborator errors onto HTTP responses.
func respondError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	var herr *echo.HTTPError

	switch {
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, models.ErrSubmissionNotFound):
		return errorJSON(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrUnknownField), errors.Is(err, models.ErrInvalidValue),
		errors.Is(err, models.ErrPassengerIndex):
		return errorJSON(c, http.StatusBadRequest, "invalid_event", err.Error())
	case errors.As(err, &verrs):
		return errorJSON(c, http.StatusBadRequest, "validation_error", verrs.Error())
	case errors.As(err, &herr):
		return errorJSON(c, herr.Code, "invalid_request", "Failed to parse request: "+errorMessage(herr))
	default:
		log.Printf("request %s failed: %v", c.Request().URL.Path, err)
		return errorJSON(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func errorMessage(herr *echo.HTTPError) string {
	if herr.Internal != nil {
		return herr.Internal.Error()
	}
	if msg, ok := herr.Message.(string); ok {
		return msg
	}
	return http.StatusText(herr.Code)
}
