package presenter

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/regulaworks/vendorcomply/internal/domain"
)

type errorResponse struct {
	Error        string   `json:"error"`
	MissingTypes []string `json:"missingTypes,omitempty"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// Error maps the engine's error taxonomy onto HTTP status codes. All
// taxonomy members are recoverable 4xx at this boundary; anything else
// is an infrastructure failure.
func Error(c echo.Context, err error) error {
	var incomplete domain.IncompleteSubmissionError
	if errors.As(err, &incomplete) {
		missing := make([]string, len(incomplete.MissingTypes))
		for i, t := range incomplete.MissingTypes {
			missing[i] = string(t)
		}
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:        incomplete.Error(),
			MissingTypes: missing,
		})
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAuthorization):
		return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrPrecondition),
		errors.Is(err, domain.ErrConcurrentModification):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
