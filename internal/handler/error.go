package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hostel-service/internal/apperr"
	"hostel-service/pkg/logger"
)

// writeError maps a service error onto the HTTP surface: not-found is
// 404, capacity/state/validation problems are 400, uniqueness conflicts
// are 409, everything else is a 500 with a generic body.
func writeError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	var (
		notFound     *apperr.NotFoundError
		conflict     *apperr.ConflictError
		validation   *apperr.ValidationError
		capacity     *apperr.CapacityError
		invalidState *apperr.InvalidStateError
	)

	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	case errors.As(err, &capacity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": capacity.Error()})
	case errors.As(err, &invalidState):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalidState.Error()})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validation.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	default:
		log.Error("Unexpected error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
