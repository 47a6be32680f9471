package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/review"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrPickupNotReady is returned for a pickup code of an order that is not waiting for pickup.
var ErrPickupNotReady = errors.New("the order is not waiting for pickup")

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a use case error to a response status and the message shown to the caller.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, "the service is temporarily unavailable, try again shortly"
	case errors.Is(err, order.ErrNotParticipant):
		return http.StatusForbidden, "you do not take part in this order"
	case errors.Is(err, order.ErrRoleNotAllowed):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, cart.ErrRestaurantMismatch),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrDuplicateOrder),
		errors.Is(err, review.ErrNotDelivered),
		errors.Is(err, review.ErrAlreadyReviewed),
		errors.Is(err, commands.ErrMenuItemIsUnavailable),
		errors.Is(err, ErrPickupNotReady):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrQuantityDeltaIsZero):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
			"error", err,
		)
	} else {
		s.logger.DebugContext(c.Request().Context(), "request rejected", "status", status, "error", err)
	}
	return c.JSON(status, ErrorResponse{Code: status, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: msg})
}
