package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/orderservice/app/services"
	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/response"
)

// renderError is the only place domain errors become HTTP statuses.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound *services.OrderNotFoundError
		invalid  *services.InvalidOrderError
	)

	switch {
	case errors.As(err, &notFound):
		response.Error(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		response.Error(w, http.StatusNotFound, "Order not found or access denied")
	case errors.As(err, &invalid):
		response.ValidationError(w, invalid.Fields)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrUnauthenticated):
		response.Unauthorized(w)
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
