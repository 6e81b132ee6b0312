package handler

import (
	"errors"
	"net/http"

	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors to a status and a message that is safe to
// return. The raw error is attached to the gin context for the request log.
func writeError(c *gin.Context, err error) {
	status, message := errorResponse(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, model.ErrorResponse{Error: message})
}

func errorResponse(err error) (int, string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Detail
	}
	var uerr *service.UserError
	if errors.As(err, &uerr) {
		status, _ := kindResponse(uerr.Kind)
		return status, uerr.Message
	}
	return kindResponse(err)
}

func kindResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, service.ErrInvalidNonce):
		return http.StatusUnauthorized, "Invalid or expired nonce"
	case errors.Is(err, service.ErrInvalidSignature):
		return http.StatusUnauthorized, "Invalid signature"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrExhausted):
		return http.StatusConflict, "No addresses available"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, "Upstream service failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
