package handlers

import (
	"net/http"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const msgInternal = "internal storage error"

// ErrorResponse standardizes error payloads for read endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsState(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch statusFor(err) {
	case http.StatusBadRequest:
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case http.StatusNotFound:
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case http.StatusConflict:
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", msgInternal, nil)
	}
}
