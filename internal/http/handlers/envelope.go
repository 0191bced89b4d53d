package handlers

import (
	"errors"
	"net/http"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the response shape of every mutating endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type intent struct {
	failure string
	success string
	// bareNotFound reports a missing booking without the failure prefix.
	bareNotFound bool
}

var (
	intentCreate   = intent{failure: "Failed to create booking", success: "Booking created successfully"}
	intentFinalize = intent{failure: "Failed to update booking status", success: "Booking status updated successfully", bareNotFound: true}
	intentManifest = intent{failure: "Failed to update booking manifest", success: "Booking manifest updated successfully", bareNotFound: true}
	intentReview   = intent{failure: "Failed to review booking", success: "Booking status updated successfully", bareNotFound: true}
)

func (h Handler) succeed(c *gin.Context, status int, in intent, data any) {
	c.JSON(status, Envelope{Status: "success", Data: data, Message: in.success})
}

func (h Handler) fail(c *gin.Context, in intent, err error) {
	status := statusFor(err)
	msg := in.failure + ": " + err.Error()

	var nf domain.NotFoundError
	if in.bareNotFound && errors.As(err, &nf) && nf.Resource == "Booking" {
		msg = err.Error()
	}
	if status == http.StatusInternalServerError {
		h.logger().Error(in.failure,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("kind", domain.Kind(err)),
			zap.Error(err),
		)
		msg = in.failure + ": " + msgInternal
	}
	c.JSON(status, Envelope{Status: "error", Data: gin.H{}, Message: msg})
}
