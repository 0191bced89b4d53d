package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/http/middleware"
	"github.com/Tripcarte/easytix-booking/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListScheduledTrips handles GET /api/scheduled-trips.
func (h Handler) ListScheduledTrips(c *gin.Context) {
	filters, err := services.NormalizeTripFilters(c.Query("filters"))
	if err != nil {
		h.readError(c, err)
		return
	}
	start, err := queryInt(c, "limit_start")
	if err != nil {
		h.readError(c, err)
		return
	}
	length, err := queryInt(c, "limit_page_length")
	if err != nil {
		h.readError(c, err)
		return
	}

	rows, err := h.Trips.ListTrips(c.Request.Context(), filters, start, length)
	if err != nil {
		h.readError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// CountScheduledTrips handles GET /api/scheduled-trips/count.
func (h Handler) CountScheduledTrips(c *gin.Context) {
	filters, err := services.NormalizeTripFilters(c.Query("filters"))
	if err != nil {
		h.readError(c, err)
		return
	}
	n, err := h.Trips.CountTrips(c.Request.Context(), filters)
	if err != nil {
		h.readError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": n})
}

// GetScheduledTrip handles GET /api/scheduled-trips/:id, where id is either a
// member booking or "{package}-{YYYY-MM-DD}".
func (h Handler) GetScheduledTrip(c *gin.Context) {
	trip, err := h.Trips.LoadTrip(c.Request.Context(), pathID(c))
	if err != nil {
		h.readError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trip})
}

func (h Handler) readError(c *gin.Context, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		h.logger().Error("read failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	RespondDomainError(c, err)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationError{Field: key, Msg: key + " must be an integer", Err: err}
	}
	return n, nil
}
