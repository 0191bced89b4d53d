package handlers

import (
	"net/http"

	"github.com/Tripcarte/easytix-booking/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type bookingStatusView struct {
	Name        string               `json:"name"`
	BookingName string               `json:"booking_name"`
	Status      models.BookingStatus `json:"status"`
}

type manifestView struct {
	bookingStatusView
	Participants []models.Participant `json:"participants"`
}

type manifestRequest struct {
	Participants []models.Participant `json:"participants"`
}

func statusView(b models.Booking) bookingStatusView {
	return bookingStatusView{Name: b.ID, BookingName: b.BookingName, Status: b.Status}
}

// CreateBooking handles POST /api/bookings.
func (h Handler) CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !h.BindJSONOrError(c, intentCreate, &in) {
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, intentCreate, err)
		return
	}
	h.succeed(c, http.StatusCreated, intentCreate, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h Handler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), pathID(c))
	if err != nil {
		h.readError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// FinalizeBooking handles POST /api/bookings/:id/finalize.
func (h Handler) FinalizeBooking(c *gin.Context) {
	b, err := h.Bookings.Finalize(c.Request.Context(), pathID(c))
	if err != nil {
		h.fail(c, intentFinalize, err)
		return
	}
	h.succeed(c, http.StatusOK, intentFinalize, statusView(b))
}

func (h Handler) ApproveBooking(c *gin.Context) {
	b, err := h.Bookings.Approve(c.Request.Context(), pathID(c))
	if err != nil {
		h.fail(c, intentReview, err)
		return
	}
	h.succeed(c, http.StatusOK, intentReview, statusView(b))
}

func (h Handler) RejectBooking(c *gin.Context) {
	b, err := h.Bookings.Reject(c.Request.Context(), pathID(c))
	if err != nil {
		h.fail(c, intentReview, err)
		return
	}
	h.succeed(c, http.StatusOK, intentReview, statusView(b))
}

// UpdateBookingManifest handles PUT /api/bookings/:id/manifest. The roster is
// replaced wholesale.
func (h Handler) UpdateBookingManifest(c *gin.Context) {
	var req manifestRequest
	if !h.BindJSONOrError(c, intentManifest, &req) {
		return
	}
	b, err := h.Bookings.UpdateManifest(c.Request.Context(), pathID(c), req.Participants)
	if err != nil {
		h.fail(c, intentManifest, err)
		return
	}
	h.succeed(c, http.StatusOK, intentManifest, manifestView{
		bookingStatusView: statusView(b),
		Participants:      b.Participants,
	})
}
