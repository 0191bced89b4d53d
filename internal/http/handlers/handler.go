package handlers

import (
	"context"
	"database/sql"

	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/services"

	"go.uber.org/zap"
)

type BookingOps interface {
	Create(ctx context.Context, in models.BookingInput) (models.Booking, error)
	Get(ctx context.Context, id string) (models.Booking, error)
	Finalize(ctx context.Context, id string) (models.Booking, error)
	Approve(ctx context.Context, id string) (models.Booking, error)
	Reject(ctx context.Context, id string) (models.Booking, error)
	UpdateManifest(ctx context.Context, id string, participants []models.Participant) (models.Booking, error)
}

type TripReader interface {
	ListTrips(ctx context.Context, filters services.TripFilter, start, length int) ([]models.TripSummary, error)
	CountTrips(ctx context.Context, filters services.TripFilter) (int, error)
	LoadTrip(ctx context.Context, tripID string) (models.TripDetail, error)
}

type ManifestRenderer interface {
	GenerateTripManifest(ctx context.Context, tripID string) ([]byte, string, error)
}

// Handler serves the booking and scheduled trip endpoints.
type Handler struct {
	Bookings BookingOps
	Trips    TripReader
	Docs     ManifestRenderer
	DB       *sql.DB
	Log      *zap.Logger
}

func (h Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
