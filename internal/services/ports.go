package services

import (
	"context"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

// BookingStore persists bookings. Every method runs in its own transaction.
type BookingStore interface {
	Insert(ctx context.Context, b models.Booking, schema models.ParticipantSchema) error
	Get(ctx context.Context, id string, schema models.ParticipantSchema) (models.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (models.Booking, error)
	ReplaceParticipants(ctx context.Context, id string, schema models.ParticipantSchema, participants []models.Participant, guard func(models.Booking) error) (models.Booking, error)
}

type Catalog interface {
	GetPackage(ctx context.Context, id string) (models.Package, error)
	GetResource(ctx context.Context, id string) (models.Resource, error)
}

// SchemaSource describes the participant record type.
type SchemaSource interface {
	ParticipantSchema(ctx context.Context) (models.ParticipantSchema, error)
}

// ApprovedBookingReader is the only view of bookings the trip aggregator has.
// Every method sees Approved bookings only.
type ApprovedBookingReader interface {
	ListTripGroups(ctx context.Context, q models.TripQuery, page domain.Pagination) ([]models.TripSummary, error)
	CountTripGroups(ctx context.Context, q models.TripQuery) (int, error)
	GetApproved(ctx context.Context, id string) (models.Booking, error)
	ListApproved(ctx context.Context, pkg, bookingDate string) ([]models.Booking, error)
	ListLineItems(ctx context.Context, ids []string) (map[string][]models.VariationQuantity, error)
	ListParticipants(ctx context.Context, schema models.ParticipantSchema, ids []string) (map[string][]models.Participant, error)
}
