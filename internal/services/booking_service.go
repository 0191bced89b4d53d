package services

import (
	"context"
	"strings"
	"time"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgRequiredFields = "All required fields must be provided"
	msgInvalidDate    = "Invalid booking date format. Use YYYY-MM-DD"
	msgInvalidEmail   = "Invalid email address"
)

var validate = validator.New()

// BookingService owns the booking lifecycle: intake, finalize, review and
// manifest replacement.
type BookingService struct {
	Store   BookingStore
	Catalog Catalog
	Schema  SchemaSource
	Log     *zap.Logger
	NewID   func() string
}

func (s BookingService) log(ctx context.Context) *zap.Logger {
	return utils.OrNop(s.Log).With(zap.String("request_id", domain.RequestIDFrom(ctx)))
}

func (s BookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Create validates in and stores a new booking in status Created.
func (s BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	in.BookingName = strings.TrimSpace(in.BookingName)
	in.Email = strings.TrimSpace(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Package = strings.TrimSpace(in.Package)
	in.BookingDate = strings.TrimSpace(in.BookingDate)

	if in.BookingName == "" || in.Email == "" || in.ContactNumber == "" || in.Package == "" || in.BookingDate == "" {
		return models.Booking{}, domain.ValidationError{Msg: msgRequiredFields}
	}

	pkg, err := s.Catalog.GetPackage(ctx, in.Package)
	if err != nil {
		return models.Booking{}, err
	}

	date, err := utils.ParseDate(in.BookingDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "booking_date", Msg: msgInvalidDate, Err: err}
	}

	ledger, err := domain.NewLedger(in.VariationQuantity)
	if err != nil {
		return models.Booking{}, err
	}

	if err := validate.Var(in.Email, "required,email"); err != nil {
		return models.Booking{}, domain.ValidationError{Field: "email", Msg: msgInvalidEmail, Err: err}
	}

	if !ledger.Allows(len(in.Participants)) {
		return models.Booking{}, domain.ValidationError{Field: "participants", Msg: domain.MsgTooManyParticipants}
	}

	schema, err := s.Schema.ParticipantSchema(ctx)
	if err != nil {
		return models.Booking{}, err
	}

	now := time.Now().UTC()
	b := models.Booking{
		ID:                s.newID(),
		BookingName:       in.BookingName,
		Email:             in.Email,
		ContactNumber:     in.ContactNumber,
		Package:           pkg.ID,
		BookingDate:       utils.FormatDate(date),
		Status:            models.StatusCreated,
		Quantity:          ledger.Total(),
		VariationQuantity: ledger.Items(),
		Participants:      nonNilParticipants(in.Participants),
		SpecialRequests:   in.SpecialRequests,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if b.SpecialRequests == nil {
		b.SpecialRequests = []models.SpecialRequest{}
	}
	if actor, ok := domain.ActorFrom(ctx); ok {
		b.Owner = actor.Subject
	}
	s.warnUnknownFields(ctx, schema, b.Participants)

	if err := s.Store.Insert(ctx, b, schema); err != nil {
		s.log(ctx).Error("create booking failed", zap.String("package", b.Package), zap.Error(err))
		return models.Booking{}, err
	}

	b.Participants = project(schema, b.Participants)
	s.log(ctx).Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("package", b.Package),
		zap.String("booking_date", b.BookingDate),
		zap.Int("quantity", b.Quantity),
	)
	return b, nil
}

// Finalize moves a booking from Created to Pending. Only one call per booking
// ever succeeds.
func (s BookingService) Finalize(ctx context.Context, id string) (models.Booking, error) {
	return s.transition(ctx, id, models.StatusCreated, models.StatusPending)
}

// Approve moves a Pending booking to Approved, making it part of its trip.
func (s BookingService) Approve(ctx context.Context, id string) (models.Booking, error) {
	return s.transition(ctx, id, models.StatusPending, models.StatusApproved)
}

func (s BookingService) Reject(ctx context.Context, id string) (models.Booking, error) {
	return s.transition(ctx, id, models.StatusPending, models.StatusRejected)
}

func (s BookingService) transition(ctx context.Context, id string, from, to models.BookingStatus) (models.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "booking id is required"}
	}
	b, err := s.Store.UpdateStatus(ctx, id, from, to)
	if err != nil {
		s.log(ctx).Warn("booking transition refused",
			zap.String("booking_id", id),
			zap.String("to", string(to)),
			zap.String("kind", domain.Kind(err)),
			zap.Error(err),
		)
		return models.Booking{}, err
	}
	s.log(ctx).Info("booking status changed",
		zap.String("booking_id", id),
		zap.String("from", string(from)),
		zap.String("status", string(b.Status)),
	)
	return b, nil
}

// UpdateManifest replaces the whole participant roster of a booking.
func (s BookingService) UpdateManifest(ctx context.Context, id string, participants []models.Participant) (models.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "booking id is required"}
	}
	if participants == nil {
		return models.Booking{}, domain.ValidationError{Field: "participants", Msg: "participants must be provided"}
	}

	schema, err := s.Schema.ParticipantSchema(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	s.warnUnknownFields(ctx, schema, participants)

	b, err := s.Store.ReplaceParticipants(ctx, id, schema, participants, func(locked models.Booking) error {
		return domain.CheckManifest(locked, len(participants))
	})
	if err != nil {
		s.log(ctx).Warn("manifest update refused",
			zap.String("booking_id", id),
			zap.Int("participants", len(participants)),
			zap.String("kind", domain.Kind(err)),
			zap.Error(err),
		)
		return models.Booking{}, err
	}
	s.log(ctx).Info("manifest replaced",
		zap.String("booking_id", id),
		zap.Int("participants", len(b.Participants)),
		zap.Int("quantity", b.Quantity),
		zap.String("schema_version", schema.Version),
	)
	return b, nil
}

func (s BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "booking id is required"}
	}
	schema, err := s.Schema.ParticipantSchema(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	return s.Store.Get(ctx, id, schema)
}

func (s BookingService) warnUnknownFields(ctx context.Context, schema models.ParticipantSchema, participants []models.Participant) {
	seen := map[string]bool{}
	var dropped []string
	for _, p := range participants {
		for _, k := range schema.Unknown(p) {
			if !seen[k] {
				seen[k] = true
				dropped = append(dropped, k)
			}
		}
	}
	if len(dropped) > 0 {
		s.log(ctx).Warn("participant fields not declared, dropped",
			zap.Strings("fields", dropped),
			zap.String("schema_version", schema.Version),
		)
	}
}

func project(schema models.ParticipantSchema, in []models.Participant) []models.Participant {
	out := make([]models.Participant, 0, len(in))
	for _, p := range in {
		out = append(out, schema.Project(p))
	}
	return out
}

func nonNilParticipants(in []models.Participant) []models.Participant {
	if in == nil {
		return []models.Participant{}
	}
	return in
}
