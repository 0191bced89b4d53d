package services

import (
	"context"
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/utils"

	"go.uber.org/zap"
)

const (
	defaultPageLength = 20
	msgTripNotFound   = "Scheduled Trip not found"
	dateSuffixLen     = len("2006-01-02")
)

// TripService builds the read-only scheduled trip projection over Approved
// bookings.
type TripService struct {
	Reader            ApprovedBookingReader
	Catalog           Catalog
	Schema            SchemaSource
	Log               *zap.Logger
	DefaultPageLength int
}

func (s TripService) log(ctx context.Context) *zap.Logger {
	return utils.OrNop(s.Log).With(zap.String("request_id", domain.RequestIDFrom(ctx)))
}

func (s TripService) pageLength() int {
	if s.DefaultPageLength > 0 {
		return s.DefaultPageLength
	}
	return defaultPageLength
}

// Page validates an offset window; a zero page length means the default.
func (s TripService) Page(start, length int) (domain.Pagination, error) {
	if start < 0 {
		return domain.Pagination{}, domain.ValidationError{Field: "limit_start", Msg: "limit_start must not be negative"}
	}
	if length < 0 {
		return domain.Pagination{}, domain.ValidationError{Field: "limit_page_length", Msg: "limit_page_length must not be negative"}
	}
	if length == 0 {
		length = s.pageLength()
	}
	return domain.Pagination{Start: start, PageLength: length}, nil
}

// ListTrips returns one page of trip summaries ordered by date, then package name.
func (s TripService) ListTrips(ctx context.Context, filters TripFilter, start, length int) ([]models.TripSummary, error) {
	page, err := s.Page(start, length)
	if err != nil {
		return nil, err
	}
	s.reportIgnored(ctx, filters)

	rows, err := s.Reader.ListTripGroups(ctx, filters.Query(), page)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].ID = models.TripID(rows[i].Package, rows[i].BookingDate)
		rows[i].Available = rows[i].Capacity - rows[i].Quantity
		rows[i].OverCapacity = rows[i].Quantity > rows[i].Capacity
	}
	return rows, nil
}

// CountTrips counts distinct trips under filters; status is always Approved.
func (s TripService) CountTrips(ctx context.Context, filters TripFilter) (int, error) {
	s.reportIgnored(ctx, filters)
	return s.Reader.CountTripGroups(ctx, filters.Query())
}

// LoadTrip reconstructs a trip from any of its Approved bookings, or from the
// composite "{package}-{YYYY-MM-DD}" id.
func (s TripService) LoadTrip(ctx context.Context, tripID string) (models.TripDetail, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return models.TripDetail{}, domain.NotFoundError{Resource: "Scheduled Trip", Msg: msgTripNotFound}
	}

	rep, group, err := s.resolve(ctx, tripID)
	if err != nil {
		return models.TripDetail{}, err
	}

	pkg, err := s.Catalog.GetPackage(ctx, rep.Package)
	if err != nil {
		return models.TripDetail{}, err
	}
	res, err := s.Catalog.GetResource(ctx, pkg.Resource)
	if err != nil {
		return models.TripDetail{}, err
	}

	if group == nil {
		group, err = s.Reader.ListApproved(ctx, rep.Package, rep.BookingDate)
		if err != nil {
			return models.TripDetail{}, err
		}
	}
	ids := make([]string, 0, len(group))
	for _, b := range group {
		ids = append(ids, b.ID)
	}

	items, err := s.Reader.ListLineItems(ctx, ids)
	if err != nil {
		return models.TripDetail{}, err
	}
	schema, err := s.Schema.ParticipantSchema(ctx)
	if err != nil {
		return models.TripDetail{}, err
	}
	parts, err := s.Reader.ListParticipants(ctx, schema, ids)
	if err != nil {
		return models.TripDetail{}, err
	}

	trip := composeTrip(rep, pkg, res, group, items, parts, schema)
	s.log(ctx).Debug("trip loaded",
		zap.String("trip_id", trip.ID),
		zap.Int("bookings", len(trip.Bookings)),
		zap.Int("quantity", trip.Quantity),
	)
	return trip, nil
}

// resolve finds the representative booking. group is non-nil when the
// composite id path already listed the trip's bookings.
func (s TripService) resolve(ctx context.Context, tripID string) (models.Booking, []models.Booking, error) {
	rep, err := s.Reader.GetApproved(ctx, tripID)
	if err == nil {
		return rep, nil, nil
	}
	if !domain.IsNotFound(err) {
		return models.Booking{}, nil, err
	}

	pkg, date, ok := SplitTripID(tripID)
	if !ok {
		return models.Booking{}, nil, domain.NotFoundError{Resource: "Scheduled Trip", Msg: msgTripNotFound}
	}
	group, err := s.Reader.ListApproved(ctx, pkg, date)
	if err != nil {
		return models.Booking{}, nil, err
	}
	if len(group) == 0 {
		return models.Booking{}, nil, domain.NotFoundError{Resource: "Scheduled Trip", Msg: msgTripNotFound}
	}
	return group[0], group, nil
}

// SplitTripID splits "{package}-{YYYY-MM-DD}". The date has a fixed width, so
// hyphens inside the package id are kept.
func SplitTripID(id string) (pkg, bookingDate string, ok bool) {
	if len(id) < dateSuffixLen+2 {
		return "", "", false
	}
	cut := len(id) - dateSuffixLen
	if id[cut-1] != '-' {
		return "", "", false
	}
	pkg, bookingDate = id[:cut-1], id[cut:]
	if !utils.IsDate(bookingDate) {
		return "", "", false
	}
	return pkg, bookingDate, true
}

func composeTrip(
	rep models.Booking,
	pkg models.Package,
	res models.Resource,
	group []models.Booking,
	items map[string][]models.VariationQuantity,
	parts map[string][]models.Participant,
	schema models.ParticipantSchema,
) models.TripDetail {
	trip := models.TripDetail{
		TripSummary: models.TripSummary{
			ID:           models.TripID(rep.Package, rep.BookingDate),
			Name:         rep.ID,
			BookingDate:  rep.BookingDate,
			Package:      pkg.ID,
			PackageName:  pkg.PackageName,
			Resource:     res.ID,
			ResourceName: res.ResourceName,
			Capacity:     res.Capacity,
		},
		Bookings:          make([]models.TripBooking, 0, len(group)),
		Participants:      []models.Participant{},
		VariationQuantity: []models.TripVariation{},
	}

	totals := map[string]int{}
	for i, b := range group {
		trip.Bookings = append(trip.Bookings, models.TripBooking{
			Idx:           i + 1,
			Name:          b.ID,
			BookingName:   b.BookingName,
			Email:         b.Email,
			ContactNumber: b.ContactNumber,
			Status:        b.Status,
			Quantity:      b.Quantity,
		})
		trip.Quantity += b.Quantity

		for _, p := range parts[b.ID] {
			row := schema.Project(p)
			row["idx"] = len(trip.Participants) + 1
			row["booking"] = b.ID
			trip.Participants = append(trip.Participants, row)
		}

		for _, it := range items[b.ID] {
			if _, ok := totals[it.Variation]; !ok {
				trip.VariationQuantity = append(trip.VariationQuantity, models.TripVariation{
					Idx:       len(trip.VariationQuantity) + 1,
					Variation: it.Variation,
				})
			}
			totals[it.Variation] += it.Quantity
		}
	}
	for i := range trip.VariationQuantity {
		trip.VariationQuantity[i].Quantity = totals[trip.VariationQuantity[i].Variation]
	}

	trip.Available = trip.Capacity - trip.Quantity
	trip.OverCapacity = trip.Quantity > trip.Capacity
	return trip
}

func (s TripService) reportIgnored(ctx context.Context, f TripFilter) {
	if len(f.Ignored) == 0 {
		return
	}
	fields := make([]string, 0, len(f.Ignored))
	for _, ig := range f.Ignored {
		fields = append(fields, strings.TrimSpace(ig.Field+" "+ig.Op))
	}
	s.log(ctx).Warn("trip filters ignored", zap.Strings("filters", fields))
}
