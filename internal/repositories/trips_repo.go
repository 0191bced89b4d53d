package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/utils"
)

// TripsRepository reads Approved bookings grouped into scheduled trips. It
// never writes.
type TripsRepository struct {
	DB *sql.DB
}

func tripWhere(q models.TripQuery) (string, []any) {
	clauses := []string{"b.status = ?"}
	args := []any{string(models.StatusApproved)}
	if q.Package != "" {
		clauses = append(clauses, "b.package = ?")
		args = append(args, q.Package)
	}
	if q.BookingDate != "" {
		clauses = append(clauses, "b.booking_date = ?")
		args = append(args, q.BookingDate)
	}
	return strings.Join(clauses, " AND "), args
}

// ListTripGroups returns one row per (package, booking_date) among Approved
// bookings, ordered by date then package name.
func (r TripsRepository) ListTripGroups(ctx context.Context, q models.TripQuery, page domain.Pagination) ([]models.TripSummary, error) {
	where, args := tripWhere(q)
	args = append(args, page.PageLength, page.Start)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			MIN(b.id) AS name,
			b.booking_date,
			b.package,
			p.package_name,
			p.resource,
			r.resource_name,
			r.capacity,
			SUM(b.quantity) AS quantity
		FROM bookings b
		JOIN packages p ON p.id = b.package
		JOIN resources r ON r.id = p.resource
		WHERE `+where+`
		GROUP BY b.package, b.booking_date, p.package_name, p.resource, r.resource_name, r.capacity
		ORDER BY b.booking_date ASC, p.package_name ASC, b.package ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, storageErr("list scheduled trips", err)
	}
	defer rows.Close()

	out := []models.TripSummary{}
	for rows.Next() {
		var (
			t    models.TripSummary
			date sql.NullTime
		)
		if err := rows.Scan(
			&t.Name,
			&date,
			&t.Package,
			&t.PackageName,
			&t.Resource,
			&t.ResourceName,
			&t.Capacity,
			&t.Quantity,
		); err != nil {
			return nil, storageErr("scan scheduled trip", err)
		}
		if date.Valid {
			t.BookingDate = utils.FormatDate(date.Time)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list scheduled trips", err)
	}
	return out, nil
}

// CountTripGroups counts distinct (package, booking_date) groups among
// Approved bookings.
func (r TripsRepository) CountTripGroups(ctx context.Context, q models.TripQuery) (int, error) {
	where, args := tripWhere(q)
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT 1
			FROM bookings b
			WHERE `+where+`
			GROUP BY b.package, b.booking_date
		) g
	`, args...).Scan(&n)
	if err != nil {
		return 0, storageErr("count scheduled trips", err)
	}
	return n, nil
}

// GetApproved returns booking id when it is Approved.
func (r TripsRepository) GetApproved(ctx context.Context, id string) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=? AND status=? LIMIT 1`,
		id, string(models.StatusApproved),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking", ID: id, Err: err}
	}
	if err != nil {
		return models.Booking{}, storageErr("get approved booking", err)
	}
	return b, nil
}

// ListApproved returns every Approved booking of one trip in retrieval order.
func (r TripsRepository) ListApproved(ctx context.Context, pkg, bookingDate string) ([]models.Booking, error) {
	out, err := queryBookings(ctx, r.DB,
		`SELECT `+bookingColumns+`
		FROM bookings
		WHERE package=? AND booking_date=? AND status=?
		ORDER BY created_at, id`,
		pkg, bookingDate, string(models.StatusApproved),
	)
	if err != nil {
		return nil, storageErr("list trip bookings", err)
	}
	return out, nil
}

func (r TripsRepository) ListLineItems(ctx context.Context, ids []string) (map[string][]models.VariationQuantity, error) {
	out, err := listLineItems(ctx, r.DB, ids)
	if err != nil {
		return nil, storageErr("list trip variations", err)
	}
	return out, nil
}

func (r TripsRepository) ListParticipants(ctx context.Context, schema models.ParticipantSchema, ids []string) (map[string][]models.Participant, error) {
	out, err := listParticipants(ctx, r.DB, schema, ids)
	if err != nil {
		return nil, storageErr("list trip participants", err)
	}
	return out, nil
}
