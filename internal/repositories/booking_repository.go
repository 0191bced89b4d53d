package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "github.com/Tripcarte/easytix-booking/internal/db"
	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

// Insert writes a booking with its line items, roster and special requests in
// one transaction.
func (r BookingRepository) Insert(ctx context.Context, b models.Booking, schema models.ParticipantSchema) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin insert booking", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, booking_name, email, contact_number, package, booking_date, status, quantity, owner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.BookingName,
		b.Email,
		b.ContactNumber,
		b.Package,
		b.BookingDate,
		string(b.Status),
		b.Quantity,
		intdb.NullIfEmpty(b.Owner),
	)
	if err != nil {
		switch mysqlCode(err) {
		case mysqlErrNoReferenced:
			return domain.NotFoundError{Resource: "Package", ID: b.Package, Err: err}
		case mysqlErrDuplicate:
			return storageErr("booking id already exists", err)
		}
		return storageErr("insert booking", err)
	}

	if err := insertLineItems(ctx, tx, b.ID, b.VariationQuantity); err != nil {
		return storageErr("insert booking variations", err)
	}
	if err := insertParticipants(ctx, tx, b.ID, schema, b.Participants); err != nil {
		return storageErr("insert booking participants", err)
	}
	if err := insertSpecialRequests(ctx, tx, b.ID, b.SpecialRequests); err != nil {
		return storageErr("insert special requests", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit insert booking", err)
	}
	return nil
}

// Get loads a booking and its children.
func (r BookingRepository) Get(ctx context.Context, id string, schema models.ParticipantSchema) (models.Booking, error) {
	b, err := getBooking(ctx, r.DB, id, false)
	if err != nil {
		return models.Booking{}, err
	}

	ids := []string{id}
	items, err := listLineItems(ctx, r.DB, ids)
	if err != nil {
		return models.Booking{}, storageErr("load booking variations", err)
	}
	parts, err := listParticipants(ctx, r.DB, schema, ids)
	if err != nil {
		return models.Booking{}, storageErr("load booking participants", err)
	}
	reqs, err := listSpecialRequests(ctx, r.DB, ids)
	if err != nil {
		return models.Booking{}, storageErr("load special requests", err)
	}

	b.VariationQuantity = nonNil(items[id])
	b.Participants = nonNil(parts[id])
	b.SpecialRequests = nonNil(reqs[id])
	return b, nil
}

// UpdateStatus moves a booking from -> to with a conditional update, so only
// one of several concurrent callers wins. Losers re-read the row and get
// NotFoundError or StateError.
func (r BookingRepository) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, storageErr("begin update status", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status=? WHERE id=? AND status=?`,
		string(to), id, string(from),
	)
	if err != nil {
		return models.Booking{}, storageErr("update booking status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Booking{}, storageErr("update booking status", err)
	}

	b, err := getBooking(ctx, tx, id, false)
	if err != nil {
		return models.Booking{}, err
	}
	if n == 0 {
		if err := domain.CheckTransition(id, b.Status, to); err != nil {
			return models.Booking{}, err
		}
		return models.Booking{}, domain.StateError{Resource: "Booking", ID: id, Status: string(b.Status)}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, storageErr("commit update status", err)
	}
	return b, nil
}

// ReplaceParticipants swaps the whole roster while holding the booking row
// lock. guard sees the locked booking and may veto the write.
func (r BookingRepository) ReplaceParticipants(
	ctx context.Context,
	id string,
	schema models.ParticipantSchema,
	participants []models.Participant,
	guard func(models.Booking) error,
) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, storageErr("begin replace participants", err)
	}
	defer func() { _ = tx.Rollback() }()

	b, err := getBooking(ctx, tx, id, true)
	if err != nil {
		return models.Booking{}, err
	}
	if guard != nil {
		if err := guard(b); err != nil {
			return models.Booking{}, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_participants WHERE booking_id=?`, id); err != nil {
		return models.Booking{}, storageErr("clear booking participants", err)
	}
	if err := insertParticipants(ctx, tx, id, schema, participants); err != nil {
		return models.Booking{}, storageErr("insert booking participants", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, storageErr("commit replace participants", err)
	}

	b.Participants = make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		b.Participants = append(b.Participants, schema.Project(p))
	}
	return b, nil
}

func getBooking(ctx context.Context, q execer, id string, forUpdate bool) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=? LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBooking(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking", ID: id, Err: err}
	}
	if err != nil {
		return models.Booking{}, storageErr("get booking", err)
	}
	return b, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
