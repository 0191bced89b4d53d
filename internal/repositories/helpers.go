package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "github.com/Tripcarte/easytix-booking/internal/db"
	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/utils"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlErrDuplicate    = 1062
	mysqlErrNoReferenced = 1452
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func storageErr(msg string, err error) error {
	var typed domain.StorageError
	if errors.As(err, &typed) {
		return err
	}
	return domain.StorageError{Msg: msg, Err: err}
}

func mysqlCode(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// inClause returns "?, ?, ..." and the matching args for ids.
func inClause(ids []string) (string, []any) {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return intdb.Placeholders(len(ids)), args
}

const bookingColumns = `id, booking_name, email, contact_number, package, booking_date, status, quantity, COALESCE(owner, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		date   time.Time
		status string
	)
	if err := row.Scan(
		&b.ID,
		&b.BookingName,
		&b.Email,
		&b.ContactNumber,
		&b.Package,
		&date,
		&status,
		&b.Quantity,
		&b.Owner,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.BookingDate = utils.FormatDate(date)
	b.Status = models.BookingStatus(status)
	return b, nil
}

func queryBookings(ctx context.Context, q execer, query string, args ...any) ([]models.Booking, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func listLineItems(ctx context.Context, q execer, ids []string) (map[string][]models.VariationQuantity, error) {
	out := make(map[string][]models.VariationQuantity, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	marks, args := inClause(ids)
	rows, err := q.QueryContext(ctx, `
		SELECT booking_id, variation, quantity
		FROM booking_variations
		WHERE booking_id IN (`+marks+`)
		ORDER BY booking_id, idx
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			vq models.VariationQuantity
		)
		if err := rows.Scan(&id, &vq.Variation, &vq.Quantity); err != nil {
			return nil, err
		}
		out[id] = append(out[id], vq)
	}
	return out, rows.Err()
}

func listSpecialRequests(ctx context.Context, q execer, ids []string) (map[string][]models.SpecialRequest, error) {
	out := make(map[string][]models.SpecialRequest, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	marks, args := inClause(ids)
	rows, err := q.QueryContext(ctx, `
		SELECT booking_id, request
		FROM booking_special_requests
		WHERE booking_id IN (`+marks+`)
		ORDER BY booking_id, idx
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			sr models.SpecialRequest
		)
		if err := rows.Scan(&id, &sr.Request); err != nil {
			return nil, err
		}
		out[id] = append(out[id], sr)
	}
	return out, rows.Err()
}

// listParticipants reads the rosters of ids, projecting each row over schema.
func listParticipants(ctx context.Context, q execer, schema models.ParticipantSchema, ids []string) (map[string][]models.Participant, error) {
	out := make(map[string][]models.Participant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	names := schema.Names()
	cols := []string{"booking_id"}
	for _, n := range names {
		cols = append(cols, intdb.QuoteIdent(n))
	}
	marks, args := inClause(ids)
	rows, err := q.QueryContext(ctx, `
		SELECT `+strings.Join(cols, ", ")+`
		FROM booking_participants
		WHERE booking_id IN (`+marks+`)
		ORDER BY booking_id, idx
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		vals := make([]any, len(names))
		dest := make([]any, 0, len(names)+1)
		dest = append(dest, &id)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		p := make(models.Participant, len(names))
		for i, n := range names {
			p[n] = fromColumn(vals[i])
		}
		out[id] = append(out[id], p)
	}
	return out, rows.Err()
}

func insertLineItems(ctx context.Context, q execer, bookingID string, items []models.VariationQuantity) error {
	for i, it := range items {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO booking_variations (booking_id, idx, variation, quantity) VALUES (?, ?, ?, ?)`,
			bookingID, i+1, it.Variation, it.Quantity,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertSpecialRequests(ctx context.Context, q execer, bookingID string, reqs []models.SpecialRequest) error {
	for i, r := range reqs {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO booking_special_requests (booking_id, idx, request) VALUES (?, ?, ?)`,
			bookingID, i+1, r.Request,
		); err != nil {
			return err
		}
	}
	return nil
}

// insertParticipants stores only declared fields; unknown keys are dropped.
func insertParticipants(ctx context.Context, q execer, bookingID string, schema models.ParticipantSchema, participants []models.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	cols := []string{"booking_id", "idx"}
	for _, n := range schema.Names() {
		cols = append(cols, intdb.QuoteIdent(n))
	}
	stmt := `INSERT INTO booking_participants (` + strings.Join(cols, ", ") + `) VALUES (` +
		intdb.Placeholders(len(cols)) + `)`
	for i, p := range participants {
		args := []any{bookingID, i + 1}
		for _, v := range schema.Values(p) {
			args = append(args, toColumn(v))
		}
		if _, err := q.ExecContext(ctx, stmt, args...); err != nil {
			return err
		}
	}
	return nil
}

// toColumn converts a JSON-decoded value into something the driver can bind.
func toColumn(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int, int64, float64:
		return t
	case float32:
		return float64(t)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

func fromColumn(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return t
	}
}
