package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripCols = []string{"name", "booking_date", "package", "package_name", "resource", "resource_name", "capacity", "quantity"}

func TestListTripGroups_FiltersAndPaginates(t *testing.T) {
	db, mock := newMock(t)
	repo := TripsRepository{DB: db}

	mock.ExpectQuery("WHERE b.status = \\? AND b.package = \\? AND b.booking_date = \\?(.+)GROUP BY b.package, b.booking_date(.+)ORDER BY b.booking_date ASC, p.package_name ASC(.+)LIMIT \\? OFFSET \\?").
		WithArgs("Approved", "P1", "2024-06-01", 20, 0).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow("b-1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "P1", "Lake Tour", "R1", "Boat", 10, []byte("3")))

	rows, err := repo.ListTripGroups(context.Background(),
		models.TripQuery{Package: "P1", BookingDate: "2024-06-01"},
		domain.Pagination{Start: 0, PageLength: 20},
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.TripSummary{
		Name:         "b-1",
		BookingDate:  "2024-06-01",
		Package:      "P1",
		PackageName:  "Lake Tour",
		Resource:     "R1",
		ResourceName: "Boat",
		Capacity:     10,
		Quantity:     3,
	}, rows[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTripGroups_NoFiltersReturnsEmptySlice(t *testing.T) {
	db, mock := newMock(t)
	repo := TripsRepository{DB: db}

	mock.ExpectQuery("WHERE b.status = \\?\\s+GROUP BY").
		WithArgs("Approved", 5, 10).
		WillReturnRows(sqlmock.NewRows(tripCols))

	rows, err := repo.ListTripGroups(context.Background(), models.TripQuery{}, domain.Pagination{Start: 10, PageLength: 5})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTripGroups(t *testing.T) {
	db, mock := newMock(t)
	repo := TripsRepository{DB: db}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM \\((.+)GROUP BY b.package, b.booking_date").
		WithArgs("Approved", "P1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountTripGroups(context.Background(), models.TripQuery{Package: "P1"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetApproved_NotApproved(t *testing.T) {
	db, mock := newMock(t)
	repo := TripsRepository{DB: db}

	mock.ExpectQuery("FROM bookings WHERE id=\\? AND status=\\?").WithArgs("b-2", "Approved").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := repo.GetApproved(context.Background(), "b-2")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestListApprovedAndChildren(t *testing.T) {
	db, mock := newMock(t)
	repo := TripsRepository{DB: db}

	mock.ExpectQuery("WHERE package=\\? AND booking_date=\\? AND status=\\?\\s+ORDER BY created_at, id").
		WithArgs("P1", "2024-06-01", "Approved").
		WillReturnRows(bookingRow("b-1", models.StatusApproved, 3))
	mock.ExpectQuery("FROM booking_variations\\s+WHERE booking_id IN \\(\\?, \\?\\)").
		WithArgs("b-1", "b-2").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "variation", "quantity"}).
			AddRow("b-1", "Adult", 2).
			AddRow("b-2", "Adult", 1))

	bookings, err := repo.ListApproved(context.Background(), "P1", "2024-06-01")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-1", bookings[0].ID)

	items, err := repo.ListLineItems(context.Background(), []string{"b-1", "b-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, items["b-1"][0].Quantity)
	assert.Equal(t, 1, items["b-2"][0].Quantity)

	empty, err := repo.ListParticipants(context.Background(), testSchema(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
