package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

var testSchema = models.NewParticipantSchema([]models.SchemaField{
	{Name: "participant_name", Type: "varchar"},
	{Name: "age", Type: "int"},
	{Name: "nationality", Type: "varchar"},
})

type staticSchema struct {
	schema models.ParticipantSchema
	err    error
}

func (s staticSchema) ParticipantSchema(context.Context) (models.ParticipantSchema, error) {
	return s.schema, s.err
}

// memStore is an in-memory BookingStore, Catalog and ApprovedBookingReader.
type memStore struct {
	mu        sync.Mutex
	bookings  map[string]models.Booking
	order     []string
	packages  map[string]models.Package
	resources map[string]models.Resource
	insertErr error
}

func newMemStore() *memStore {
	return &memStore{
		bookings: map[string]models.Booking{},
		packages: map[string]models.Package{
			"P1":         {ID: "P1", PackageName: "Lake Tour", Resource: "R1"},
			"P2":         {ID: "P2", PackageName: "Av Cruise", Resource: "R1"},
			"SUNSET-BAY": {ID: "SUNSET-BAY", PackageName: "Sunset Bay", Resource: "R2"},
			"ORPHAN":     {ID: "ORPHAN", PackageName: "Orphan", Resource: "R404"},
		},
		resources: map[string]models.Resource{
			"R1": {ID: "R1", ResourceName: "Boat", Capacity: 10},
			"R2": {ID: "R2", ResourceName: "Catamaran", Capacity: 2},
		},
	}
}

func (m *memStore) put(b models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[b.ID]; !ok {
		m.order = append(m.order, b.ID)
	}
	if b.Quantity == 0 {
		for _, it := range b.VariationQuantity {
			b.Quantity += it.Quantity
		}
	}
	m.bookings[b.ID] = b
}

func (m *memStore) Insert(_ context.Context, b models.Booking, schema models.ParticipantSchema) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	b.Participants = project(schema, b.Participants)
	m.put(b)
	return nil
}

func (m *memStore) Get(_ context.Context, id string, _ models.ParticipantSchema) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking", ID: id}
	}
	return b, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking", ID: id}
	}
	if b.Status != from {
		if err := domain.CheckTransition(id, b.Status, to); err != nil {
			return models.Booking{}, err
		}
		return models.Booking{}, domain.StateError{Resource: "Booking", ID: id}
	}
	b.Status = to
	m.bookings[id] = b
	return b, nil
}

func (m *memStore) ReplaceParticipants(_ context.Context, id string, schema models.ParticipantSchema, participants []models.Participant, guard func(models.Booking) error) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking", ID: id}
	}
	if err := guard(b); err != nil {
		return models.Booking{}, err
	}
	b.Participants = project(schema, participants)
	m.bookings[id] = b
	return b, nil
}

func (m *memStore) GetPackage(_ context.Context, id string) (models.Package, error) {
	p, ok := m.packages[id]
	if !ok {
		return models.Package{}, domain.NotFoundError{Resource: "Package", ID: id}
	}
	return p, nil
}

func (m *memStore) GetResource(_ context.Context, id string) (models.Resource, error) {
	r, ok := m.resources[id]
	if !ok {
		return models.Resource{}, domain.NotFoundError{Resource: "Resource", ID: id}
	}
	return r, nil
}

func (m *memStore) approved(q models.TripQuery) []models.Booking {
	var out []models.Booking
	for _, id := range m.order {
		b := m.bookings[id]
		if b.Status != models.StatusApproved {
			continue
		}
		if q.Package != "" && b.Package != q.Package {
			continue
		}
		if q.BookingDate != "" && b.BookingDate != q.BookingDate {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (m *memStore) ListTripGroups(_ context.Context, q models.TripQuery, page domain.Pagination) ([]models.TripSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := map[string]int{}
	var rows []models.TripSummary
	for _, b := range m.approved(q) {
		key := b.Package + "|" + b.BookingDate
		i, ok := idx[key]
		if !ok {
			p := m.packages[b.Package]
			r := m.resources[p.Resource]
			rows = append(rows, models.TripSummary{
				Name:         b.ID,
				BookingDate:  b.BookingDate,
				Package:      b.Package,
				PackageName:  p.PackageName,
				Resource:     r.ID,
				ResourceName: r.ResourceName,
				Capacity:     r.Capacity,
			})
			i = len(rows) - 1
			idx[key] = i
		}
		rows[i].Quantity += b.Quantity
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].BookingDate != rows[b].BookingDate {
			return rows[a].BookingDate < rows[b].BookingDate
		}
		return rows[a].PackageName < rows[b].PackageName
	})

	out := []models.TripSummary{}
	for i := page.Start; i < len(rows) && len(out) < page.PageLength; i++ {
		out = append(out, rows[i])
	}
	return out, nil
}

func (m *memStore) CountTripGroups(_ context.Context, q models.TripQuery) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	for _, b := range m.approved(q) {
		seen[b.Package+"|"+b.BookingDate] = true
	}
	return len(seen), nil
}

func (m *memStore) GetApproved(_ context.Context, id string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != models.StatusApproved {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking", ID: id}
	}
	return b, nil
}

func (m *memStore) ListApproved(_ context.Context, pkg, bookingDate string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.approved(models.TripQuery{Package: pkg, BookingDate: bookingDate}), nil
}

func (m *memStore) ListLineItems(_ context.Context, ids []string) (map[string][]models.VariationQuantity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string][]models.VariationQuantity{}
	for _, id := range ids {
		out[id] = m.bookings[id].VariationQuantity
	}
	return out, nil
}

func (m *memStore) ListParticipants(_ context.Context, _ models.ParticipantSchema, ids []string) (map[string][]models.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string][]models.Participant{}
	for _, id := range ids {
		out[id] = m.bookings[id].Participants
	}
	return out, nil
}

var errStoreDown = errors.New("connection refused")
