package models

import "time"

// BookingStatus is a lifecycle state of a booking.
type BookingStatus string

const (
	StatusCreated  BookingStatus = "Created"
	StatusPending  BookingStatus = "Pending"
	StatusApproved BookingStatus = "Approved"
	StatusRejected BookingStatus = "Rejected"
)

// Terminal reports whether no transition leaves s.
func (s BookingStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// VariationQuantity is one reserved line item, e.g. 3 x "Adult".
type VariationQuantity struct {
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity"`
}

// Participant is an opaque key/value record; its stored keys are whatever the
// participant table declares.
type Participant map[string]any

type SpecialRequest struct {
	Request string `json:"request"`
}

type Booking struct {
	ID                string              `json:"name"`
	BookingName       string              `json:"booking_name"`
	Email             string              `json:"email"`
	ContactNumber     string              `json:"contact_number"`
	Package           string              `json:"package"`
	BookingDate       string              `json:"booking_date"`
	Status            BookingStatus       `json:"status"`
	Quantity          int                 `json:"quantity"`
	Owner             string              `json:"owner,omitempty"`
	VariationQuantity []VariationQuantity `json:"variation_quantity"`
	Participants      []Participant       `json:"participants"`
	SpecialRequests   []SpecialRequest    `json:"special_requests"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// BookingInput is the intake payload for a new booking.
type BookingInput struct {
	BookingName       string              `json:"booking_name"`
	Email             string              `json:"email"`
	ContactNumber     string              `json:"contact_number"`
	Package           string              `json:"package"`
	BookingDate       string              `json:"booking_date"`
	VariationQuantity []VariationQuantity `json:"variation_quantity"`
	Participants      []Participant       `json:"participants"`
	SpecialRequests   []SpecialRequest    `json:"special_requests"`
}
