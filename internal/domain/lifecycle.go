package domain

import (
	"fmt"

	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

const MsgTooManyParticipants = "Manifest has too many participants"

var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusCreated: {models.StatusPending},
	models.StatusPending: {models.StatusApproved, models.StatusRejected},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a StateError when booking id may not move from -> to.
func CheckTransition(id string, from, to models.BookingStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	err := StateError{Resource: "Booking", ID: id, Status: string(from)}
	switch {
	case to == models.StatusPending:
		err.Msg = fmt.Sprintf("Booking '%s' already finalized", id)
	case from.Terminal():
		err.Msg = fmt.Sprintf("Booking '%s' already %s", id, lower(from))
	default:
		err.Msg = fmt.Sprintf("Booking '%s' is %s, not pending review", id, lower(from))
	}
	return err
}

// CheckManifest enforces the roster rules: no edits once rejected, and never
// more participants than reserved units.
func CheckManifest(b models.Booking, participants int) error {
	if b.Status == models.StatusRejected {
		return StateError{
			Resource: "Booking",
			ID:       b.ID,
			Status:   string(b.Status),
			Msg:      fmt.Sprintf("Booking '%s' is rejected", b.ID),
		}
	}
	if participants > b.Quantity {
		return ValidationError{Field: "participants", Msg: MsgTooManyParticipants}
	}
	return nil
}

func lower(s models.BookingStatus) string {
	switch s {
	case models.StatusCreated:
		return "created"
	case models.StatusPending:
		return "pending"
	case models.StatusApproved:
		return "approved"
	case models.StatusRejected:
		return "rejected"
	default:
		return string(s)
	}
}
