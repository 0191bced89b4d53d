package domain

import (
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

const msgInvalidVariations = "Invalid variations provided"

// Ledger holds a booking's ordered line items and their derived total.
type Ledger struct {
	items []models.VariationQuantity
	total int
}

// NewLedger validates items: at least one line, each with a variation name and
// a quantity of one or more. There is no upper bound.
func NewLedger(items []models.VariationQuantity) (Ledger, error) {
	if len(items) == 0 {
		return Ledger{}, ValidationError{Field: "variation_quantity", Msg: msgInvalidVariations}
	}
	clean := make([]models.VariationQuantity, 0, len(items))
	total := 0
	for _, it := range items {
		name := strings.TrimSpace(it.Variation)
		if name == "" || it.Quantity < 1 {
			return Ledger{}, ValidationError{Field: "variation_quantity", Msg: msgInvalidVariations}
		}
		clean = append(clean, models.VariationQuantity{Variation: name, Quantity: it.Quantity})
		total += it.Quantity
	}
	return Ledger{items: clean, total: total}, nil
}

// Total is the booking's capacity footprint and manifest ceiling.
func (l Ledger) Total() int { return l.total }

func (l Ledger) Items() []models.VariationQuantity {
	out := make([]models.VariationQuantity, len(l.items))
	copy(out, l.items)
	return out
}

// Allows reports whether n participants fit under the ceiling.
func (l Ledger) Allows(n int) bool { return n <= l.total }
