package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
	"github.com/Tripcarte/easytix-booking/internal/utils"
)

const (
	filterPackage     = "package"
	filterBookingDate = "booking_date"
)

// TripFilter is the normalized form of caller-supplied trip filters.
// Constraints are equality clauses on recognized fields; everything else the
// caller sent lands in Ignored so it can be reported instead of vanishing.
type TripFilter struct {
	Constraints []domain.Filter `json:"constraints"`
	Ignored     []domain.Filter `json:"ignored,omitempty"`
}

// Query turns the constraints into store arguments.
func (f TripFilter) Query() models.TripQuery {
	var q models.TripQuery
	for _, c := range f.Constraints {
		v, _ := c.Value.(string)
		switch c.Field {
		case filterPackage:
			q.Package = v
		case filterBookingDate:
			q.BookingDate = v
		}
	}
	return q
}

// NormalizeTripFilters accepts a field->value mapping, a list of
// [table, field, op, value] tuples, or either shape JSON-encoded as a string
// or bytes. Only "=" tuples on package and booking_date become constraints.
// A later constraint on the same field replaces an earlier one.
func NormalizeTripFilters(raw any) (TripFilter, error) {
	switch v := raw.(type) {
	case nil:
		return TripFilter{}, nil
	case TripFilter:
		return v, nil
	case string:
		return normalizeJSON([]byte(v))
	case []byte:
		return normalizeJSON(v)
	case json.RawMessage:
		return normalizeJSON(v)
	case map[string]any:
		return normalizeMap(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return normalizeMap(m)
	case []any:
		return normalizeTuples(v)
	default:
		return TripFilter{}, domain.ValidationError{Field: "filters", Msg: fmt.Sprintf("unsupported filters type %T", raw)}
	}
}

func normalizeJSON(b []byte) (TripFilter, error) {
	if strings.TrimSpace(string(b)) == "" {
		return TripFilter{}, nil
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return TripFilter{}, domain.ValidationError{Field: "filters", Msg: "filters must be a JSON object or a list of [table, field, operator, value]", Err: err}
	}
	switch decoded.(type) {
	case nil, map[string]any, []any:
		return NormalizeTripFilters(decoded)
	default:
		return TripFilter{}, domain.ValidationError{Field: "filters", Msg: "filters must be a JSON object or a list of [table, field, operator, value]"}
	}
}

func normalizeMap(m map[string]any) (TripFilter, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b filterBuilder
	for _, k := range keys {
		if err := b.add(domain.Filter{Field: k, Op: domain.OpEq, Value: m[k]}); err != nil {
			return TripFilter{}, err
		}
	}
	return b.out, nil
}

func normalizeTuples(list []any) (TripFilter, error) {
	var b filterBuilder
	for _, item := range list {
		tuple, ok := item.([]any)
		if !ok || len(tuple) != 4 {
			b.out.Ignored = append(b.out.Ignored, domain.Filter{Value: item})
			continue
		}
		table, _ := tuple[0].(string)
		field, _ := tuple[1].(string)
		op, _ := tuple[2].(string)
		f := domain.Filter{Table: table, Field: field, Op: strings.TrimSpace(op), Value: tuple[3]}
		if f.Op != domain.OpEq {
			b.out.Ignored = append(b.out.Ignored, f)
			continue
		}
		if err := b.add(f); err != nil {
			return TripFilter{}, err
		}
	}
	return b.out, nil
}

type filterBuilder struct {
	out TripFilter
}

func (b *filterBuilder) add(f domain.Filter) error {
	if f.Field != filterPackage && f.Field != filterBookingDate {
		b.out.Ignored = append(b.out.Ignored, f)
		return nil
	}
	value, ok := scalar(f.Value)
	if !ok {
		b.out.Ignored = append(b.out.Ignored, f)
		return nil
	}
	if f.Field == filterBookingDate && !utils.IsDate(value) {
		return domain.ValidationError{Field: "filters", Msg: msgInvalidDate}
	}
	f.Op = domain.OpEq
	f.Value = value

	for i, c := range b.out.Constraints {
		if c.Field == f.Field {
			b.out.Constraints[i] = f
			return nil
		}
	}
	b.out.Constraints = append(b.out.Constraints, f)
	return nil
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case float64, int, int64, json.Number:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
