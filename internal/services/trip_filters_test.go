package services

import (
	"encoding/json"
	"testing"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTripFilters_Shapes(t *testing.T) {
	want := models.TripQuery{Package: "P1", BookingDate: "2024-06-01"}

	cases := map[string]any{
		"map":         map[string]any{"package": "P1", "booking_date": "2024-06-01"},
		"string map":  map[string]string{"package": "P1", "booking_date": "2024-06-01"},
		"json map":    `{"package":"P1","booking_date":"2024-06-01"}`,
		"tuples":      []any{[]any{"Scheduled Trips", "package", "=", "P1"}, []any{"Scheduled Trips", "booking_date", "=", "2024-06-01"}},
		"json tuples": `[["Scheduled Trips","package","=","P1"],["Scheduled Trips","booking_date","=","2024-06-01"]]`,
		"raw bytes":   json.RawMessage(`{"package":"P1","booking_date":"2024-06-01"}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := NormalizeTripFilters(raw)
			require.NoError(t, err)
			assert.Equal(t, want, f.Query())
			assert.Empty(t, f.Ignored)
		})
	}
}

func TestNormalizeTripFilters_IgnoresExplicitly(t *testing.T) {
	f, err := NormalizeTripFilters(`[
		["Scheduled Trips","package","=","P1"],
		["Scheduled Trips","booking_date",">","2024-01-01"],
		["Scheduled Trips","status","=","Pending"],
		["package","=","P2"],
		"garbage"
	]`)
	require.NoError(t, err)

	assert.Equal(t, models.TripQuery{Package: "P1"}, f.Query())
	require.Len(t, f.Ignored, 4)
	assert.Equal(t, domain.Filter{Table: "Scheduled Trips", Field: "booking_date", Op: ">", Value: "2024-01-01"}, f.Ignored[0])
	assert.Equal(t, "status", f.Ignored[1].Field)
}

func TestNormalizeTripFilters_LastConstraintWins(t *testing.T) {
	f, err := NormalizeTripFilters([]any{
		[]any{"t", "package", "=", "P1"},
		[]any{"t", "package", "=", "P2"},
	})
	require.NoError(t, err)
	require.Len(t, f.Constraints, 1)
	assert.Equal(t, "P2", f.Query().Package)
}

func TestNormalizeTripFilters_Empty(t *testing.T) {
	for _, raw := range []any{nil, "", "  ", "null", map[string]any{}, []any{}} {
		f, err := NormalizeTripFilters(raw)
		require.NoError(t, err)
		assert.Equal(t, models.TripQuery{}, f.Query())
	}
}

func TestNormalizeTripFilters_Rejects(t *testing.T) {
	for _, raw := range []any{`{"package":`, `42`, 42, `{"booking_date":"June 1st"}`} {
		_, err := NormalizeTripFilters(raw)
		require.Error(t, err, "%v", raw)
		assert.True(t, domain.IsValidation(err))
	}
}
