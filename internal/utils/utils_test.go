package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", FormatDate(d))

	for _, bad := range []string{"", "2024-13-01", "2024-02-30", "01/06/2024", "2024-6-1"} {
		assert.False(t, IsDate(bad), bad)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	assert.Equal(t, "NA", SafeFilenamePart("  "))
	assert.Equal(t, "Lake_Tour_a_b", SafeFilenamePart("Lake Tour/a:b"))
	assert.Len(t, SafeFilenamePart("abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"), 40)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("nonsense")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
	assert.NotNil(t, OrNop(nil))
}
