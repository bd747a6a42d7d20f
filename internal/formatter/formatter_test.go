package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	f, err := New("es-CL", nil)
	require.NoError(t, err)
	assert.Equal(t, "es-CL", f.Locale().String())
	assert.Equal(t, time.UTC, f.Location())

	_, err = New("not a locale!", nil)
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	f := Default()

	assert.Equal(t, "0", f.FormatNumber(0))
	assert.Equal(t, "80", f.FormatNumber(80))
	assert.Equal(t, "1.234.567", f.FormatNumber(1234567))
}

func TestFormatDate(t *testing.T) {
	f := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"2024-12-18", "18 dic 2024"},
		{"2024-12-18 10:15:00", "18 dic 2024"},
		{"2024-09-01T08:00:00Z", "1 sept 2024"},
		{"2024-01-10T23:30:00-03:00", "11 ene 2024"},
		{"no es una fecha", "no es una fecha"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.FormatDate(tt.in), "FormatDate(%q)", tt.in)
	}
}

func TestFormatShortDate(t *testing.T) {
	f := Default()

	assert.Equal(t, "10-01-2024", f.FormatShortDate("2024-01-10T10:30:00"))
	assert.Equal(t, "31/02/2024", f.FormatShortDate("31/02/2024"))
}

func TestFormatMonthLabel(t *testing.T) {
	f := Default()

	assert.Equal(t, "ene 2024", f.FormatMonthLabel("2024-01"))
	assert.Equal(t, "dic 2023", f.FormatMonthLabel("2023-12"))
	assert.Equal(t, "2024-13", f.FormatMonthLabel("2024-13"))
}

func TestFormatFieldLabel(t *testing.T) {
	assert.Equal(t, "Total Si", FormatFieldLabel("TotalSi"))
	assert.Equal(t, "Total Abstencion", FormatFieldLabel("TotalAbstencion"))
	assert.Equal(t, "Fecha", FormatFieldLabel("Fecha"))
	assert.Equal(t, "Descripcion", FormatFieldLabel("descripcion"))
	assert.Equal(t, "", FormatFieldLabel(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "Señ...", Truncate("Señales", 3))
	assert.Equal(t, "...", Truncate("abc", 0))
}
