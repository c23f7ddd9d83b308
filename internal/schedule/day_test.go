package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDay_AllAliases(t *testing.T) {
	cases := map[Day][]any{
		Sunday:    {0, int64(0), float64(0), "0", "domingo", "Domingo", "DOMINGO", "dom", "sunday"},
		Monday:    {1, "1", "lunes", "Lunes", "lun", "monday", "Monday"},
		Tuesday:   {2, "2", "martes", "mar", "tuesday"},
		Wednesday: {3, "3", "miércoles", "miercoles", "MIÉRCOLES", "mie", "wednesday"},
		Thursday:  {4, "4", "jueves", "jue", "thursday"},
		Friday:    {5, "5", "viernes", "vie", "friday"},
		Saturday:  {6, "6", "sábado", "sabado", "Sábado", "sab", "saturday"},
	}

	for want, inputs := range cases {
		for _, input := range inputs {
			got, err := NormalizeDay(input)
			require.NoError(t, err, "input %v", input)
			assert.Equal(t, want, got, "input %v", input)
		}
	}
}

func TestNormalizeDay_TrimsWhitespace(t *testing.T) {
	got, err := NormalizeDay("  lunes ")
	require.NoError(t, err)
	assert.Equal(t, Monday, got)
}

func TestNormalizeDay_Invalid(t *testing.T) {
	for _, input := range []any{-1, 7, 42, float64(1.5), "luness", "funday", "", "7", nil, true} {
		_, err := NormalizeDay(input)
		require.Error(t, err, "input %v", input)

		var dayErr *InvalidDayError
		assert.True(t, errors.As(err, &dayErr), "input %v: expected InvalidDayError, got %T", input, err)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:00", 540}, // sin cero inicial
		{"10:30", 630},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseTimeToMinutes(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseTimeToMinutes_Invalid(t *testing.T) {
	// La tolerancia del cero inicial es sólo para la hora: los minutos
	// llevan siempre dos dígitos ("9:5" no es "9:05").
	for _, in := range []string{"", "9", "9:5", "9:005", "24:00", "12:60", "9:00:00", "ab:cd", "-1:00", "+9:00", "9: 0", "120:00"} {
		_, err := ParseTimeToMinutes(in)
		require.Error(t, err, "input %q", in)

		var timeErr *InvalidTimeError
		assert.True(t, errors.As(err, &timeErr), "input %q: expected InvalidTimeError, got %T", in, err)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "09:00", FormatMinutes(540))
	assert.Equal(t, "23:59", FormatMinutes(1439))
	assert.Equal(t, "00:05", FormatMinutes(5))
}
