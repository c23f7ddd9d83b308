package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateWithWeekday(t *testing.T) {
	// lunes 23 de junio de 2025
	d := time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "lunes 23/06/2025", FormatDateWithWeekday(d))

	s := time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "sábado 28/06/2025", FormatDateWithWeekday(s))
}

func TestFormatMinuteRange(t *testing.T) {
	assert.Equal(t, "09:00-10:30", FormatMinuteRange(9*60, 10*60+30))
	assert.Equal(t, "00:05-23:59", FormatMinuteRange(5, 23*60+59))
}

func TestWeekdayNames(t *testing.T) {
	assert.Equal(t, "domingo", GetWeekdayName(0))
	assert.Equal(t, "miércoles", GetWeekdayName(3))
	assert.Equal(t, "Sáb", GetWeekdayShortName(6))
	assert.Equal(t, "?", GetWeekdayName(7))
	assert.Equal(t, "?", GetWeekdayShortName(-1))
}
