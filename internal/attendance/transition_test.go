package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valegrete/academia_bot/internal/model"
)

var now = time.Date(2025, 6, 23, 10, 0, 0, 0, time.UTC)

func record(status model.AttendanceStatus) model.AttendanceRecord {
	return model.AttendanceRecord{
		ID:        uuid.New(),
		ClassID:   uuid.New(),
		StudentID: uuid.New(),
		Date:      time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func TestApply_DirectTransitions(t *testing.T) {
	direct := []model.AttendanceStatus{
		model.AttendanceUnmarked,
		model.AttendancePresent,
		model.AttendanceAbsent,
		model.AttendanceLate,
	}

	// Cualquier estado directo es alcanzable desde cualquier otro:
	// corregir un toque errado no exige pasos intermedios.
	for _, from := range append(direct, model.AttendanceJustified) {
		for _, to := range direct {
			got, err := Apply(record(from), to, now)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, got.Status)
			assert.Equal(t, now, got.UpdatedAt)
		}
	}
}

func TestApply_JustifiedNotDirectlyAssignable(t *testing.T) {
	for _, from := range []model.AttendanceStatus{
		model.AttendanceUnmarked,
		model.AttendancePresent,
		model.AttendanceAbsent,
	} {
		rec := record(from)
		got, err := Apply(rec, model.AttendanceJustified, now)
		require.Error(t, err)

		var terr *TransitionError
		require.True(t, errors.As(err, &terr))
		assert.Equal(t, from, terr.From)
		// El registro devuelto queda intacto.
		assert.Equal(t, rec.Status, got.Status)
	}
}

func TestApply_UnknownStatus(t *testing.T) {
	_, err := Apply(record(model.AttendanceUnmarked), model.AttendanceStatus("vacaciones"), now)
	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	rec := record(model.AttendancePresent)
	justID := uuid.New()
	rec.JustificationID = &justID

	_, err := Apply(rec, model.AttendanceAbsent, now)
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, rec.Status)
	assert.NotNil(t, rec.JustificationID)
}

func TestApply_LeavingJustifiedClearsLink(t *testing.T) {
	rec := record(model.AttendanceJustified)
	justID := uuid.New()
	rec.JustificationID = &justID

	got, err := Apply(rec, model.AttendancePresent, now)
	require.NoError(t, err)
	assert.Nil(t, got.JustificationID)
}
