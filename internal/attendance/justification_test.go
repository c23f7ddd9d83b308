package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valegrete/academia_bot/internal/model"
)

func TestNewJustification_FromAbsent(t *testing.T) {
	rec, req, err := NewJustification(record(model.AttendanceAbsent), "cita médica", now)
	require.NoError(t, err)

	assert.Equal(t, model.AttendanceJustified, rec.Status)
	require.NotNil(t, rec.JustificationID)
	assert.Equal(t, req.ID, *rec.JustificationID)

	assert.Equal(t, model.JustificationPending, req.Status)
	assert.Equal(t, "cita médica", req.Reason)
	assert.Equal(t, now, req.CreatedAt)
	assert.Equal(t, now.Add(JustificationTTL), req.ExpiresAt)
	assert.True(t, req.ExpiresAt.After(req.CreatedAt))
}

func TestNewJustification_OnlyFromAbsent(t *testing.T) {
	for _, from := range []model.AttendanceStatus{
		model.AttendanceUnmarked,
		model.AttendancePresent,
		model.AttendanceLate,
		model.AttendanceJustified,
	} {
		_, _, err := NewJustification(record(from), "razón", now)
		var terr *TransitionError
		require.True(t, errors.As(err, &terr), "from %s", from)
	}
}

func TestResolveJustification_Approved(t *testing.T) {
	rec, req, err := NewJustification(record(model.AttendanceAbsent), "viaje", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	rec, req, err = ResolveJustification(rec, req, model.JustificationApproved, later)
	require.NoError(t, err)

	assert.Equal(t, model.AttendanceJustified, rec.Status)
	assert.Equal(t, model.JustificationApproved, req.Status)
	require.NotNil(t, req.ResolvedAt)
	assert.Equal(t, later, *req.ResolvedAt)
}

func TestResolveJustification_RejectedRevertsToAbsent(t *testing.T) {
	rec, req, err := NewJustification(record(model.AttendanceAbsent), "sin razón real", now)
	require.NoError(t, err)

	rec, req, err = ResolveJustification(rec, req, model.JustificationRejected, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, model.AttendanceAbsent, rec.Status)
	assert.Nil(t, rec.JustificationID)
	assert.Equal(t, model.JustificationRejected, req.Status)
}

func TestResolveJustification_RejectAfterCorrectionKeepsRecord(t *testing.T) {
	// El profesor justifica la ausencia y después la corrige a presente
	// (Apply rompe el vínculo). El rechazo posterior, por ejemplo el
	// automático por caducidad, no debe revertir la corrección.
	rec, req, err := NewJustification(record(model.AttendanceAbsent), "cita médica", now)
	require.NoError(t, err)

	rec, err = Apply(rec, model.AttendancePresent, now.Add(time.Hour))
	require.NoError(t, err)
	require.Nil(t, rec.JustificationID)

	rec, req, err = ResolveJustification(rec, req, model.JustificationRejected, now.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, model.AttendancePresent, rec.Status)
	assert.Nil(t, rec.JustificationID)
	assert.Equal(t, model.JustificationRejected, req.Status)
	require.NotNil(t, req.ResolvedAt)
}

func TestResolveJustification_RejectUnlinkedRequestKeepsRecord(t *testing.T) {
	// Registro justificado por otra solicitud: rechazar esta no lo toca.
	rec, linked, err := NewJustification(record(model.AttendanceAbsent), "viaje", now)
	require.NoError(t, err)

	_, other, err := NewJustification(record(model.AttendanceAbsent), "otra sesión", now)
	require.NoError(t, err)

	rec, other, err = ResolveJustification(rec, other, model.JustificationRejected, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, model.AttendanceJustified, rec.Status)
	require.NotNil(t, rec.JustificationID)
	assert.Equal(t, linked.ID, *rec.JustificationID)
	assert.Equal(t, model.JustificationRejected, other.Status)
}

func TestResolveJustification_OneWay(t *testing.T) {
	rec, req, err := NewJustification(record(model.AttendanceAbsent), "viaje", now)
	require.NoError(t, err)

	rec, req, err = ResolveJustification(rec, req, model.JustificationApproved, now)
	require.NoError(t, err)

	// Una solicitud resuelta no se puede volver a resolver.
	_, _, err = ResolveJustification(rec, req, model.JustificationRejected, now)
	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
}

func TestResolveJustification_BadVerdict(t *testing.T) {
	rec, req, err := NewJustification(record(model.AttendanceAbsent), "viaje", now)
	require.NoError(t, err)

	_, _, err = ResolveJustification(rec, req, model.JustificationPending, now)
	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
}

func TestExpired(t *testing.T) {
	_, req, err := NewJustification(record(model.AttendanceAbsent), "viaje", now)
	require.NoError(t, err)

	assert.False(t, Expired(req, now))
	assert.False(t, Expired(req, req.ExpiresAt))
	assert.True(t, Expired(req, req.ExpiresAt.Add(time.Minute)))

	req.Status = model.JustificationApproved
	assert.False(t, Expired(req, req.ExpiresAt.Add(time.Minute)))
}

func TestSummarize(t *testing.T) {
	recPresent := record(model.AttendancePresent)
	recAbsent := record(model.AttendanceAbsent)
	recLate := record(model.AttendanceLate)
	recUnmarked := record(model.AttendanceUnmarked)

	recPending, reqPending, err := NewJustification(record(model.AttendanceAbsent), "a", now)
	require.NoError(t, err)

	recFirm, reqFirm, err := NewJustification(record(model.AttendanceAbsent), "b", now)
	require.NoError(t, err)
	recFirm, reqFirm, err = ResolveJustification(recFirm, reqFirm, model.JustificationApproved, now)
	require.NoError(t, err)

	s := Summarize(
		[]model.AttendanceRecord{recPresent, recAbsent, recLate, recUnmarked, recPending, recFirm},
		[]model.JustificationRequest{reqPending, reqFirm},
	)

	assert.Equal(t, Summary{
		Present:          1,
		Absent:           1,
		Late:             1,
		Justified:        2,
		PendingJustified: 1,
		Unmarked:         1,
	}, s)
}
