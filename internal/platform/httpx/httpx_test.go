package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cattle-records/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StructuredBody(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, apperr.InvalidState("reproduction event", "e-1", "birth already recorded"))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body.Error)
	assert.Equal(t, "reproduction event", body.Entity)
	assert.Equal(t, "e-1", body.ID)
	assert.Contains(t, body.Message, "birth already recorded")
}

func TestWriteError_InternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Tag string `json:"tag"`
	}

	empty := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(empty, &dst), apperr.ErrValidation)

	unknown := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tag":"A1","horns":2}`))
	assert.ErrorIs(t, DecodeJSON(unknown, &dst), apperr.ErrValidation)

	ok := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tag":"A1"}`))
	require.NoError(t, DecodeJSON(ok, &dst))
	assert.Equal(t, "A1", dst.Tag)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("birth_date", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("birth_date", "2024-03-01T10:00:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("birth_date", "01/03/2024")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	none, err := ParseOptionalDate("x", nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAsOfAndQueryInt(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	r := httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil)
	got, err := AsOf(r, now)
	require.NoError(t, err)
	assert.Equal(t, fixed, got)

	// la hora del reloj no cuenta
	got, err = AsOf(r, func() time.Time { return fixed.Add(9*time.Hour + 30*time.Minute) })
	require.NoError(t, err)
	assert.Equal(t, fixed, got)

	r = httptest.NewRequest(http.MethodGet, "/reports/follow-ups?days=x", nil)
	_, err = QueryInt(r, "days", 7)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
