package animals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cattle-records/internal/platform/apperr"
)

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"cow-1":      "COW-1",
		"  Cow-1 \t": "COW-1",
		"cö-1":       "CÖ-1",
		"co\u0308-1": "CÖ-1", // o + diéresis combinante
	}
	for in, want := range cases {
		got, err := NormalizeTag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeTag_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "A", "ABCDEFGHIJKLMNOPQRSTU", "A\x00B"} {
		_, err := NormalizeTag(in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%q", in)
	}
}

func TestCanTransition(t *testing.T) {
	require.NoError(t, CanTransition("a-1", StatusActive, StatusSold))
	require.NoError(t, CanTransition("a-1", StatusActive, StatusDeceased))

	assert.ErrorIs(t, CanTransition("a-1", StatusSold, StatusActive), apperr.ErrInvalidState)
	assert.ErrorIs(t, CanTransition("a-1", StatusDeceased, StatusSold), apperr.ErrInvalidState)
	assert.ErrorIs(t, CanTransition("a-1", StatusSold, StatusSold), apperr.ErrInvalidState)
	assert.ErrorIs(t, CanTransition("a-1", StatusActive, StatusActive), apperr.ErrInvalidState)
	assert.ErrorIs(t, CanTransition("a-1", StatusActive, "lost"), apperr.ErrValidation)
}
