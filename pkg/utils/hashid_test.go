package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashID_RoundTrip(t *testing.T) {
	for _, id := range []uint64{1, 42, 987654321} {
		h := GenHashID("brandi-salt", id)
		assert.GreaterOrEqual(t, len(h), hashMinLength)

		got, err := DecodeHashID("brandi-salt", h)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestHashID_WrongSalt(t *testing.T) {
	h := GenHashID("brandi-salt", 7)
	_, err := DecodeHashID("other-salt", h)
	assert.Error(t, err)
}
