package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Clock(t *testing.T) {
	hour, minute, err := TimeString("18:30").Clock()
	require.NoError(t, err)
	assert.Equal(t, 18, hour)
	assert.Equal(t, 30, minute)

	hour, minute, err = TimeString("08:00").Clock()
	require.NoError(t, err)
	assert.Equal(t, 8, hour)
	assert.Equal(t, 0, minute)
}

func TestTimeString_Clock_InvalidFormat(t *testing.T) {
	for _, raw := range []string{"", "25:00", "8:00:00", "evening"} {
		_, _, err := TimeString(raw).Clock()
		assert.ErrorIs(t, err, ErrInvalidTimeString, raw)
	}
}

func TestTimeString_String(t *testing.T) {
	assert.Equal(t, "08:00", TimeString("08:00").String())
}
