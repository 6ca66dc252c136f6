package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	a, err := RandomString(32)
	require.NoError(t, err)
	b, err := RandomString(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43) // 32 bytes, base64url without padding
}

func TestRandomOTP_StaysSixDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		otp, err := RandomOTP()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, otp, 100000)
		assert.LessOrEqual(t, otp, 999999)
	}
}
