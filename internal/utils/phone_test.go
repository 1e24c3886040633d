package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	normalized, err := NormalizePhone("(21) 98765-4321")
	require.NoError(t, err)
	assert.Equal(t, "+5521987654321", normalized)

	normalized, err = NormalizePhone("+5511912345678")
	require.NoError(t, err)
	assert.Equal(t, "+5511912345678", normalized)
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "123", "not a phone"} {
		_, err := NormalizePhone(raw)
		assert.Error(t, err, raw)
	}
}
