package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReviewToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateReviewToken()
		require.NoError(t, err)
		assert.Len(t, token, 16)
		assert.False(t, seen[token], "token %q issued twice", token)
		seen[token] = true
	}
}

func TestGeneratePriceItemKey(t *testing.T) {
	key := GeneratePriceItemKey()
	assert.True(t, strings.HasPrefix(key, "custom_"))
}
