package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_PAYMENT)
	assert.True(t, strings.HasPrefix(id, "pay_"))
	assert.Greater(t, len(id), len("pay_"))

	assert.NotEqual(t, GenerateUUIDWithPrefix(UUID_PREFIX_LEAD), GenerateUUIDWithPrefix(UUID_PREFIX_LEAD))

	bare := GenerateUUIDWithPrefix("")
	assert.NotContains(t, bare, "_")
}

func TestGenerateShortIDWithPrefix(t *testing.T) {
	receipt := GenerateShortIDWithPrefix(SHORT_ID_PREFIX_RECEIPT)
	assert.True(t, strings.HasPrefix(receipt, "LD-"))
	assert.LessOrEqual(t, len(receipt), 12)
	assert.Equal(t, strings.ToUpper(receipt), receipt)
}
