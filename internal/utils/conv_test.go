package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, 3, ParsePositiveInt("3", 1))
	assert.Equal(t, 1, ParsePositiveInt("", 1))
	assert.Equal(t, 1, ParsePositiveInt("abc", 1))
	assert.Equal(t, 25, ParsePositiveInt("0", 25))
	assert.Equal(t, 25, ParsePositiveInt("-5", 25))
}
