package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkSizeOrDefault(t *testing.T) {
	assert.Equal(t, DefaultChunkSize, chunkSizeOrDefault(0))
	assert.Equal(t, DefaultChunkSize, chunkSizeOrDefault(-500))
	assert.Equal(t, 1000, chunkSizeOrDefault(1000))
	assert.Equal(t, 50000, chunkSizeOrDefault(50000))
}
