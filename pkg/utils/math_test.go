package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 3, CeilDiv(250, 100))
	assert.Equal(t, 1, CeilDiv(1, 100))
	assert.Equal(t, 2, CeilDiv(200, 100))
	assert.Equal(t, 0, CeilDiv(0, 100))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, -1, Min(-1, 0))
}

func TestGenerateEventID(t *testing.T) {
	id := GenerateEventID("CargoTransfer")

	assert.True(t, strings.HasPrefix(id, "cargotransfer-"))
	assert.Len(t, id, len("cargotransfer-")+8)
	assert.NotEqual(t, id, GenerateEventID("CargoTransfer"))
	assert.True(t, strings.HasPrefix(GenerateEventID(""), "event-"))
}
