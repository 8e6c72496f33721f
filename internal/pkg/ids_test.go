package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomID(t *testing.T) {
	id := GenerateRoomID()

	assert.Regexp(t, `^[A-HJ-NP-Z]{4}$`, id)
}

func TestGenerateClientID(t *testing.T) {
	a, b := GenerateClientID(), GenerateClientID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
