package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize("info"))
	assert.NotNil(t, Log)
}

func TestInitializeBadLevel(t *testing.T) {
	assert.Error(t, Initialize("notalevel"))
}
