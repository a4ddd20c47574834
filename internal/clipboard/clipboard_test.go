package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	text, err := m.Get()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, m.Put("a\nb"))
	text, err = m.Get()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", text)
}

func TestDefaultNeverNil(t *testing.T) {
	assert.NotNil(t, Default())
}
