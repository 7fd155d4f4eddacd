package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	snap := Empty()
	assert.Equal(t, DefaultNextID, snap.NextID)
	assert.NotNil(t, snap.Students)
	assert.Empty(t, snap.Students)
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("unable to open database file")
	s := Unavailable(cause)

	snap, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Empty(), snap)

	assert.ErrorIs(t, s.Save(snap), cause)
	assert.NoError(t, s.Close())
}
