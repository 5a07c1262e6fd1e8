package gcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	_, err := Options("  ")
	require.ErrorIs(t, err, ErrNoCredentials)

	opts, err := Options("/etc/creds.json", "scope-a", "scope-b")
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	opts, err = Options("/etc/creds.json")
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}
