//go:build !unix && !windows

package tailer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsupportedPlatform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := New(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}
