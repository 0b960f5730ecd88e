package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "nested", "gains.yaml")

	// WHEN
	err := WriteFileAtomic(path, []byte("p: 1\n"))

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "p: 1\n", string(content))
}
