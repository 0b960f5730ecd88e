package util

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic replaces the file at path with data, creating missing
// parent directories.
func WriteFileAtomic(path string, data []byte) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
