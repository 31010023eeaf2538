package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryPath(t *testing.T) {
	t.Setenv("HOME", "/tmp/calc-home")
	assert.Equal(t, filepath.Join("/tmp/calc-home", historyFile), historyPath())

	// With no home directory the history is skipped entirely rather than
	// written to a relative path in the working directory.
	t.Setenv("HOME", "")
	assert.Equal(t, "", historyPath())
}
