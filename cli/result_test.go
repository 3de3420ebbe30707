package cli

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("implements error interface", func(t *testing.T) {
		err := NewCommandError(1)
		assert.Error(t, err)
	})

	t.Run("returns exit code", func(t *testing.T) {
		err := NewCommandError(42)
		assert.Equal(t, err.ExitCode(), 42)
	})

	t.Run("supports type assertion", func(t *testing.T) {
		var err error = NewCommandError(1)
		cmdErr, ok := err.(*CommandError)
		assert.True(t, ok)
		assert.Equal(t, cmdErr.ExitCode(), 1)
	})
}

func TestIsCommandError(t *testing.T) {
	t.Run("unwraps exit code", func(t *testing.T) {
		code, ok := IsCommandError(NewCommandError(3))
		assert.True(t, ok)
		assert.Equal(t, code, 3)
	})

	t.Run("sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("derive: %w", NewCommandError(1))
		code, ok := IsCommandError(wrapped)
		assert.True(t, ok)
		assert.Equal(t, code, 1)
	})

	t.Run("ignores other errors", func(t *testing.T) {
		_, ok := IsCommandError(fmt.Errorf("boom"))
		assert.False(t, ok)
	})
}
