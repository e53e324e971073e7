package sensitivedata

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeError(t *testing.T) {
	provider := NewProvider()
	provider.Track("very-secret-token")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "No secret",
			err:      errors.New("something failed"),
			expected: "something failed",
		},
		{
			name:     "Detailed error with secret",
			err:      errors.New("login failed with token: very-secret-token"),
			expected: "login failed with token: ********",
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeError(tt.err, provider)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.EqualError(t, got, tt.expected)
		})
	}
}

func TestSafeError_NilProvider(t *testing.T) {
	err := errors.New("token very-secret-token")
	assert.Same(t, err, SafeError(err, nil))
}

func TestSafeError_UnredactedErrorKeepsChain(t *testing.T) {
	provider := NewProvider()
	provider.Track("hunter2-secret")

	err := fmt.Errorf("open config: %w", fs.ErrNotExist)
	got := SafeError(err, provider)

	assert.Same(t, err, got)
	assert.ErrorIs(t, got, fs.ErrNotExist)
}

func TestSafeError_RedactedChainHidesSecret(t *testing.T) {
	provider := NewProvider()
	provider.Track("hunter2-secret")

	inner := fmt.Errorf("open hunter2-secret: %w", fs.ErrNotExist)
	err := fmt.Errorf("load connector: %w", inner)
	got := SafeError(err, provider)

	assert.EqualError(t, got, "load connector: open ********: file does not exist")
	for e := got; e != nil; e = errors.Unwrap(e) {
		assert.NotContains(t, e.Error(), "hunter2-secret")
	}

	var pathErr *fs.PathError
	assert.False(t, errors.As(got, &pathErr))
	assert.NotErrorIs(t, got, inner)
}
