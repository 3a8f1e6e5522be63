package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/scry-match/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestRedactString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "slot already cleared",
			expected: "slot already cleared",
		},
		{
			name:     "world file path",
			input:    "read world /srv/worlds/animals.yaml: permission denied",
			expected: "read world [REDACTED_PATH]: permission denied",
		},
		{
			name:     "parser position",
			input:    "yaml: line 3: did not find expected node content",
			expected: "yaml: [REDACTED_LINE_NUMBER]: did not find expected node content",
		},
		{
			name:     "listen address",
			input:    "listen tcp 0.0.0.0:8080: bind: address already in use",
			expected: "listen tcp [REDACTED_HOST]: bind: address already in use",
		},
		{
			name:     "email in submitted text",
			input:    "skipped line from alice@example.com",
			expected: "skipped line from [REDACTED_EMAIL]",
		},
		{
			name:     "stack trace",
			input:    "panic: boom\n\tat main.go:12",
			expected: "[STACK_TRACE_REDACTED]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.String(tc.input))
		})
	}
}

func TestRedactWindowsPath(t *testing.T) {
	t.Parallel()
	got := redact.String(`open C:\worlds\animals.yaml`)
	assert.NotContains(t, got, "worlds")
	assert.Contains(t, got, redact.RedactedPathPlaceholder)
}

func TestRedactError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("parse world /srv/worlds/x.yaml: %w", errors.New("validation failed"))
	assert.Equal(t, "parse world [REDACTED_PATH]: validation failed", redact.Error(err))
}
