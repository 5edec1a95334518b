package lsp

import (
	"errors"
	"testing"

	"github.com/dhamidi/ldn/ldn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnosticFromParseError(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
		start   protocol.Position
		end     protocol.Position
	}{
		{
			name:    "unbalanced",
			input:   "(a\n b",
			code:    "UnbalancedParentheses",
			message: "Unbalanced parentheses",
			start:   protocol.Position{Line: 1, Character: 2},
			end:     protocol.Position{Line: 1, Character: 2},
		},
		{
			name:    "leading zero",
			input:   "007",
			code:    "IntegerLeadingZero",
			message: "Found leading zero while parsing integer constant",
			start:   protocol.Position{Line: 0, Character: 0},
			end:     protocol.Position{Line: 0, Character: 3},
		},
		{
			name:    "unknown character",
			input:   "a\n  [b]",
			code:    "UnknownCharacter",
			message: "Invalid character",
			start:   protocol.Position{Line: 1, Character: 2},
			end:     protocol.Position{Line: 1, Character: 2},
		},
		{
			name:    "unexpected close",
			input:   "a )",
			code:    "UnexpectedCloseParen",
			message: "Unexpected closing parenthesis",
			start:   protocol.Position{Line: 0, Character: 2},
			end:     protocol.Position{Line: 0, Character: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ldn.ParseString(tt.input)
			require.Error(t, err)

			diag := Diagnostic(err)
			require.NotNil(t, diag.Severity)
			assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
			require.NotNil(t, diag.Source)
			assert.Equal(t, "ldn", *diag.Source)
			require.NotNil(t, diag.Code)
			assert.Equal(t, tt.code, diag.Code.Value)
			assert.Equal(t, tt.message, diag.Message)
			assert.Equal(t, tt.start, diag.Range.Start)
			assert.Equal(t, tt.end, diag.Range.End)
		})
	}
}

func TestDiagnosticFromOtherError(t *testing.T) {
	diag := Diagnostic(errors.New("read input: boom"))

	assert.Equal(t, "read input: boom", diag.Message)
	assert.Nil(t, diag.Code)
	assert.Equal(t, protocol.Range{}, diag.Range)
}
