package lsp

import (
	"errors"
	"math"

	"github.com/dhamidi/ldn/ldn"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "ldn"

// Diagnostic converts a parse error into an editor diagnostic. Positions are
// already zero-based and are passed through unchanged.
func Diagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource

	var perr *ldn.Error
	if !errors.As(err, &perr) {
		return protocol.Diagnostic{
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		}
	}

	return protocol.Diagnostic{
		Range:    toRange(perr.Span),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: perr.Kind.String()},
		Source:   &source,
		Message:  perr.Kind.Summary(),
	}
}

func toPosition(p ldn.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(p.Line),
		Character: protocol.UInteger(p.Column),
	}
}

func toRange(s ldn.Span) protocol.Range {
	return protocol.Range{Start: toPosition(s.Start), End: toPosition(s.End)}
}

func fromPosition(p protocol.Position) ldn.Position {
	return ldn.Position{Line: int(p.Line), Column: int(p.Character)}
}

// wholeDocument covers any document, however long.
var wholeDocument = protocol.Range{
	Start: protocol.Position{Line: 0, Character: 0},
	End:   protocol.Position{Line: math.MaxUint32, Character: math.MaxUint32},
}
