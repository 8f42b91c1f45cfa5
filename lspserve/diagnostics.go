package lspserve

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/example/esparse/source"
	"github.com/example/esparse/visitor"
)

// diagnosticOnlyVisitor drives a parse purely for its side effect of
// filling the parser's diagnostic sink; it has no interest in the
// semantic event stream itself. Every method is a no-op, the same shape
// visitor.Spy uses for recording, minus the recording.
type diagnosticOnlyVisitor struct{}

func newDiagnosticOnlyVisitor() visitor.Visitor { return diagnosticOnlyVisitor{} }

func (diagnosticOnlyVisitor) VariableDeclaration(name string, kind visitor.Kind) {}
func (diagnosticOnlyVisitor) VariableUse(name string)                           {}
func (diagnosticOnlyVisitor) VariableAssignment(name string)                    {}
func (diagnosticOnlyVisitor) PropertyDeclaration(name string)                   {}
func (diagnosticOnlyVisitor) EnterBlockScope()                                  {}
func (diagnosticOnlyVisitor) ExitBlockScope()                                   {}
func (diagnosticOnlyVisitor) EnterForScope()                                    {}
func (diagnosticOnlyVisitor) ExitForScope()                                     {}
func (diagnosticOnlyVisitor) EnterClassScope()                                  {}
func (diagnosticOnlyVisitor) ExitClassScope()                                   {}
func (diagnosticOnlyVisitor) EnterFunctionScope()                               {}
func (diagnosticOnlyVisitor) EnterNamedFunctionScope(name string)               {}
func (diagnosticOnlyVisitor) ExitFunctionScope()                                {}
func (diagnosticOnlyVisitor) EndOfModule()                                      {}

// toProtocolDiagnostics translates source.Diagnostic byte ranges into
// LSP Positions, which count columns in UTF-16 code units just like
// source.Locator does.
func toProtocolDiagnostics(diags []source.Diagnostic, loc *source.Locator) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, len(diags))
	sev := protocol.DiagnosticSeverityError
	for i, d := range diags {
		begin := loc.Pos(d.Range.Begin)
		end := loc.Pos(d.Range.End)
		out[i] = protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(begin.Line - 1), Character: uint32(begin.Column - 1)},
				End:   protocol.Position{Line: uint32(end.Line - 1), Character: uint32(end.Column - 1)},
			},
			Severity: &sev,
			Source:   strPtr(lsName),
			Message:  d.Kind.String(),
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
