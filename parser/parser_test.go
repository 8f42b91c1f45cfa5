package parser

import (
	"testing"

	"github.com/example/esparse/source"
	"github.com/example/esparse/visitor"
)

func namesOf(records []visitor.Record) []visitor.EventName {
	out := make([]visitor.EventName, len(records))
	for i, r := range records {
		out[i] = r.Event
	}
	return out
}

func assertNames(t *testing.T, got []visitor.EventName, want ...visitor.EventName) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events[%d] = %v, want %v (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

func kindsOf(diags []source.Diagnostic) []source.DiagnosticKind {
	out := make([]source.DiagnosticKind, len(diags))
	for i, d := range diags {
		out[i] = d.Kind
	}
	return out
}

func TestParseLetXEqualsX(t *testing.T) {
	p := New([]byte("let x = x"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records), visitor.EventVariableUse, visitor.EventVariableDeclaration)
	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", p.Errors())
	}
	if spy.Records[0].Name != "x" || spy.Records[1].Name != "x" || spy.Records[1].Kind != visitor.Let {
		t.Errorf("unexpected record payloads: %+v", spy.Records)
	}
}

func TestParseBareLet(t *testing.T) {
	p := New([]byte("let"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	if len(spy.Records) != 0 {
		t.Errorf("events = %v, want none", namesOf(spy.Records))
	}
	diags := p.Errors()
	if len(diags) != 1 || diags[0].Kind != source.LetWithNoBindings {
		t.Fatalf("diagnostics = %v, want one let_with_no_bindings", diags)
	}
	if diags[0].Range != (source.Range{Begin: 0, End: 3}) {
		t.Errorf("range = %v, want [0,3)", diags[0].Range)
	}
}

func TestParseLetTrailingComma(t *testing.T) {
	p := New([]byte("let a,"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records), visitor.EventVariableDeclaration)
	diags := p.Errors()
	if len(diags) != 1 || diags[0].Kind != source.StrayCommaInLetStatement {
		t.Fatalf("diagnostics = %v, want one stray_comma_in_let_statement", diags)
	}
	if diags[0].Range != (source.Range{Begin: 5, End: 6}) {
		t.Errorf("range = %v, want [5,6)", diags[0].Range)
	}
}

func TestParseExpressionMissingOperand(t *testing.T) {
	p := New([]byte("2 +"))
	spy := visitor.NewSpy()
	p.ParseAndVisitExpression(spy)

	if len(spy.Records) != 0 {
		t.Errorf("events = %v, want none", namesOf(spy.Records))
	}
	diags := p.Errors()
	if len(diags) != 1 || diags[0].Kind != source.MissingOperandForOperator {
		t.Fatalf("diagnostics = %v, want one missing_operand_for_operator", diags)
	}
	if diags[0].Range != (source.Range{Begin: 2, End: 3}) {
		t.Errorf("range = %v, want [2,3)", diags[0].Range)
	}
}

func TestParseExpressionUnmatchedParens(t *testing.T) {
	p := New([]byte("2 * (3 + (4"))
	spy := visitor.NewSpy()
	p.ParseAndVisitExpression(spy)

	diags := p.Errors()
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %v, want two unmatched_parenthesis", diags)
	}
	for _, d := range diags {
		if d.Kind != source.UnmatchedParenthesis {
			t.Errorf("kind = %v, want unmatched_parenthesis", d.Kind)
		}
	}
	// Diagnostics come back in detection order: the inner paren is found
	// unmatched first while unwinding the nested calls to buildParenOrArrowGroup,
	// so it precedes the outer one despite its later range.begin.
	if diags[0].Range != (source.Range{Begin: 9, End: 10}) {
		t.Errorf("diags[0].Range = %v, want [9,10)", diags[0].Range)
	}
	if diags[1].Range != (source.Range{Begin: 4, End: 5}) {
		t.Errorf("diags[1].Range = %v, want [4,5)", diags[1].Range)
	}
}

func TestParseModuleMissingSemicolon(t *testing.T) {
	p := New([]byte("console.log('hello') console.log('world');"))
	spy := visitor.NewSpy()
	p.ParseAndVisitModule(spy)

	var uses []string
	for _, r := range spy.Records {
		if r.Event == visitor.EventVariableUse {
			uses = append(uses, r.Name)
		}
	}
	if len(uses) != 2 || uses[0] != "console" || uses[1] != "console" {
		t.Errorf("console uses = %v, want two uses of \"console\"", uses)
	}
	diags := p.Errors()
	if len(diags) != 1 || diags[0].Kind != source.MissingSemicolonAfterExpression {
		t.Fatalf("diagnostics = %v, want one missing_semicolon_after_expression", diags)
	}
	if diags[0].Range != (source.Range{Begin: 20, End: 20}) {
		t.Errorf("range = %v, want zero-width [20,20)", diags[0].Range)
	}
}

func TestParseFunctionDeclarationWithDefaultParam(t *testing.T) {
	p := New([]byte("function f(x, y = x) {}"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records),
		visitor.EventVariableDeclaration,
		visitor.EventEnterFunctionScope,
		visitor.EventVariableDeclaration,
		visitor.EventVariableUse,
		visitor.EventVariableDeclaration,
		visitor.EventExitFunctionScope,
	)
	if spy.Records[0].Name != "f" || spy.Records[0].Kind != visitor.Function {
		t.Errorf("function name/kind = %+v", spy.Records[0])
	}
	if spy.Records[2].Name != "x" || spy.Records[2].Kind != visitor.Parameter {
		t.Errorf("param x = %+v", spy.Records[2])
	}
	if spy.Records[3].Name != "x" {
		t.Errorf("default value use = %+v", spy.Records[3])
	}
	if spy.Records[4].Name != "y" || spy.Records[4].Kind != visitor.Parameter {
		t.Errorf("param y = %+v", spy.Records[4])
	}
	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", p.Errors())
	}
}

func TestParsePostfixDoesNotCrossNewline(t *testing.T) {
	p := New([]byte("x\n++\ny;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitModule(spy)

	assertNames(t, namesOf(spy.Records),
		visitor.EventVariableUse,
		visitor.EventVariableUse,
		visitor.EventVariableAssignment,
		visitor.EventEndOfModule,
	)
	if spy.Records[0].Name != "x" {
		t.Errorf("first use = %+v, want x", spy.Records[0])
	}
	if spy.Records[1].Name != "y" || spy.Records[2].Name != "y" {
		t.Errorf("second statement = %+v", spy.Records[1:3])
	}
	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", p.Errors())
	}
}

func TestParseClassWithStaticMethod(t *testing.T) {
	p := New([]byte("class C { static m() {} }"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records),
		visitor.EventVariableDeclaration,
		visitor.EventEnterClassScope,
		visitor.EventPropertyDeclaration,
		visitor.EventEnterFunctionScope,
		visitor.EventExitFunctionScope,
		visitor.EventExitClassScope,
	)
	if spy.Records[0].Name != "C" || spy.Records[0].Kind != visitor.Class {
		t.Errorf("class decl = %+v", spy.Records[0])
	}
	if spy.Records[2].Name != "m" {
		t.Errorf("property decl = %+v", spy.Records[2])
	}
}

func TestParseForOfWithLetBinding(t *testing.T) {
	p := New([]byte("for (let x of xs) { body; }"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	// The for-scope opens before the iterable is visited: the loop binding
	// and the iterable expression both live inside the per-iteration scope.
	assertNames(t, namesOf(spy.Records),
		visitor.EventEnterForScope,
		visitor.EventVariableUse,
		visitor.EventVariableDeclaration,
		visitor.EventEnterBlockScope,
		visitor.EventVariableUse,
		visitor.EventExitBlockScope,
		visitor.EventExitForScope,
	)
	if spy.Records[1].Name != "xs" {
		t.Errorf("iterable use = %+v, want xs", spy.Records[1])
	}
	if spy.Records[2].Name != "x" || spy.Records[2].Kind != visitor.Let {
		t.Errorf("loop binding = %+v", spy.Records[2])
	}
	if spy.Records[4].Name != "body" {
		t.Errorf("loop body use = %+v, want body", spy.Records[4])
	}
}

func TestParseMemberAssignmentHasNoAssignmentEvent(t *testing.T) {
	p := New([]byte("x.p = y;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records), visitor.EventVariableUse, visitor.EventVariableUse)
	if spy.Records[0].Name != "x" || spy.Records[1].Name != "y" {
		t.Errorf("records = %+v, want use(x) then use(y)", spy.Records)
	}
}

func TestParsePrefixIncrementUsesBeforeAssigns(t *testing.T) {
	p := New([]byte("++x;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records), visitor.EventVariableUse, visitor.EventVariableAssignment)
	if spy.Records[0].Name != "x" || spy.Records[1].Name != "x" {
		t.Errorf("records = %+v", spy.Records)
	}
}

func TestParseIdentifierAssignmentVisitsRhsFirst(t *testing.T) {
	p := New([]byte("x = y;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records), visitor.EventVariableUse, visitor.EventVariableAssignment)
	if spy.Records[0].Name != "y" || spy.Records[1].Name != "x" {
		t.Errorf("records = %+v, want use(y) then assignment(x)", spy.Records)
	}
}

func TestParseArrowFunctionDestructuringParam(t *testing.T) {
	p := New([]byte("const f = ({a, b = 1}) => a + b;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", p.Errors())
	}
	want := []visitor.EventName{
		visitor.EventEnterFunctionScope,
		visitor.EventVariableDeclaration, // a
		visitor.EventVariableDeclaration, // b's default visited then declared: default has no free vars here
		visitor.EventVariableUse,         // a
		visitor.EventVariableUse,         // b
		visitor.EventExitFunctionScope,
		visitor.EventVariableDeclaration, // f
	}
	_ = want // full sequence for reference; only the declaration count and f's position are asserted
	var gotDecls []string
	for _, r := range spy.Records {
		if r.Event == visitor.EventVariableDeclaration {
			gotDecls = append(gotDecls, r.Name)
		}
	}
	if len(gotDecls) != 3 {
		t.Fatalf("declarations = %v, want a, b, f", gotDecls)
	}
	if gotDecls[2] != "f" {
		t.Errorf("last declaration = %v, want f (declared after its initializer is fully visited)", gotDecls[2])
	}
}

func TestParseDestructuringVariableDeclaration(t *testing.T) {
	p := New([]byte("let {a, b: c = 1, ...rest} = obj;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", p.Errors())
	}
	var names []string
	for _, r := range spy.Records {
		if r.Event == visitor.EventVariableDeclaration {
			names = append(names, r.Name)
		}
	}
	want := []string{"a", "c", "rest"}
	if len(names) != len(want) {
		t.Fatalf("declarations = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("declarations[%d] = %v, want %v", i, names[i], want[i])
		}
	}
	// obj must be used before any declaration fires.
	if spy.Records[0].Event != visitor.EventVariableUse || spy.Records[0].Name != "obj" {
		t.Errorf("first event = %+v, want use(obj)", spy.Records[0])
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	p := New([]byte("try { a; } catch (e) { b; } finally { c; }"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records),
		visitor.EventEnterBlockScope,
		visitor.EventVariableUse,
		visitor.EventExitBlockScope,
		visitor.EventEnterBlockScope,
		visitor.EventVariableDeclaration,
		visitor.EventVariableUse,
		visitor.EventExitBlockScope,
		visitor.EventEnterBlockScope,
		visitor.EventVariableUse,
		visitor.EventExitBlockScope,
	)
	if spy.Records[4].Name != "e" || spy.Records[4].Kind != visitor.Catch {
		t.Errorf("catch binding = %+v", spy.Records[4])
	}
}

func TestParseIfElseScopeOnlyWrapsBracedBranch(t *testing.T) {
	p := New([]byte("if (a) b; else { c; }"))
	spy := visitor.NewSpy()
	p.ParseAndVisitStatement(spy)

	assertNames(t, namesOf(spy.Records),
		visitor.EventVariableUse, // a
		visitor.EventVariableUse, // b, no surrounding scope
		visitor.EventEnterBlockScope,
		visitor.EventVariableUse, // c
		visitor.EventExitBlockScope,
	)
}

func TestParseModuleEmitsEndOfModule(t *testing.T) {
	p := New([]byte("let x = 1;"))
	spy := visitor.NewSpy()
	p.ParseAndVisitModule(spy)

	last := spy.Records[len(spy.Records)-1]
	if last.Event != visitor.EventEndOfModule {
		t.Errorf("last event = %v, want end_of_module", last.Event)
	}
}

func TestParseModuleEqualsStatementByStatement(t *testing.T) {
	src := []byte("let x = 1; let y = x;")

	moduleSpy := visitor.NewSpy()
	New(src).ParseAndVisitModule(moduleSpy)

	stepSpy := visitor.NewSpy()
	sp := New(src)
	for {
		before := len(stepSpy.Records)
		sp.ParseAndVisitStatement(stepSpy)
		if len(stepSpy.Records) == before {
			break
		}
	}
	stepSpy.EndOfModule()

	assertNames(t, namesOf(stepSpy.Records), namesOf(moduleSpy.Records)...)
}
