package source

import "testing"

func TestLocatorPosFirstLine(t *testing.T) {
	loc := NewLocator([]byte("let x = 1;"))
	pos := loc.Pos(4)
	if pos.Line != 1 || pos.Column != 5 {
		t.Errorf("Pos(4) = %v, want {1 5}", pos)
	}
}

func TestLocatorPosAcrossLines(t *testing.T) {
	buf := []byte("let x;\nlet y;\n")
	loc := NewLocator(buf)
	pos := loc.Pos(7)
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("Pos(7) = %v, want {2 1}", pos)
	}
}

func TestLocatorLineCount(t *testing.T) {
	loc := NewLocator([]byte("a\nb\nc"))
	if got := loc.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
}

func TestLocatorUTF16Column(t *testing.T) {
	// U+1F600 (grinning face) is a surrogate pair in UTF-16 and 4 bytes in UTF-8.
	buf := []byte("😀x")
	loc := NewLocator(buf)
	pos := loc.Pos(4) // byte offset right after the emoji
	if pos.Column != 3 {
		t.Errorf("Pos(4).Column = %d, want 3 (2 UTF-16 units + 1)", pos.Column)
	}
}

func TestDiagnosticSinkOrdering(t *testing.T) {
	sink := NewSink()
	sink.Add(MissingSemicolonAfterExpression, Range{Begin: 10, End: 10})
	sink.Add(UnmatchedParenthesis, Range{Begin: 2, End: 3})
	sink.Add(UnmatchedParenthesis, Range{Begin: 2, End: 3})

	diags := sink.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("len(Diagnostics()) = %d, want 3", len(diags))
	}
	if diags[0].Range.Begin != 10 || diags[1].Range.Begin != 2 || diags[2].Range.Begin != 2 {
		t.Errorf("diagnostics not in emission order: %+v", diags)
	}
}
