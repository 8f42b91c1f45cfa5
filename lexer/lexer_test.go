package lexer

import (
	"testing"

	"github.com/example/esparse/source"
	"github.com/example/esparse/token"
)

func scanAll(src string) []token.Token {
	l := New([]byte(src), source.NewSink())
	var toks []token.Token
	for {
		tok := l.Peek()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
		l.Advance()
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	want = append(want, token.EOF)
	got := kinds(scanAll(src))
	if len(got) != len(want) {
		t.Fatalf("scanAll(%q) = %v, want %v", src, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("scanAll(%q)[%d] = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestLexPunctuatorsMaximalMunch(t *testing.T) {
	assertKinds(t, ">>>=", token.UShrAssign)
	assertKinds(t, ">>>", token.UShr)
	assertKinds(t, ">>", token.Shr)
	assertKinds(t, ">", token.Gt)
	assertKinds(t, "?.5", token.Question, token.Number)
	assertKinds(t, "a?.b", token.Identifier, token.OptionalChain, token.Identifier)
	assertKinds(t, "...", token.Ellipsis)
	assertKinds(t, "??=", token.QuestionQuestionAssign)
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	assertKinds(t, "let x = of", token.KeywordLet, token.Identifier, token.Assign, token.KeywordOf)
}

func TestLexNumbers(t *testing.T) {
	for _, src := range []string{"0", "42", "3.14", "1.", ".5", "1e10", "1e+10", "1e-10", "1.5e3"} {
		toks := scanAll(src)
		if len(toks) != 2 || toks[0].Kind != token.Number || toks[0].Value != src {
			t.Errorf("scanAll(%q) = %+v, want a single Number token with value %q", src, toks, src)
		}
	}
}

func TestLexNumberStopsBeforeDanglingExponent(t *testing.T) {
	// "1e" has no digits after 'e', so 'e' is not consumed as an exponent marker.
	toks := scanAll("1e")
	assertKinds(t, "1e", token.Number, token.Identifier)
	if toks[0].Value != "1" {
		t.Errorf("Number value = %q, want %q", toks[0].Value, "1")
	}
}

func TestLexStrings(t *testing.T) {
	toks := scanAll(`"a\"b" 'c\'d'`)
	if len(toks) != 3 || toks[0].Kind != token.String || toks[1].Kind != token.String {
		t.Fatalf("scanAll = %+v", toks)
	}
	if toks[0].Value != `"a\"b"` {
		t.Errorf("toks[0].Value = %q", toks[0].Value)
	}
}

func TestLexTemplateNoSubstitution(t *testing.T) {
	toks := scanAll("`hello`")
	assertKinds(t, "`hello`", token.TemplateNoSubstitution)
	if toks[0].Value != "`hello`" {
		t.Errorf("value = %q", toks[0].Value)
	}
}

func TestLexTemplateHeadAndContinuation(t *testing.T) {
	l := New([]byte("`a${b}c`"), source.NewSink())

	head := l.Peek()
	if head.Kind != token.TemplateHead || head.Value != "`a${" {
		t.Fatalf("head = %+v, want TemplateHead %q", head, "`a${")
	}
	l.Advance()

	ident := l.Peek()
	if ident.Kind != token.Identifier || ident.Value != "b" {
		t.Fatalf("ident = %+v", ident)
	}
	l.Advance()

	// At this point the lexer's default scan sees "}" and treats it as a
	// plain RBrace; the parser, knowing it's closing a template hole,
	// re-lexes it as the continuation instead.
	plain := l.Peek()
	if plain.Kind != token.RBrace {
		t.Fatalf("plain = %+v, want RBrace", plain)
	}

	tail := l.ReLexTemplateContinuation()
	if tail.Kind != token.TemplateTail || tail.Value != "}c`" {
		t.Fatalf("tail = %+v, want TemplateTail %q", tail, "}c`")
	}
	l.Advance()
	if eof := l.Peek(); eof.Kind != token.EOF {
		t.Errorf("eof = %+v", eof)
	}
}

func TestLexTemplateMiddle(t *testing.T) {
	l := New([]byte("`a${1}b${2}c`"), source.NewSink())
	l.Advance() // past head `a${
	l.Advance() // past 1
	mid := l.ReLexTemplateContinuation()
	if mid.Kind != token.TemplateMiddle || mid.Value != "}b${" {
		t.Fatalf("mid = %+v, want TemplateMiddle %q", mid, "}b${")
	}
}

func TestLexRelexAsRegExp(t *testing.T) {
	l := New([]byte("/ab+c/gi"), source.NewSink())
	slash := l.Peek()
	if slash.Kind != token.Slash {
		t.Fatalf("initial scan = %+v, want Slash", slash)
	}
	re := l.ReLexAsRegExp()
	if re.Kind != token.RegExp || re.Value != "/ab+c/gi" {
		t.Fatalf("re = %+v, want RegExp %q", re, "/ab+c/gi")
	}
}

func TestLexRegExpCharacterClassMayContainSlash(t *testing.T) {
	l := New([]byte("/[a/b]/"), source.NewSink())
	l.Peek()
	re := l.ReLexAsRegExp()
	if re.Kind != token.RegExp || re.Value != "/[a/b]/" {
		t.Fatalf("re = %+v, want RegExp %q", re, "/[a/b]/")
	}
}

func TestLexLineCommentsAndLeadingNewline(t *testing.T) {
	l := New([]byte("let x // trailing\n= 1"), source.NewSink())
	l.Advance() // x
	assign := l.Advance()
	if assign.Kind != token.Assign || !assign.HasLeadingNewline {
		t.Fatalf("assign = %+v, want Assign with HasLeadingNewline=true", assign)
	}
}

func TestLexBlockCommentSpanningNewlineCountsAsNewline(t *testing.T) {
	l := New([]byte("a /*\n*/ b"), source.NewSink())
	b := l.Advance()
	if b.Kind != token.Identifier || !b.HasLeadingNewline {
		t.Fatalf("b = %+v, want Identifier with HasLeadingNewline=true", b)
	}
}

func TestLexNoLeadingNewlineOnSameLine(t *testing.T) {
	l := New([]byte("a /* comment */ b"), source.NewSink())
	b := l.Advance()
	if b.HasLeadingNewline {
		t.Errorf("b = %+v, want HasLeadingNewline=false", b)
	}
}

func TestLexSkipsLeadingBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let")...)
	l := New(src, source.NewSink())
	tok := l.Peek()
	if tok.Kind != token.KeywordLet || tok.Range.Begin != 0 {
		t.Fatalf("tok = %+v, want KeywordLet at offset 0", tok)
	}
}

func TestLexDollarAndUnderscoreIdentifiers(t *testing.T) {
	assertKinds(t, "$foo _bar $_baz", token.Identifier, token.Identifier, token.Identifier)
}
