package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"let", KeywordLet},
		{"const", KeywordConst},
		{"function", KeywordFunction},
		{"of", KeywordOf},
		{"banana", Identifier},
		{"Let", Identifier}, // keyword matching is exact byte match, case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupKeyword(tt.input); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsContextualBindingName(t *testing.T) {
	if !IsContextualBindingName(KeywordOf) {
		t.Error("of should be a contextual binding name")
	}
	if IsContextualBindingName(KeywordIf) {
		t.Error("if must not be a contextual binding name")
	}
}
