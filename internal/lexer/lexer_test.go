package lexer

import (
	"testing"

	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasicDeclaration(t *testing.T) {
	toks, errs := Tokenize(`const x = 1 + 2 * 3`, "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []token.Kind{
		token.CONST, token.IDENT, token.ASSIGN, token.INT,
		token.PLUS, token.INT, token.STAR, token.INT, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	src := `fn add(a: int, b: int): int { return a + b }`
	toks, errs := Tokenize(src, "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.FN {
		t.Errorf("expected leading FN, got %v", toks[0].Kind)
	}
	lastNonEOF := toks[len(toks)-2]
	if lastNonEOF.Kind != token.RBRACE {
		t.Errorf("expected trailing RBRACE, got %v", lastNonEOF.Kind)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"123", token.INT},
		{"1.5", token.FLOAT},
		{"1.5e10", token.FLOAT},
		{"1e-3", token.FLOAT},
		{"0xFF", token.INT},
		{"0o17", token.INT},
		{"0b1010", token.INT},
	}
	for _, tt := range tests {
		toks, errs := Tokenize(tt.src, "t.lj")
		if len(errs) != 0 {
			t.Errorf("%s: unexpected errors: %v", tt.src, errs)
		}
		if toks[0].Kind != tt.kind {
			t.Errorf("%s: got kind %v, want %v", tt.src, toks[0].Kind, tt.kind)
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, errs := Tokenize(`"a\nb\tc"`, "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %v", toks[0].Kind)
	}
	if toks[0].Lexeme != "a\nb\tc" {
		t.Errorf("got %q", toks[0].Lexeme)
	}
}

func TestTokenizeTemplateString(t *testing.T) {
	toks, errs := Tokenize(`"hello ${name}!"`, "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.TEMPLATE_STRING {
		t.Fatalf("expected TEMPLATE_STRING, got %v", toks[0].Kind)
	}
	chunks := toks[0].Chunks
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (literal, expr, literal), got %d: %+v", len(chunks), chunks)
	}
	if !chunks[0].Literal || chunks[0].Text != "hello " {
		t.Errorf("chunk 0 = %+v", chunks[0])
	}
	if chunks[1].Literal || chunks[1].ExprSource != "name" {
		t.Errorf("chunk 1 = %+v", chunks[1])
	}
	if !chunks[2].Literal || chunks[2].Text != "!" {
		t.Errorf("chunk 2 = %+v", chunks[2])
	}
}

func TestTokenizeOperatorsGreedyMatch(t *testing.T) {
	src := `a **= b ??= c <- d => e ?. f .. g ..= h`
	toks, _ := Tokenize(src, "t.lj")
	want := []token.Kind{
		token.IDENT, token.STAR_STAR_ASSIGN, token.IDENT,
		token.QUESTION_QUESTION_ASSIGN, token.IDENT,
		token.ARROW_LEFT, token.IDENT,
		token.FAT_ARROW, token.IDENT,
		token.QUESTION_DOT, token.IDENT,
		token.DOTDOT, token.IDENT,
		token.DOTDOT_EQ, token.IDENT,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLineCommentSkipped(t *testing.T) {
	toks, errs := Tokenize("const x = 1 # this is a comment\nconst y = 2", "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	found := false
	for _, tk := range toks {
		if tk.Kind == token.COMMENT {
			found = true
		}
	}
	if found {
		t.Error("comments should be discarded trivia, not emitted as tokens")
	}
	if toks[len(toks)-2].Kind != token.INT {
		t.Errorf("expected final token before EOF to be the int literal 2")
	}
}

func TestUnterminatedStringProducesDiagnostic(t *testing.T) {
	_, errs := Tokenize(`"abc`, "t.lj")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(errs), errs)
	}
	if errs[0].Code != diag.CodeUnterminatedString {
		t.Errorf("unexpected diagnostic code: %v", errs[0].Code)
	}
}

func TestUnknownCharacterRecovers(t *testing.T) {
	toks, errs := Tokenize("const x = 1 § + 2", "t.lj")
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic for the unexpected character")
	}
	// Lexing must still produce a complete, EOF-terminated stream.
	if toks[len(toks)-1].Kind != token.EOF {
		t.Error("expected lexing to recover and still reach EOF")
	}
}

func TestDocCommentAttachesToFollowingToken(t *testing.T) {
	src := "## Adds two numbers.\n## Returns their sum.\nfn add(a: int, b: int): int { return a + b }"
	toks, errs := Tokenize(src, "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.FN {
		t.Fatalf("expected leading FN, got %v", toks[0].Kind)
	}
	want := "Adds two numbers.\nReturns their sum."
	if toks[0].Doc != want {
		t.Errorf("Doc = %q, want %q", toks[0].Doc, want)
	}
	if toks[1].Doc != "" {
		t.Errorf("doc comment should attach only to the immediately following token, got %q on token 1", toks[1].Doc)
	}
}

func TestDocCommentBreaksOnBlankLine(t *testing.T) {
	src := "## orphaned doc\n\nfn f() {}"
	toks, _ := Tokenize(src, "t.lj")
	if toks[0].Doc != "" {
		t.Errorf("expected doc chain to break on blank line, got %q", toks[0].Doc)
	}
}

func TestPositionsWithinSourceBounds(t *testing.T) {
	src := "const x = 1\nfn f() { return x }\n"
	toks, _ := Tokenize(src, "t.lj")
	for _, tk := range toks {
		if tk.Pos.Offset < 0 || tk.Pos.Offset > len(src) {
			t.Errorf("token %+v has out-of-bounds offset", tk)
		}
	}
}
