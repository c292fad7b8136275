package diag

import (
	"strings"
	"testing"

	"github.com/xbodwf/ljc/internal/token"
)

func TestDiagnosticFormat(t *testing.T) {
	source := "const x = 1 +\n"
	d := New(CodeUnexpectedToken, token.Position{Line: 1, Column: 14}, "unexpected end of expression").WithFile("a.lj")

	got := d.Format(false, source)
	for _, want := range []string{"Error in a.lj:1:14", "const x = 1 +", "^", "unexpected end of expression"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q in:\n%s", want, got)
		}
	}
}

func TestListHasErrors(t *testing.T) {
	l := List{Warn(CodeUnexpectedChar, token.Position{}, "x")}
	if l.HasErrors() {
		t.Error("a warning-only list should not report HasErrors")
	}

	l = append(l, New(CodeUnexpectedToken, token.Position{}, "y"))
	if !l.HasErrors() {
		t.Error("expected HasErrors once an Error-severity diagnostic is present")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	l := List{
		New(CodeUnexpectedToken, token.Position{Line: 2, Column: 3}, "bad token").WithFile("f.lj"),
		Warn(CodeUnresolvedImport, token.Position{Line: 5, Column: 1}, "cannot resolve"),
	}

	data, err := l.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	back, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("len(back) = %d, want 2", len(back))
	}
	if back[0].Message != "bad token" || back[0].File != "f.lj" || back[0].Pos.Line != 2 {
		t.Errorf("round-tripped diagnostic mismatch: %+v", back[0])
	}
	if back[1].Severity != Warning {
		t.Errorf("expected second diagnostic to be Warning, got %v", back[1].Severity)
	}
}
