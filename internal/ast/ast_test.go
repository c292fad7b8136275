package ast

import (
	"testing"

	"github.com/xbodwf/ljc/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.Token{Kind: token.IDENT, Lexeme: name}, Value: name}
}

func TestProgramEmpty(t *testing.T) {
	p := &Program{}
	if p.TokenLiteral() != "" {
		t.Errorf("TokenLiteral() = %q, want empty", p.TokenLiteral())
	}
	if p.Pos() != (token.Position{Line: 1, Column: 1}) {
		t.Errorf("Pos() = %+v, want 1:1", p.Pos())
	}
}

func TestBinaryExpressionString(t *testing.T) {
	e := &BinaryExpression{
		Token:    token.Token{Kind: token.PLUS, Lexeme: "+"},
		Left:     &IntLiteral{Token: token.Token{Lexeme: "1"}, Value: 1},
		Operator: "+",
		Right: &BinaryExpression{
			Token:    token.Token{Kind: token.STAR, Lexeme: "*"},
			Left:     &IntLiteral{Token: token.Token{Lexeme: "2"}, Value: 2},
			Operator: "*",
			Right:    &IntLiteral{Token: token.Token{Lexeme: "3"}, Value: 3},
		},
	}
	want := "(1 + (2 * 3))"
	if e.String() != want {
		t.Errorf("String() = %q, want %q", e.String(), want)
	}
}

func TestIfStatementElseChain(t *testing.T) {
	inner := &IfStatement{
		Token:     token.Token{Lexeme: "if"},
		Condition: ident("b"),
		Then:      &BlockStatement{Token: token.Token{Lexeme: "{"}},
	}
	outer := &IfStatement{
		Token:     token.Token{Lexeme: "if"},
		Condition: ident("a"),
		Then:      &BlockStatement{Token: token.Token{Lexeme: "{"}},
		Else:      inner,
	}
	got := outer.String()
	want := "if (a) {\n} else if (b) {\n}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWhenExpressionArms(t *testing.T) {
	e := &WhenExpression{
		Token:   token.Token{Lexeme: "when"},
		Subject: ident("x"),
		Arms: []WhenArm{
			{Pattern: &LiteralPattern{Value: &IntLiteral{Token: token.Token{Lexeme: "1"}, Value: 1}}, Body: &StringLiteral{Value: "one"}},
			{Pattern: &ElsePattern{}, Body: &StringLiteral{Value: "other"}},
		},
	}
	got := e.String()
	want := `when (x) { 1 => "one"; else => "other"; }`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestClassDeclarationString(t *testing.T) {
	d := &ClassDeclaration{
		Token: token.Token{Lexeme: "class"},
		Name:  "Animal",
		Super: ident("Base"),
		Members: []ClassMember{
			&FieldMember{Name: "name", Type: &SimpleType{Name: "string"}, Modifiers: Modifiers{Private: true}},
		},
	}
	got := d.String()
	want := "class Animal extends Base {\n  private name: string\n}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypeAnnotationVariants(t *testing.T) {
	arr := &ArrayType{Elem: &SimpleType{Name: "int"}}
	if arr.String() != "int[]" {
		t.Errorf("ArrayType.String() = %q", arr.String())
	}
	un := &UnionType{Options: []TypeAnnotation{&SimpleType{Name: "int"}, &SimpleType{Name: "string"}}}
	if un.String() != "int | string" {
		t.Errorf("UnionType.String() = %q", un.String())
	}
	fn := &FunctionType{Params: []TypeAnnotation{&SimpleType{Name: "int"}}, Return: &SimpleType{Name: "bool"}}
	if fn.String() != "(int) -> bool" {
		t.Errorf("FunctionType.String() = %q", fn.String())
	}
}

func TestPatternVariants(t *testing.T) {
	tp := &TypePattern{Name: "n", Type: &SimpleType{Name: "int"}}
	if tp.String() != "n is int" {
		t.Errorf("TypePattern.String() = %q", tp.String())
	}
	op := &OrPattern{Patterns: []Pattern{&IdentPattern{Name: "a"}, &IdentPattern{Name: "b"}}}
	if op.String() != "a | b" {
		t.Errorf("OrPattern.String() = %q", op.String())
	}
}
