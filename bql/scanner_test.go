package bql

import "testing"

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []Token, want []TokenKind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(gk), len(want), gk)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v (full: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestScanIdentAndField(t *testing.T) {
	assertKinds(t, Scan("a.b.c"), []TokenKind{TokIdent, TokEOF})
}

func TestScanRelations(t *testing.T) {
	assertKinds(t, Scan("=="), []TokenKind{TokEq, TokEOF})
	assertKinds(t, Scan("!="), []TokenKind{TokNe, TokEOF})
	assertKinds(t, Scan("<"), []TokenKind{TokLt, TokEOF})
	assertKinds(t, Scan("<="), []TokenKind{TokLte, TokEOF})
	assertKinds(t, Scan(">"), []TokenKind{TokGt, TokEOF})
	assertKinds(t, Scan(">="), []TokenKind{TokGte, TokEOF})
	assertKinds(t, Scan("="), []TokenKind{TokBadRelation})
}

func TestScanKeywordsCaseInsensitive(t *testing.T) {
	for _, s := range []string{"and", "AND", "And"} {
		assertKinds(t, Scan(s), []TokenKind{TokAnd, TokEOF})
	}
	for _, s := range []string{"or", "OR"} {
		assertKinds(t, Scan(s), []TokenKind{TokOr, TokEOF})
	}
	for _, s := range []string{"null", "nil", "none", "nothing", "NULL"} {
		assertKinds(t, Scan(s), []TokenKind{TokNone, TokEOF})
	}
	for _, s := range []string{"true", "yes"} {
		assertKinds(t, Scan(s), []TokenKind{TokTrue, TokEOF})
	}
	for _, s := range []string{"false", "no"} {
		assertKinds(t, Scan(s), []TokenKind{TokFalse, TokEOF})
	}
}

func TestScanSymbolicConnectives(t *testing.T) {
	assertKinds(t, Scan("&&"), []TokenKind{TokAnd, TokEOF})
	assertKinds(t, Scan("||"), []TokenKind{TokOr, TokEOF})
	assertKinds(t, Scan("&"), []TokenKind{TokIllegal})
}

func TestScanInSymbols(t *testing.T) {
	assertKinds(t, Scan("#"), []TokenKind{TokIn, TokEOF})
	assertKinds(t, Scan("@"), []TokenKind{TokIn, TokEOF})
}

func TestScanNumbers(t *testing.T) {
	toks := Scan("42")
	if toks[0].Kind != TokNumber || toks[0].Text != "42" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = Scan("-3.5")
	if toks[0].Kind != TokNumber || toks[0].Text != "-3.5" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = Scan("12abc")
	if toks[0].Kind != TokBadNumber {
		t.Fatalf("got %+v, want TokBadNumber", toks[0])
	}
}

func TestScanText(t *testing.T) {
	toks := Scan(`"hello world"`)
	if toks[0].Kind != TokText || toks[0].Text != "hello world" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = Scan(`"esc\"aped"`)
	if toks[0].Kind != TokText || toks[0].Text != `esc"aped` {
		t.Fatalf("got %+v", toks[0])
	}
	toks = Scan(`"unterminated`)
	if toks[0].Kind != TokUnclosedText {
		t.Fatalf("got %+v, want TokUnclosedText", toks[0])
	}
}

func TestScanBracketsAndComma(t *testing.T) {
	assertKinds(t, Scan("[1,2]"), []TokenKind{
		TokLtBracket, TokNumber, TokComma, TokNumber, TokRtBracket, TokEOF,
	})
}

func TestScanHaltsOnFirstError(t *testing.T) {
	toks := Scan("field = [1,2 abc")
	last := toks[len(toks)-1]
	if last.Kind != TokBadRelation {
		t.Fatalf("expected scan to halt at bad relation, got %+v", last)
	}
}
