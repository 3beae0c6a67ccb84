package lexer

import (
	"fmt"
	"strings"

	"armsim/internal/token"
)

// registerKindBase offsets the naive tokenizer's per-register kind space
// well clear of the base Kind enumeration in internal/token, so that
// "r5" and "r6" are distinguishable kinds while still being drawn from a
// small closed set (spec.md §4.1: "all register r5 tokens share a
// kind"). Identifiers, by contrast, are folded into one shared kind —
// see DESIGN.md's Open Question decision.
const registerKindBase token.Kind = 0x1000

var registerKindIndex = buildRegisterKindIndex()

func buildRegisterKindIndex() map[string]token.Kind {
	idx := make(map[string]token.Kind, 22)
	var i token.Kind
	for n := 0; n <= 15; n++ {
		idx[fmt.Sprintf("r%d", n)] = i
		i++
	}
	for _, syn := range []string{"sp", "lr", "pc", "fp", "ip", "sl"} {
		idx[syn] = i
		i++
	}
	return idx
}

func registerKind(name string) token.Kind {
	return registerKindBase + registerKindIndex[strings.ToLower(name)]
}

// NaiveTokenizer maps every recognized lexeme onto a kind that directly
// reflects its literal text, with no renaming-invariance at all: two
// tokens share a kind only if they are the exact same concrete lexeme
// (mov r5 and mov r6 are distinguishable registers; an "add" mnemonic
// and a "sub" mnemonic are distinguishable mnemonics). The only
// exception is identifiers, which collapse onto one shared kind
// regardless of spelling (spec.md §4.1; see DESIGN.md's Open Question
// decision on this split).
type NaiveTokenizer struct{}

// NewNaiveTokenizer constructs the naive tokenizer variant.
func NewNaiveTokenizer() *NaiveTokenizer { return &NaiveTokenizer{} }

func (t *NaiveTokenizer) Name() string { return "naive" }

func (t *NaiveTokenizer) Tokenize(src []byte) (token.Sequence, []Warning) {
	s := newScanner(src)
	var seq token.Sequence
	var warnings []Warning

	for {
		lx, ok := s.next()
		if !ok {
			break
		}
		if lx.kind == token.KindUnknown {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("unrecognized byte range at offset %d", lx.span.Start)})
		}

		tok := token.Token{Span: lx.span, Value: lx.value}
		switch lx.kind {
		case token.KindRegister:
			tok.Kind = registerKind(lx.value)
		case token.KindMnemonic:
			tok.Kind = literalKind(classMnemonic, lx.value)
		case token.KindDirective:
			tok.Kind = literalKind(classDirective, lx.value)
		case token.KindCondSuffix:
			tok.Kind = literalKind(classCondSuffix, lx.value)
		case token.KindNumber:
			tok.Kind = literalKind(classNumber, lx.value)
		case token.KindString:
			tok.Kind = literalKind(classString, lx.value)
		case token.KindLabel:
			tok.Kind = literalKind(classLabel, lx.value)
		default:
			tok.Kind = lx.kind
		}
		seq = append(seq, tok)
	}
	return seq, warnings
}
