package lexer

import (
	"fmt"

	"armsim/internal/token"
)

// sentinelDistance stands in for "this concrete lexeme has not appeared
// before in this file" (spec.md §4.1). It is large enough that, once a
// max_token_offset is configured, it always clamps to token.KindMax
// alongside every other never-seen or far-away occurrence; left
// unclamped (no max_token_offset configured) it still resolves to one
// consistent, distinct kind for "first occurrence" across the file.
const sentinelDistance = 1 << 30

// RelativeTokenizer replaces register and identifier/label lexemes with
// a back-reference distance: how many tokens have elapsed in this
// file's own token stream since that exact concrete lexeme last
// appeared, clamped to max_token_offset when configured. All other
// lexical classes tokenize identically to NaiveTokenizer (spec.md
// §4.1). This makes uniform renames — r4 -> r7, loop -> my_loop —
// produce an identical token stream to the unrenamed original.
type RelativeTokenizer struct {
	maxOffset *int
}

// NewRelativeTokenizer constructs the relative tokenizer variant.
// maxOffset is nil when max_token_offset is unconfigured (no clamping).
func NewRelativeTokenizer(maxOffset *int) *RelativeTokenizer {
	return &RelativeTokenizer{maxOffset: maxOffset}
}

func (t *RelativeTokenizer) Name() string { return "relative" }

func (t *RelativeTokenizer) Tokenize(src []byte) (token.Sequence, []Warning) {
	s := newScanner(src)
	var seq token.Sequence
	var warnings []Warning

	registerLastSeen := make(map[string]int)
	symbolLastSeen := make(map[string]int) // identifiers and labels share one renaming namespace

	index := 0
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
			tok.Kind = t.distanceKind(registerLastSeen, lx.value, index)
		case token.KindIdentifier, token.KindLabel:
			tok.Kind = t.distanceKind(symbolLastSeen, lx.value, index)
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
		default:
			tok.Kind = lx.kind
		}
		seq = append(seq, tok)
		index++
	}
	return seq, warnings
}

// distanceKind looks up how many tokens ago value last appeared
// (according to lastSeen, keyed by concrete lexeme text), records the
// current position for next time, and returns the corresponding
// back-reference Kind.
func (t *RelativeTokenizer) distanceKind(lastSeen map[string]int, value string, index int) token.Kind {
	distance := sentinelDistance
	if prev, ok := lastSeen[value]; ok {
		distance = index - prev
	}
	lastSeen[value] = index

	if t.maxOffset != nil && distance >= *t.maxOffset {
		return token.KindMax
	}
	return token.KindMax + 1 + token.Kind(distance)
}
