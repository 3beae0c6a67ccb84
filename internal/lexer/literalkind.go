package lexer

import (
	"hash/fnv"
	"strings"

	"armsim/internal/token"
)

// literalClassShift reserves the top 8 bits of a Kind to name which
// lexical class a literal-keyed token belongs to; the low 24 bits carry
// a hash of the literal lexeme text, so concrete spellings distinguish
// within their class instead of collapsing onto one shared value.
// spec.md §4.1's own example keys register kinds on literal text ("all
// register r5 tokens share a kind, but r5 and r6 differ"); the same
// rule applies to every lexical class except identifiers, which are
// left to implementer discretion (DESIGN.md's Open Question decision).
const literalClassShift = 24
const literalHashMask = token.Kind(1)<<literalClassShift - 1

const (
	classMnemonic token.Kind = (iota + 2) << literalClassShift
	classDirective
	classCondSuffix
	classNumber
	classString
	classLabel
)

// literalKind folds value's lowercased text into a stable kind within
// class. The mapping depends only on the text, never on scan order, so
// "add" in one file and "add" in another always land on the same kind
// — required for cross-project matching to see the same instruction as
// the same token regardless of which file introduced it first.
func literalKind(class token.Kind, value string) token.Kind {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(value)))
	return class | (token.Kind(h.Sum32()) & literalHashMask)
}

// literalClassOf strips a literal-keyed kind's text hash, leaving just
// the lexical class it belongs to.
func literalClassOf(k token.Kind) token.Kind {
	return k &^ literalHashMask
}
