package lexer

import "strings"

// registerNames is the closed set of ARMv7 register lexemes recognized
// by spec.md §4.1: r0-r15 plus the conventional synonyms.
var registerNames = buildRegisterSet()

func buildRegisterSet() map[string]bool {
	set := make(map[string]bool, 16+6)
	for i := 0; i <= 15; i++ {
		set["r"+itoa(i)] = true
	}
	for _, syn := range []string{"sp", "lr", "pc", "fp", "ip", "sl"} {
		set[syn] = true
	}
	return set
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := [2]byte{}
	n := 0
	for i > 0 {
		digits[n] = byte('0' + i%10)
		i /= 10
		n++
	}
	out := make([]byte, n)
	for j := 0; j < n; j++ {
		out[j] = digits[n-1-j]
	}
	return string(out)
}

func isRegister(word string) bool {
	return registerNames[strings.ToLower(word)]
}

// conditionSuffixes is the closed set of ARM condition codes that can be
// glued onto a base mnemonic (spec.md §4.1 "condition suffixes").
var conditionSuffixes = []string{
	"eq", "ne", "cs", "hs", "cc", "lo", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "al",
}

// baseMnemonics is a representative closed set of ARMv7 instruction
// mnemonics. It need not be exhaustive for correctness of the matching
// engine (an unrecognized mnemonic-shaped word simply becomes an
// Identifier, which still participates in matching consistently), but it
// covers the instructions that actually carry condition suffixes and
// flag-update "S" suffixes in student submissions.
var baseMnemonics = buildMnemonicSet()

func buildMnemonicSet() map[string]bool {
	names := []string{
		"mov", "mvn", "add", "sub", "rsb", "adc", "sbc", "rsc",
		"mul", "mla", "mls", "umull", "umlal", "smull", "smlal",
		"and", "orr", "eor", "bic",
		"cmp", "cmn", "tst", "teq",
		"ldr", "str", "ldm", "stm", "push", "pop",
		"ldrb", "strb", "ldrh", "strh", "ldrsb", "ldrsh",
		"b", "bl", "bx", "blx",
		"lsl", "lsr", "asr", "ror", "rrx",
		"nop", "svc", "swi",
		"clz", "rbit", "rev", "rev16", "revsh",
		"sxtb", "sxth", "uxtb", "uxth",
		"bfc", "bfi", "sbfx", "ubfx",
		"wfe", "wfi", "sev", "yield", "dmb", "dsb", "isb",
		"vmov", "vadd", "vsub", "vmul", "vdiv", "vldr", "vstr",
		"vcmp", "vcvt", "vneg", "vabs", "vsqrt",
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// splitMnemonic attempts to decompose word into a base mnemonic (with an
// optional glued flag-update "s", e.g. "adds") plus an optional
// immediately-following condition suffix (e.g. "addseq" -> mnemonic
// "adds", condition "eq"). mnemonicLen is the byte length of the
// mnemonic portion; hasCond reports whether the remainder is a
// condition suffix. ok is false if word does not decompose onto a known
// mnemonic at all, in which case the caller falls back to Identifier.
func splitMnemonic(word string) (mnemonicLen int, hasCond bool, ok bool) {
	lower := strings.ToLower(word)

	if baseMnemonics[lower] {
		return len(word), false, true
	}

	if len(lower) > 2 {
		rest := lower[:len(lower)-2]
		cond := lower[len(lower)-2:]
		if isConditionSuffix(cond) {
			if baseMnemonics[rest] {
				return len(rest), true, true
			}
			if strings.HasSuffix(rest, "s") && baseMnemonics[rest[:len(rest)-1]] {
				return len(rest), true, true
			}
		}
	}

	if strings.HasSuffix(lower, "s") && baseMnemonics[lower[:len(lower)-1]] {
		return len(word), false, true
	}

	return 0, false, false
}

func isConditionSuffix(s string) bool {
	for _, c := range conditionSuffixes {
		if c == s {
			return true
		}
	}
	return false
}
