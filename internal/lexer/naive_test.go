package lexer

import (
	"testing"

	"armsim/internal/token"
)

func kinds(seq token.Sequence) []token.Kind {
	ks := make([]token.Kind, len(seq))
	for i, t := range seq {
		ks[i] = t.Kind
	}
	return ks
}

func TestNaiveTokenizer_SplitsMnemonicAndCondSuffix(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, warns := tok.Tokenize([]byte("moveq r0, r1"))
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}

	wantClass := []token.Kind{classMnemonic, classCondSuffix, token.KindRegister, token.KindPunct, token.KindRegister}
	got := kinds(seq)
	if len(got) != len(wantClass) {
		t.Fatalf("token count mismatch: got %v, want classes %v", got, wantClass)
	}
	for i := range wantClass {
		if wantClass[i] == token.KindRegister {
			if !isRegister(seq[i].Value) || got[i] != registerKind(seq[i].Value) {
				t.Errorf("token %d: got kind %v, want register kind %v", i, got[i], registerKind(seq[i].Value))
			}
			continue
		}
		if wantClass[i] == token.KindPunct {
			if got[i] != wantClass[i] {
				t.Errorf("token %d: got kind %v, want %v", i, got[i], wantClass[i])
			}
			continue
		}
		if literalClassOf(got[i]) != wantClass[i] {
			t.Errorf("token %d: got kind %v, want class %v", i, got[i], wantClass[i])
		}
	}
}

func TestNaiveTokenizer_DifferentMnemonicsGetDistinctKinds(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, _ := tok.Tokenize([]byte("add r0, r1\nsub r0, r1"))

	var addKind, subKind token.Kind
	for _, tk := range seq {
		if tk.Value == "add" {
			addKind = tk.Kind
		}
		if tk.Value == "sub" {
			subKind = tk.Kind
		}
	}
	if addKind == subKind {
		t.Fatalf("expected add and sub to have distinct kinds, both got %v", addKind)
	}
}

func TestNaiveTokenizer_SameMnemonicAcrossFilesGetsSameKind(t *testing.T) {
	tokA := NewNaiveTokenizer()
	tokB := NewNaiveTokenizer()
	seqA, _ := tokA.Tokenize([]byte("add r0, r1"))
	seqB, _ := tokB.Tokenize([]byte("sub r2, r3\nadd r4, r5"))

	var kindA, kindB token.Kind
	for _, tk := range seqA {
		if tk.Value == "add" {
			kindA = tk.Kind
		}
	}
	for _, tk := range seqB {
		if tk.Value == "add" {
			kindB = tk.Kind
		}
	}
	if kindA != kindB {
		t.Fatalf("expected the same mnemonic text to hash to the same kind regardless of scan order: %v vs %v", kindA, kindB)
	}
}

func TestNaiveTokenizer_DistinctRegistersGetDistinctKinds(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, _ := tok.Tokenize([]byte("mov r0, r1"))

	var r0Kind, r1Kind token.Kind
	for _, tk := range seq {
		if tk.Value == "r0" {
			r0Kind = tk.Kind
		}
		if tk.Value == "r1" {
			r1Kind = tk.Kind
		}
	}
	if r0Kind == r1Kind {
		t.Fatalf("expected r0 and r1 to have distinct kinds, both got %v", r0Kind)
	}
}

func TestNaiveTokenizer_RepeatedRegisterSameKind(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, _ := tok.Tokenize([]byte("mov r3, r3"))
	if seq[1].Kind != seq[3].Kind {
		t.Fatalf("expected repeated r3 occurrences to share a kind: %v vs %v", seq[1].Kind, seq[3].Kind)
	}
}

func TestNaiveTokenizer_IdentifiersShareOneKind(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, _ := tok.Tokenize([]byte("bl my_func\nbl other_func"))

	var kindsFound []token.Kind
	for _, tk := range seq {
		if tk.Value == "my_func" || tk.Value == "other_func" {
			kindsFound = append(kindsFound, tk.Kind)
		}
	}
	if len(kindsFound) != 2 {
		t.Fatalf("expected to find both identifiers, got %v", kindsFound)
	}
	if kindsFound[0] != kindsFound[1] {
		t.Fatalf("expected distinct identifiers to share kind %v, got %v vs %v", token.KindIdentifier, kindsFound[0], kindsFound[1])
	}
	if kindsFound[0] != token.KindIdentifier {
		t.Fatalf("expected KindIdentifier, got %v", kindsFound[0])
	}
}

func TestNaiveTokenizer_LabelDefinition(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, _ := tok.Tokenize([]byte("loop:\n  b loop"))
	if literalClassOf(seq[0].Kind) != classLabel {
		t.Fatalf("expected label definition to tokenize within the label class, got %v", seq[0].Kind)
	}
}

func TestNaiveTokenizer_DifferentLabelsGetDistinctKinds(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, _ := tok.Tokenize([]byte("loop:\ndone:"))
	// seq: 0=loop 1=: 2=done 3=:
	if seq[0].Kind == seq[2].Kind {
		t.Fatalf("expected different label texts to get distinct kinds, both got %v", seq[0].Kind)
	}
}

func TestNaiveTokenizer_UnknownByteWarns(t *testing.T) {
	tok := NewNaiveTokenizer()
	_, warns := tok.Tokenize([]byte("mov r0, `"))
	if len(warns) == 0 {
		t.Fatal("expected a warning for the unrecognized byte")
	}
}

func TestNaiveTokenizer_CommentsAndStringsSkipped(t *testing.T) {
	tok := NewNaiveTokenizer()
	seq, warns := tok.Tokenize([]byte("@ a comment\nmov r0, r1 ; trailing comment\n.ascii \"hi\""))
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	wantClass := []token.Kind{classMnemonic, token.KindRegister, token.KindPunct, token.KindRegister, classDirective, classString}
	got := kinds(seq)
	if len(got) != len(wantClass) {
		t.Fatalf("got %v, want class sequence %v", got, wantClass)
	}
	for i, want := range wantClass {
		if want == token.KindRegister {
			if !isRegister(seq[i].Value) || got[i] != registerKind(seq[i].Value) {
				t.Errorf("token %d: got kind %v, want register kind %v", i, got[i], registerKind(seq[i].Value))
			}
			continue
		}
		if want == token.KindPunct {
			if got[i] != want {
				t.Errorf("token %d: got kind %v, want %v", i, got[i], want)
			}
			continue
		}
		if literalClassOf(got[i]) != want {
			t.Errorf("token %d: got kind %v, want class %v", i, got[i], want)
		}
	}
}
