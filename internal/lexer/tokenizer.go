package lexer

import "armsim/internal/token"

// Warning describes a tokenization anomaly found within a single file.
// The caller (internal/project) attaches the file path to produce a
// report.Warning of kind Tokenization (spec.md §4.1, §6).
type Warning struct {
	Message string
}

// Tokenizer converts one file's raw bytes into an ordered token stream.
// Two variants exist (NaiveTokenizer, RelativeTokenizer); the matcher is
// agnostic to which produced a given project's streams so long as all
// projects in one run used the same one (spec.md §9 "Polymorphism over
// tokenizers").
type Tokenizer interface {
	Tokenize(src []byte) (token.Sequence, []Warning)
	Name() string
}

// Registry maps a configured tokenizer name to its implementation,
// mirroring the teacher's TokenizerRegistry (internal/service/tokenizer.go)
// minus the file-extension dispatch, which this domain doesn't need:
// every file here is ARMv7 assembly.
type Registry struct {
	tokenizers map[string]Tokenizer
}

// NewRegistry builds a registry with both stock tokenizer variants
// registered under their config names ("naive", "relative").
func NewRegistry(maxTokenOffset *int) *Registry {
	r := &Registry{tokenizers: make(map[string]Tokenizer, 2)}
	r.Register(NewNaiveTokenizer())
	r.Register(NewRelativeTokenizer(maxTokenOffset))
	return r
}

// Register adds or replaces a tokenizer under its own Name().
func (r *Registry) Register(t Tokenizer) {
	r.tokenizers[t.Name()] = t
}

// Get returns the tokenizer registered under name.
func (r *Registry) Get(name string) (Tokenizer, bool) {
	t, ok := r.tokenizers[name]
	return t, ok
}
