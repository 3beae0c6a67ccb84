// Package project aggregates a project's files into the single logical
// token stream the fingerprinter and matcher operate on, preserving the
// total, injective mapping from logical token index back to
// (file, byte span) that spec.md §3 requires.
package project

import (
	"runtime"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"armsim/internal/lexer"
	"armsim/internal/report"
	"armsim/internal/token"
)

// File is one file handed to the engine: a path relative to the
// analysis root, plus its raw bytes. Ownership per spec.md §3: the
// engine retains the bytes only long enough to tokenize them.
type File struct {
	Path  string
	Bytes []byte
}

// Origin records which file and byte span a logical token index came
// from.
type Origin struct {
	Path string
	Span token.Span
}

// Project is a named collection of files reduced to one logical
// token-kind stream plus the index -> Origin map needed to translate
// matches back into file/byte coordinates (spec.md §3, §4.4
// "Back-translation").
type Project struct {
	Name    string
	Kinds   []token.Kind
	Origins []Origin // len(Origins) == len(Kinds)
}

// Build tokenizes every file of a project with tok, concatenating their
// token streams in path-sorted order (spec.md §3 "deterministic
// order"), and returns the resulting Project plus any warnings raised
// along the way. Per-file tokenization runs across a bounded worker
// pool; results are collected into path-sorted slots before
// concatenation so the final stream never depends on goroutine
// completion order (spec.md §5 "Ordering guarantees").
func Build(name string, files []File, tok lexer.Tokenizer, logger *zap.Logger) (*Project, []report.Warning) {
	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	type fileResult struct {
		kinds    []token.Kind
		origins  []Origin
		warnings []report.Warning
		err      error
	}
	results := make([]fileResult, len(sorted))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(sorted) {
		workers = len(sorted)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f := sorted[i]
				if len(f.Path) == 0 {
					results[i].err = errEmptyPath
					continue
				}
				seq, warns := tok.Tokenize(f.Bytes)
				kinds := make([]token.Kind, len(seq))
				origins := make([]Origin, len(seq))
				for j, t := range seq {
					kinds[j] = t.Kind
					origins[j] = Origin{Path: f.Path, Span: t.Span}
				}
				fileWarnings := make([]report.Warning, len(warns))
				for j, w := range warns {
					fileWarnings[j] = report.Warning{
						Kind:    report.WarnTokenization,
						Message: w.Message,
						File:    f.Path,
					}
				}
				results[i] = fileResult{kinds: kinds, origins: origins, warnings: fileWarnings}
			}
		}()
	}
	for i := range sorted {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	p := &Project{Name: name}
	var warnings []report.Warning
	var errs error
	seen := make(map[string]bool, len(sorted))
	for i, f := range sorted {
		if seen[f.Path] {
			errs = multierr.Append(errs, duplicatePathError(f.Path))
			continue
		}
		seen[f.Path] = true

		r := results[i]
		if r.err != nil {
			errs = multierr.Append(errs, r.err)
			continue
		}
		p.Kinds = append(p.Kinds, r.kinds...)
		p.Origins = append(p.Origins, r.origins...)
		warnings = append(warnings, r.warnings...)
	}

	for _, err := range multierr.Errors(errs) {
		logger.Warn("project file error", zap.String("project", name), zap.Error(err))
		warnings = append(warnings, report.Warning{Kind: report.WarnInput, Message: err.Error()})
	}

	return p, warnings
}
