// Package engine wires the tokenizer, fingerprinter, project aggregator,
// starter-code filter and matcher into the single entry point spec.md
// §2 describes, in the sequence spec.md §5 fixes as its barrier points:
// every project is tokenized and fingerprinted before the starter-code
// filter runs, and the filter runs before matching begins.
package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"armsim/internal/fingerprint"
	"armsim/internal/lexer"
	"armsim/internal/matcher"
	"armsim/internal/project"
	"armsim/internal/report"
	"armsim/internal/starter"
)

// Config bundles the tunables spec.md §6 exposes as analysis
// parameters.
type Config struct {
	Tokenizer         string // "naive" or "relative"
	MaxTokenOffset    *int   // nil disables clamping for the relative tokenizer
	NoiseThreshold    int    // k
	GuaranteeThreshold int   // t
	MaxPostingList    int    // 0 disables the guard
	BloomFalsePositive float64
}

// Input is one named collection of files to tokenize and fingerprint —
// either a student project or a starter-code skeleton.
type Input struct {
	Name  string
	Files []project.File
}

// Analyze runs the full pipeline over projects (matched pairwise
// against each other) and starterCode (subtracted from every project's
// fingerprints before matching). It never returns a fatal error for
// per-file or per-project anomalies — those become report.Warning
// entries — reserving the error return for a cancelled context or an
// unknown configured tokenizer name (spec.md §7).
func Analyze(ctx context.Context, projects []Input, starterCode []Input, cfg Config, logger *zap.Logger) (*report.Report, error) {
	registry := lexer.NewRegistry(cfg.MaxTokenOffset)
	tok, ok := registry.Get(cfg.Tokenizer)
	if !ok {
		return nil, fmt.Errorf("unknown tokenizer %q", cfg.Tokenizer)
	}

	fpParams := fingerprint.Params{Noise: cfg.NoiseThreshold, Guarantee: cfg.GuaranteeThreshold}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled before start: %w", err)
	}

	starterBuilt, starterWarnings := buildAll(starterCode, tok, fpParams, logger)
	starterSet := buildStarterSet(starterBuilt, cfg.BloomFalsePositive)

	built, warnings := buildAll(projects, tok, fpParams, logger)
	warnings = append(warnings, starterWarnings...)

	matchInputs := make([]matcher.ProjectFingerprints, len(built))
	for i, b := range built {
		filtered := starterSet.Filter(b.fingerprints)
		matchInputs[i] = matcher.ProjectFingerprints{
			Name:         b.name,
			Fingerprints: filtered,
			Hashes:       b.hashes,
			Origins:      b.origins,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled before matching: %w", err)
	}

	pairs, matchWarnings := matcher.Run(matchInputs, matcher.Options{
		Noise:          cfg.NoiseThreshold,
		MaxPostingList: cfg.MaxPostingList,
	}, logger)
	warnings = append(warnings, matchWarnings...)

	report.SortWarnings(warnings)
	return &report.Report{Pairs: pairs, Warnings: warnings}, nil
}

type builtProject struct {
	name         string
	fingerprints []fingerprint.Fingerprint
	hashes       []uint64
	origins      []project.Origin
}

// buildAll tokenizes and fingerprints every input concurrently,
// preserving deterministic output order by collecting into
// input-indexed slots rather than append-as-completed (spec.md §5
// "Ordering guarantees").
func buildAll(inputs []Input, tok lexer.Tokenizer, params fingerprint.Params, logger *zap.Logger) ([]builtProject, []report.Warning) {
	results := make([]builtProject, len(inputs))
	warningSlots := make([][]report.Warning, len(inputs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxWorkers(len(inputs)))
	for i, in := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, in Input) {
			defer wg.Done()
			defer func() { <-sem }()

			p, warns := project.Build(in.Name, in.Files, tok, logger)
			fpResult := fingerprint.Compute(p.Kinds, params)
			if fpResult.TooShort {
				warns = append(warns, report.Warning{
					Kind:    report.WarnFingerprint,
					Project: in.Name,
					Message: "project has fewer tokens than the noise threshold; too short to fingerprint",
				})
			}
			for j := range warns {
				if warns[j].Project == "" {
					warns[j].Project = in.Name
				}
			}

			results[i] = builtProject{name: in.Name, fingerprints: fpResult.Fingerprints, hashes: fpResult.Hashes, origins: p.Origins}
			warningSlots[i] = warns
		}(i, in)
	}
	wg.Wait()

	var warnings []report.Warning
	for _, w := range warningSlots {
		warnings = append(warnings, w...)
	}
	return results, warnings
}

func buildStarterSet(starterBuilt []builtProject, falsePositiveRate float64) *starter.Set {
	all := make([][]fingerprint.Fingerprint, len(starterBuilt))
	for i, b := range starterBuilt {
		all[i] = b.fingerprints
	}
	if falsePositiveRate <= 0 {
		falsePositiveRate = 0.01
	}
	return starter.Build(all, falsePositiveRate)
}

func maxWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}
