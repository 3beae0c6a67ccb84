package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"armsim/internal/config"
	"armsim/internal/engine"
	"armsim/internal/httpapi"
	"armsim/internal/mcptool"
	"armsim/internal/project"
	"armsim/internal/util"
)

func main() {
	var (
		appConfigPath    = flag.String("app", "app.yaml", "Path to app configuration file")
		sourceConfigPath = flag.String("source", "source.yaml", "Path to source configuration file")
		root             = flag.String("root", "", "Directory containing one subdirectory per project")
		starterDir       = flag.String("starter", "", "Directory containing starter-code files, excluded from matches")
		output           = flag.String("output", "", "Write the JSON report here instead of stdout")
		tokenizer        = flag.String("tokenizer", "", "Override matching.tokenizer (naive|relative)")
		noise            = flag.Int("noise", 0, "Override matching.noise_threshold (0 keeps the configured value)")
		guarantee        = flag.Int("guarantee", 0, "Override matching.guarantee_threshold (0 keeps the configured value)")
		maxOffset        = flag.Int("max-offset", -1, "Override matching.max_token_offset for the relative tokenizer (-1 keeps the configured value)")
		serve            = flag.Bool("serve", false, "Run the HTTP API instead of a one-shot analysis")
		mcpServe         = flag.Bool("mcp", false, "Run the MCP tool server instead of a one-shot analysis")
	)
	flag.Parse()

	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.InfoLevel)
	cfgZap.OutputPaths = []string{"stdout"}
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*appConfigPath, *sourceConfigPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if *tokenizer != "" {
		cfg.Matching.Tokenizer = *tokenizer
	}
	if *noise > 0 {
		cfg.Matching.NoiseThreshold = *noise
	}
	if *guarantee > 0 {
		cfg.Matching.GuaranteeThreshold = *guarantee
	}
	if *maxOffset >= 0 {
		cfg.Matching.MaxTokenOffset = util.Ptr(*maxOffset)
	}

	logger.Info("configuration loaded", zap.Any("matching", cfg.Matching))

	if *serve {
		httpapi.Serve(cfg, logger)
		return
	}
	if *mcpServe {
		if err := mcptool.Serve(context.Background(), cfg, logger); err != nil {
			logger.Fatal("mcp server exited with error", zap.Error(err))
		}
		return
	}

	if *root == "" {
		logger.Fatal("-root is required for a one-shot analysis (or pass -serve / -mcp)")
	}

	projects, err := loadProjectDirs(*root)
	if err != nil {
		logger.Fatal("failed to load projects", zap.Error(err))
	}

	var starterCode []engine.Input
	if *starterDir != "" {
		starterFiles, err := loadFiles(*starterDir)
		if err != nil {
			logger.Fatal("failed to load starter code", zap.Error(err))
		}
		starterCode = []engine.Input{{Name: "starter", Files: starterFiles}}
	}

	rep, err := engine.Analyze(context.Background(), projects, starterCode, engine.Config{
		Tokenizer:          cfg.Matching.Tokenizer,
		MaxTokenOffset:     cfg.Matching.MaxTokenOffset,
		NoiseThreshold:     cfg.Matching.NoiseThreshold,
		GuaranteeThreshold: cfg.Matching.GuaranteeThreshold,
		MaxPostingList:     cfg.Matching.MaxPostingList,
		BloomFalsePositive: cfg.Matching.BloomFalsePositive,
	}, logger)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		logger.Fatal("failed to marshal report", zap.Error(err))
	}

	if *output == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		logger.Fatal("failed to write report", zap.Error(err), zap.String("path", *output))
	}
	logger.Info("report written", zap.String("path", *output), zap.Int("pairs", len(rep.Pairs)))
}

// loadProjectDirs treats each immediate subdirectory of root as one
// project, recursively collecting every regular file beneath it as one
// of that project's files. File paths are stored relative to the
// project's own subdirectory (util.ToRelativePath), matching the
// teacher's path-normalization helper.
func loadProjectDirs(root string) ([]engine.Input, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var inputs []engine.Input
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		projectDir := filepath.Join(root, e.Name())
		files, err := loadFiles(projectDir)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, engine.Input{Name: e.Name(), Files: files})
	}
	return inputs, nil
}

func loadFiles(projectDir string) ([]project.File, error) {
	var files []project.File
	err := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, project.File{
			Path:  util.ToRelativePath(projectDir, path),
			Bytes: data,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", projectDir, err)
	}
	return files, nil
}
