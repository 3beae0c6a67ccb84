// Package mcptool exposes the analysis engine as a single MCP tool,
// grounded on the teacher's pkg/mcp/server.go (mcp.NewServer,
// mcp.AddTool, mcp.NewStreamableHTTPHandler), stripped of everything
// that was call-graph-specific.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"armsim/internal/config"
	"armsim/internal/engine"
	"armsim/internal/project"
	"armsim/internal/util"
)

// Server wraps the mcp.Server exposing compareProjects.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	server  *mcp.Server
	handler *mcp.StreamableHTTPHandler
}

// FileParam is one file of a compareProjects argument.
type FileParam struct {
	Path    string `json:"path" jsonschema:"path of the file relative to its project"`
	Content string `json:"content" jsonschema:"the file's raw text content"`
}

// ProjectParam is one named project of a compareProjects argument.
type ProjectParam struct {
	Name  string      `json:"name" jsonschema:"project name"`
	Files []FileParam `json:"files" jsonschema:"the project's files"`
}

// CompareProjectsParams is the input schema of the compareProjects
// tool.
type CompareProjectsParams struct {
	Projects    []ProjectParam `json:"projects" jsonschema:"projects to compare pairwise"`
	StarterCode []ProjectParam `json:"starter_code,omitempty" jsonschema:"starter code excluded from matches"`
	Tokenizer   string         `json:"tokenizer,omitempty" jsonschema:"naive or relative, overrides the server default"`
}

// NewServer builds the MCP server and registers compareProjects.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "armsim",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "compareProjects",
		Description: "Tokenize, fingerprint and pairwise-match a set of ARMv7 assembly projects, returning matched regions and a similarity score for every pair that shares code.",
	}, s.handleCompareProjects)

	s.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	s.server = mcpServer
	return s
}

func (s *Server) handleCompareProjects(ctx context.Context, req *mcp.CallToolRequest, args CompareProjectsParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("handling compareProjects request",
		zap.Int("project_count", len(args.Projects)),
		zap.Int("starter_count", len(args.StarterCode)))

	tokenizer := s.cfg.Matching.Tokenizer
	if args.Tokenizer != "" {
		tokenizer = args.Tokenizer
	}

	rep, err := engine.Analyze(ctx, toInputs(args.Projects), toInputs(args.StarterCode), engine.Config{
		Tokenizer:          tokenizer,
		MaxTokenOffset:     s.cfg.Matching.MaxTokenOffset,
		NoiseThreshold:     s.cfg.Matching.NoiseThreshold,
		GuaranteeThreshold: s.cfg.Matching.GuaranteeThreshold,
		MaxPostingList:     s.cfg.Matching.MaxPostingList,
		BloomFalsePositive: s.cfg.Matching.BloomFalsePositive,
	}, s.logger)
	if err != nil {
		s.logger.Error("compareProjects analysis failed", zap.Error(err))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("analysis failed: %v", err)}},
		}, nil, nil
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("failed to encode report: %v", err)}},
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, rep, nil
}

func toInputs(params []ProjectParam) []engine.Input {
	inputs := make([]engine.Input, len(params))
	for i, p := range params {
		files := make([]project.File, len(p.Files))
		for j, f := range p.Files {
			files[j] = project.File{Path: util.ExtractPathFromURI(f.Path), Bytes: []byte(f.Content)}
		}
		inputs[i] = engine.Input{Name: p.Name, Files: files}
	}
	return inputs
}

// Serve builds the MCP server from cfg.Mcp and blocks serving it over
// streamable HTTP, the teacher's transport choice in pkg/mcp/server.go.
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	addr := cfg.Mcp.Addr
	if addr == "" {
		addr = ":8081"
	}
	s := NewServer(cfg, logger)

	logger.Info("starting mcp server", zap.String("addr", addr))

	srv := &http.Server{Addr: addr, Handler: s.handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("mcp server exited: %w", err)
	}
	return nil
}
