package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"armsim/internal/config"
	"armsim/internal/engine"
	"armsim/internal/project"
	"armsim/internal/report"
	"armsim/internal/util"
)

// AnalyzeController handles POST /api/v1/analyze.
type AnalyzeController struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalyzeController builds a controller bound to cfg's matching
// defaults; a request may still override the tokenizer per-call.
func NewAnalyzeController(cfg *config.Config, logger *zap.Logger) *AnalyzeController {
	return &AnalyzeController{cfg: cfg, logger: logger}
}

// FileInput is one file's path and text content, inlined in the
// request body rather than uploaded, since ARM assembly sources are
// small compared to typical HTTP body limits.
type FileInput struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ProjectInput is one named project (or starter-code bundle) submitted
// for analysis.
type ProjectInput struct {
	Name  string      `json:"name" binding:"required"`
	Files []FileInput `json:"files" binding:"required"`
}

// AnalyzeRequest is the POST /api/v1/analyze body.
type AnalyzeRequest struct {
	Projects    []ProjectInput `json:"projects" binding:"required"`
	StarterCode []ProjectInput `json:"starter_code"`
	Tokenizer   string         `json:"tokenizer"`
}

// AnalyzeResponse wraps the computed report with the request ID the
// middleware stamped, and the resolved source locator of every project
// submitted, for client-side correlation.
type AnalyzeResponse struct {
	RequestID string         `json:"request_id"`
	Sources   []string       `json:"sources"`
	Report    *report.Report `json:"report"`
}

// Analyze binds an AnalyzeRequest, runs the engine, and returns the
// resulting report.
func (ctrl *AnalyzeController) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.logger.Error("invalid analyze request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request payload",
			"details": err.Error(),
		})
		return
	}

	tokenizer := ctrl.cfg.Matching.Tokenizer
	if req.Tokenizer != "" {
		tokenizer = req.Tokenizer
	}

	projects := toEngineInputs(req.Projects)
	starterCode := toEngineInputs(req.StarterCode)

	requestID, _ := c.Get(requestIDKey)
	ctrl.logger.Info("analyzing projects",
		zap.Any("request_id", requestID),
		zap.Int("project_count", len(projects)),
		zap.Int("starter_count", len(starterCode)),
		zap.String("tokenizer", tokenizer),
	)

	rep, err := engine.Analyze(requestContext(c), projects, starterCode, engine.Config{
		Tokenizer:          tokenizer,
		MaxTokenOffset:     ctrl.cfg.Matching.MaxTokenOffset,
		NoiseThreshold:     ctrl.cfg.Matching.NoiseThreshold,
		GuaranteeThreshold: ctrl.cfg.Matching.GuaranteeThreshold,
		MaxPostingList:     ctrl.cfg.Matching.MaxPostingList,
		BloomFalsePositive: ctrl.cfg.Matching.BloomFalsePositive,
	}, ctrl.logger)
	if err != nil {
		ctrl.logger.Error("analysis failed", zap.Any("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "analysis failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		RequestID: stringOrEmpty(requestID),
		Sources:   sourceURIs(req.Projects),
		Report:    rep,
	})
}

func toEngineInputs(inputs []ProjectInput) []engine.Input {
	out := make([]engine.Input, len(inputs))
	for i, in := range inputs {
		files := make([]project.File, len(in.Files))
		for j, f := range in.Files {
			files[j] = project.File{Path: util.ExtractPathFromURI(f.Path), Bytes: []byte(f.Content)}
		}
		out[i] = engine.Input{Name: in.Name, Files: files}
	}
	return out
}

// sourceURIs resolves each project's files into file:// locators
// rooted at the project name, using the teacher's util.ToUri helper.
func sourceURIs(inputs []ProjectInput) []string {
	var uris []string
	for _, in := range inputs {
		for _, f := range in.Files {
			uri, err := util.ToUri(f.Path, in.Name)
			if err != nil {
				continue
			}
			uris = append(uris, uri)
		}
	}
	return uris
}

func stringOrEmpty(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
