package server

import (
	"fmt"
	"net/http"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/scoremodel"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/gin-gonic/gin"
)

// Handler serves the scoring and analysis endpoints.
type Handler struct {
	model    *scoremodel.Model
	analyzer analysis.Analyzer
}

// NewHandler creates a handler. A nil analyzer disables /api/analyze.
func NewHandler(model *scoremodel.Model, analyzer analysis.Analyzer) *Handler {
	if model == nil {
		model = scoremodel.New()
	}
	return &Handler{model: model, analyzer: analyzer}
}

// AnalyzeRequest is the body of /api/analyze.
type AnalyzeRequest struct {
	Code     string           `json:"code"`
	Language string           `json:"language"`
	Profile  *profile.Profile `json:"profile,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Predict dispatches on fn_index, inferring it from the vector when absent.
func (h *Handler) Predict(c *gin.Context) {
	var req scoring.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fn := 0
	if req.FnIndex != nil {
		fn = *req.FnIndex
	} else {
		inferred, err := scoremodel.InferFn(req.Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fn = inferred
	}
	h.respond(c, fn, req.Data)
}

// PredictFn serves the per-function routes. The function name comes from
// the :fn path parameter.
func (h *Handler) PredictFn(c *gin.Context) {
	fn, ok := fnByName[c.Param("fn")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown function %q", c.Param("fn"))})
		return
	}
	var req scoring.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.respond(c, fn, req.Data)
}

var fnByName = map[string]int{
	"difficulty": scoremodel.FnDifficulty,
	"timeline":   scoremodel.FnTimeline,
	"mistake":    scoremodel.FnMistake,
}

func (h *Handler) respond(c *gin.Context, fn int, data []any) {
	var (
		out any
		err error
	)
	switch fn {
	case scoremodel.FnDifficulty:
		var in scoremodel.DifficultyInput
		if in, err = scoremodel.DecodeDifficulty(data); err == nil {
			out = h.model.Difficulty(in)
		}
	case scoremodel.FnTimeline:
		var in scoremodel.TimelineInput
		if in, err = scoremodel.DecodeTimeline(data); err == nil {
			out = h.model.Timeline(in)
		}
	case scoremodel.FnMistake:
		var in scoremodel.MistakeInput
		if in, err = scoremodel.DecodeMistake(data); err == nil {
			out = h.model.Mistake(in)
		}
	default:
		err = fmt.Errorf("unknown fn_index %d", fn)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": []any{out}})
}

// Analyze runs the local pipeline over a posted buffer.
func (h *Handler) Analyze(c *gin.Context) {
	if h.analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis not configured"})
		return
	}
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	l := lang.Python
	if req.Language != "" {
		parsed, err := lang.ParseSupported(req.Language)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		l = parsed
	}
	p := profile.Default()
	if req.Profile != nil {
		p = req.Profile.Clone()
	}

	snap, err := h.analyzer.Analyze(analysis.Input{Text: req.Code, Language: l, Profile: p})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Template returns the starter and reset buffers for a language.
func (h *Handler) Template(c *gin.Context) {
	l, err := lang.ParseSupported(c.Param("language"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language": l,
		"name":     l.DisplayName(),
		"starter":  lang.Starter(l),
		"reset":    lang.Reset(l),
	})
}
