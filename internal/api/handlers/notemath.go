package handlers

import (
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/musictheory-api/internal/config"
	"github.com/Conceptual-Machines/musictheory-api/internal/logger"
	"github.com/Conceptual-Machines/musictheory-api/internal/metrics"
	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type NoteMathHandler struct {
	cfg           *config.Config
	cloudwatch    *metrics.Client
	prometheus    *metrics.Prometheus
	sentryMetrics *metrics.SentryMetrics
}

func NewNoteMathHandler(cfg *config.Config, cw *metrics.Client, prom *metrics.Prometheus) *NoteMathHandler {
	return &NoteMathHandler{
		cfg:           cfg,
		cloudwatch:    cw,
		prometheus:    prom,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

// NoteMathRequest evaluates Expression from Start. When Start is empty the
// expression must name its own start note ("Do + W + W - H").
// Strict overrides the server default.
type NoteMathRequest struct {
	Start      string `json:"start"`
	Expression string `json:"expression" binding:"required"`
	Strict     *bool  `json:"strict"`
}

type NoteMathResponse struct {
	Start      NoteResponse          `json:"start"`
	Expression string                `json:"expression"`
	Result     NoteResponse          `json:"result"`
	Steps      []theory.AppliedStep  `json:"steps"`
	Skipped    []theory.SkippedToken `json:"skipped"`
	Strict     bool                  `json:"strict"`
}

// Evaluate runs a note-math expression such as "+ W + W - H" or "+ 3(W) - H"
func (h *NoteMathHandler) Evaluate(c *gin.Context) {
	var req NoteMathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strict := h.cfg.StrictNoteMath
	if req.Strict != nil {
		strict = *req.Strict
	}

	eval, err := h.evaluate(req, strict)
	h.record(c, req.Expression, eval, strict, err)
	if err != nil {
		body := gin.H{"error": err.Error()}
		if len(eval.Skipped) > 0 {
			body["skipped"] = eval.Skipped
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	c.JSON(http.StatusOK, NoteMathResponse{
		Start:      newNoteResponse(eval.Start),
		Expression: req.Expression,
		Result:     newNoteResponse(eval.Result),
		Steps:      eval.Steps,
		Skipped:    eval.Skipped,
		Strict:     strict,
	})
}

func (h *NoteMathHandler) evaluate(req NoteMathRequest, strict bool) (theory.Evaluation, error) {
	if strings.TrimSpace(req.Start) == "" {
		return theory.EvaluateExpression(req.Expression, strict)
	}

	var start theory.Note
	if err := start.UnmarshalText([]byte(req.Start)); err != nil {
		return theory.Evaluation{}, err
	}

	eval := theory.EvaluateDetailed(start, req.Expression)
	if strict {
		if _, err := theory.EvaluateStrict(start, req.Expression); err != nil {
			return eval, err
		}
	}
	return eval, nil
}

func (h *NoteMathHandler) record(c *gin.Context, expr string, eval theory.Evaluation, strict bool, err error) {
	skipped := len(eval.Skipped)

	outcome := outcomeOK
	switch {
	case err != nil:
		outcome = outcomeRejected
	case skipped > 0:
		outcome = outcomeSkipped
	}

	h.sentryMetrics.RecordNoteMathEvaluation(c.Request.Context(), expr, len(eval.Steps), skipped, err != nil)
	h.cloudwatch.RecordNoteMathEvaluation(skipped, strict)
	h.prometheus.ObserveNoteMath(outcome, skipped)

	if skipped > 0 {
		fields := logger.WithContext(c)
		fields["expression"] = expr
		fields["skipped_tokens"] = skipped
		fields["strict"] = strict
		logger.Debug("Note math skipped tokens", fields)
	}
}
