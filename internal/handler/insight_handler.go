package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"livingledger/internal/insight"
	"livingledger/internal/model"
	"livingledger/pkg/llm"
)

type ActivityStore interface {
	All() []model.RecordedTransaction
}

type InsightHandler struct {
	store     ActivityStore
	generator llm.Generator
}

func NewInsightHandler(store ActivityStore, generator llm.Generator) *InsightHandler {
	return &InsightHandler{store: store, generator: generator}
}

// GetOracleInsights always answers with at least one insight: any failure in
// generation or parsing degrades to the fixed fallback list.
func (h *InsightHandler) GetOracleInsights(c *gin.Context) {
	summary := insight.Summarize(h.store.All(), time.Now().UTC())

	result := llm.Tell(context.Background(), h.generator, llm.InsightPrompt(summary))

	insights, err := llm.ParseInsights(result.Text)
	if err != nil {
		slog.Error("error getting insights", "error", err)
		insights = []string{llm.FallbackInsight}
	}

	c.JSON(http.StatusOK, InsightsResponse{Insights: insights})
}
