package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"livingledger/internal/forecast"
	"livingledger/pkg/market"
)

const defaultPredictionDays = 30

type PredictionHandler struct {
	provider market.DataProvider
}

func NewPredictionHandler(provider market.DataProvider) *PredictionHandler {
	return &PredictionHandler{provider: provider}
}

func (h *PredictionHandler) PredictInvestment(c *gin.Context) {
	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prediction request body"})
		return
	}

	ticker := strings.TrimSpace(req.TickerSymbol)
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker_symbol is required"})
		return
	}

	days := req.DaysToPredict
	if days <= 0 {
		days = defaultPredictionDays
	}

	if h.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Market data API key not configured on server"})
		return
	}

	snapshot, err := h.provider.Snapshot(context.Background(), ticker)
	if err != nil {
		slog.Error("error fetching market data", "ticker", ticker, "provider", h.provider.Name(), "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Could not find data for ticker '%s': %v", req.TickerSymbol, err)})
		return
	}

	c.JSON(http.StatusOK, PredictionResponse{
		CompanyName:    snapshot.CompanyName,
		CurrentPrice:   snapshot.CurrentPrice,
		PredictionText: forecast.Predict(snapshot.Closes, days),
	})
}
