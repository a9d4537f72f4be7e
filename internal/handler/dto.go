package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"livingledger/internal/model"
)

type CreateTransactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

type TransactionResponse struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Story       string          `json:"story"`
	Timestamp   string          `json:"timestamp"`
}

type InsightsResponse struct {
	Insights []string `json:"insights"`
}

type PredictionRequest struct {
	TickerSymbol  string `json:"ticker_symbol"`
	DaysToPredict int    `json:"days_to_predict"`
}

type PredictionResponse struct {
	CompanyName    string  `json:"company_name"`
	CurrentPrice   float64 `json:"current_price"`
	PredictionText string  `json:"prediction_text"`
}

func toTransactionResponse(rec model.RecordedTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          rec.ID,
		Description: rec.Description,
		Amount:      rec.Amount,
		Type:        rec.Type,
		Story:       rec.Story,
		Timestamp:   rec.Timestamp.Format(time.RFC3339),
	}
}
