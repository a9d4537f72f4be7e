package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"livingledger/internal/handler"
	"livingledger/internal/repository"
	"livingledger/pkg/llm"
	"livingledger/pkg/market"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var generator llm.Generator
	switch {
	case os.Getenv("OPENAI_API_KEY") != "":
		generator = llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
		slog.Info("storyteller configured", "provider", "openai")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		generator = llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
		slog.Info("storyteller configured", "provider", "anthropic")
	default:
		slog.Warn("no storyteller API key configured, stories will degrade to the fallback line")
	}

	var provider market.DataProvider
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		provider = market.NewFinnhubClient(key)
		slog.Info("market data configured", "provider", provider.Name())
	} else {
		slog.Warn("no market data API key configured, predictions unavailable")
	}

	ledger := repository.NewLedgerRepository()

	transactionHandler := handler.NewTransactionHandler(ledger, generator)
	insightHandler := handler.NewInsightHandler(ledger, generator)
	predictionHandler := handler.NewPredictionHandler(provider)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/transactions", transactionHandler.GetTransactions)
	r.POST("/transaction", transactionHandler.CreateTransaction)
	r.POST("/upload_csv", transactionHandler.UploadCSV)
	r.POST("/reset", transactionHandler.Reset)
	r.GET("/oracle_insights", insightHandler.GetOracleInsights)
	r.POST("/predict_investment", predictionHandler.PredictInvestment)
	r.GET("/health", transactionHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err := r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
