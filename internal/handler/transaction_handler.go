package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"livingledger/internal/ingest"
	"livingledger/internal/model"
	"livingledger/pkg/llm"
)

type LedgerStore interface {
	Insert(rec model.RecordedTransaction) model.RecordedTransaction
	InsertBatch(recs []model.RecordedTransaction) []model.RecordedTransaction
	All() []model.RecordedTransaction
	Len() int
	Reset()
}

type TransactionHandler struct {
	store     LedgerStore
	generator llm.Generator
}

func NewTransactionHandler(store LedgerStore, generator llm.Generator) *TransactionHandler {
	return &TransactionHandler{store: store, generator: generator}
}

func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	records := h.store.All()

	res := make([]TransactionResponse, len(records))
	for i, rec := range records {
		res[i] = toTransactionResponse(rec)
	}

	c.JSON(http.StatusOK, res)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction body"})
		return
	}

	tx := model.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        strings.ToLower(req.Type),
	}
	if err := tx.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storyteller API key not configured on server"})
		return
	}

	// Deliberately not the request context: a dropped connection must not
	// cancel an in-flight generation.
	result := llm.Tell(context.Background(), h.generator, llm.StoryPrompt(tx.Description, tx.Type, tx.Amount))

	rec := h.store.Insert(model.RecordedTransaction{
		Transaction: tx,
		Story:       result.Text,
		Degraded:    result.Degraded,
		Timestamp:   time.Now().UTC(),
	})

	c.JSON(http.StatusOK, toTransactionResponse(rec))
}

func (h *TransactionHandler) UploadCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file upload is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("error opening uploaded file", "error", err, "filename", fileHeader.Filename)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to process CSV file: %v", err)})
		return
	}
	defer file.Close()

	rows, err := ingest.ParseCSV(file)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingColumns) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("error parsing CSV", "error", err, "filename", fileHeader.Filename)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to process CSV file: %v", err)})
		return
	}

	prompts := make([]string, len(rows))
	for i, row := range rows {
		prompts[i] = llm.StoryPrompt(row.Transaction.Description, row.Transaction.Type, row.Transaction.Amount)
	}

	results := ingest.GenerateStories(context.Background(), h.generator, prompts)

	now := time.Now().UTC()
	recs := make([]model.RecordedTransaction, len(rows))
	for i, row := range rows {
		ts := row.Timestamp
		if ts.IsZero() {
			ts = now
		}
		recs[i] = model.RecordedTransaction{
			Transaction: row.Transaction,
			Story:       results[i].Text,
			Degraded:    results[i].Degraded,
			Timestamp:   ts,
		}
	}

	created := h.store.InsertBatch(recs)

	// The response keeps row order even though the stored ledger is
	// resorted by timestamp.
	res := make([]TransactionResponse, len(created))
	for i, rec := range created {
		res[i] = toTransactionResponse(rec)
	}

	slog.Info("CSV batch ingested", "rows", len(created), "filename", fileHeader.Filename)
	c.JSON(http.StatusOK, res)
}

func (h *TransactionHandler) Reset(c *gin.Context) {
	h.store.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Server data has been reset."})
}

func (h *TransactionHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"transactions": h.store.Len(),
		"storyteller":  h.generator != nil,
	})
}
