package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"livingledger/internal/repository"
	"livingledger/pkg/llm"
)

type fakeGenerator struct {
	response string
	echo     bool
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.echo {
		return "story for " + prompt, nil
	}
	return f.response, nil
}

func newTestRouter(store LedgerStore, generator llm.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransactionHandler(store, generator)
	r.GET("/transactions", h.GetTransactions)
	r.POST("/transaction", h.CreateTransaction)
	r.POST("/upload_csv", h.UploadCSV)
	r.POST("/reset", h.Reset)
	r.GET("/health", h.GetHealth)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postCSV(r *gin.Engine, csv string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "transactions.csv")
	part.Write([]byte(csv))
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/upload_csv", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func TestGetTransactions_EmptyLedger(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), &fakeGenerator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/transactions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, len(res))
}

func TestCreateTransaction_Success(t *testing.T) {
	store := repository.NewLedgerRepository()
	r := newTestRouter(store, &fakeGenerator{response: "A tale of 350 diamonds."})

	w := postJSON(r, "/transaction", `{"description":"Zomato","amount":350,"type":"Debit"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.ID)
	assert.Equal(t, "A tale of 350 diamonds.", res.Story)
	assert.Equal(t, "debit", res.Type)
	assert.Equal(t, "350", res.Amount.String())
	assert.Equal(t, 1, store.Len())
}

func TestCreateTransaction_SequentialIDs(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), &fakeGenerator{response: "story"})

	for i := 0; i < 3; i++ {
		w := postJSON(r, "/transaction", `{"description":"tx","amount":10,"type":"debit"}`)

		var res TransactionResponse
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, i, res.ID)
	}
}

func TestCreateTransaction_GeneratorErrorDegradesToFallback(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), &fakeGenerator{err: errors.New("upstream down")})

	w := postJSON(r, "/transaction", `{"description":"Zomato","amount":350,"type":"debit"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, llm.FallbackStory, res.Story)
}

func TestCreateTransaction_NoGeneratorConfigured(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), nil)

	w := postJSON(r, "/transaction", `{"description":"Zomato","amount":350,"type":"debit"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateTransaction_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"description":`},
		{name: "negative amount", body: `{"description":"tx","amount":-5,"type":"debit"}`},
		{name: "unknown type", body: `{"description":"tx","amount":5,"type":"transfer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(repository.NewLedgerRepository(), &fakeGenerator{response: "story"})
			w := postJSON(r, "/transaction", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUploadCSV_CreatesRecordsWithAlignedStories(t *testing.T) {
	store := repository.NewLedgerRepository()
	r := newTestRouter(store, &fakeGenerator{echo: true})

	w := postCSV(r, "Description,Amount,Type\nZomato,350,debit\nSALARY CREDIT,75000,credit\n")

	assert.Equal(t, http.StatusOK, w.Code)

	var res []TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, 2, store.Len())

	// Each row's story was generated from that row's own prompt.
	if !strings.Contains(res[0].Story, `Description: "Zomato"`) {
		t.Errorf("row 0 story came from the wrong prompt: %q", res[0].Story)
	}
	if !strings.Contains(res[1].Story, `Description: "SALARY CREDIT"`) {
		t.Errorf("row 1 story came from the wrong prompt: %q", res[1].Story)
	}
}

func TestUploadCSV_MissingColumnLeavesLedgerUnchanged(t *testing.T) {
	store := repository.NewLedgerRepository()
	r := newTestRouter(store, &fakeGenerator{response: "story"})

	w := postCSV(r, "Description,Type\nZomato,debit\n")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.Len())
}

func TestUploadCSV_BadAmountIsServerError(t *testing.T) {
	store := repository.NewLedgerRepository()
	r := newTestRouter(store, &fakeGenerator{response: "story"})

	w := postCSV(r, "Description,Amount,Type\nZomato,not-a-number,debit\n")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, store.Len())
}

func TestUploadCSV_NoFile(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), &fakeGenerator{response: "story"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/upload_csv", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCSV_ResponseKeepsRowOrderWhileStoreIsSorted(t *testing.T) {
	store := repository.NewLedgerRepository()
	r := newTestRouter(store, &fakeGenerator{response: "story"})

	w := postCSV(r, "Description,Amount,Type,Timestamp\n"+
		"oldest,1,debit,2026-08-01T00:00:00Z\n"+
		"newest,2,debit,2026-08-20T00:00:00Z\n"+
		"middle,3,debit,2026-08-10T00:00:00Z\n")

	assert.Equal(t, http.StatusOK, w.Code)

	var res []TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	// Response preserves row order.
	assert.Equal(t, "oldest", res[0].Description)
	assert.Equal(t, "newest", res[1].Description)
	assert.Equal(t, "middle", res[2].Description)

	// Stored ledger is timestamp descending.
	all := store.All()
	assert.Equal(t, "newest", all[0].Description)
	assert.Equal(t, "middle", all[1].Description)
	assert.Equal(t, "oldest", all[2].Description)
}

func TestUploadCSV_NoGeneratorDegradesEveryRow(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), nil)

	w := postCSV(r, "Description,Amount,Type\nZomato,350,debit\nSwiggy,200,debit\n")

	assert.Equal(t, http.StatusOK, w.Code)

	var res []TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	for _, rec := range res {
		assert.Equal(t, llm.FallbackStory, rec.Story)
	}
}

func TestReset_ClearsLedger(t *testing.T) {
	store := repository.NewLedgerRepository()
	r := newTestRouter(store, &fakeGenerator{response: "story"})

	postJSON(r, "/transaction", `{"description":"tx","amount":10,"type":"debit"}`)

	w := postJSON(r, "/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Server data has been reset.", res["message"])
	assert.Equal(t, 0, store.Len())

	// The next record starts over at id 0.
	w = postJSON(r, "/transaction", `{"description":"tx","amount":10,"type":"debit"}`)
	var rec TransactionResponse
	json.Unmarshal(w.Body.Bytes(), &rec)
	assert.Equal(t, 0, rec.ID)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(repository.NewLedgerRepository(), &fakeGenerator{response: "story"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
	assert.Equal(t, true, res["storyteller"])
}
