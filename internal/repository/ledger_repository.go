package repository

import (
	"sort"
	"sync"

	"livingledger/internal/model"
)

// LedgerRepository is the in-memory transaction ledger. All mutation goes
// through it so the id counter and the timestamp-descending order hold even
// when gin serves requests from multiple goroutines.
type LedgerRepository struct {
	mu      sync.Mutex
	nextID  int
	records []model.RecordedTransaction
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		records: make([]model.RecordedTransaction, 0),
	}
}

// Insert assigns the next id to rec and places it at the front of the ledger.
// Ids are never reused within a process lifetime short of an explicit Reset.
func (r *LedgerRepository) Insert(rec model.RecordedTransaction) model.RecordedTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	r.records = append([]model.RecordedTransaction{rec}, r.records...)
	return rec
}

// InsertBatch assigns ids in input order, appends all records, then
// stable-sorts the whole ledger by timestamp descending. The returned slice
// keeps the input (creation) order; only the stored ledger is resorted.
func (r *LedgerRepository) InsertBatch(recs []model.RecordedTransaction) []model.RecordedTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]model.RecordedTransaction, len(recs))
	for i, rec := range recs {
		rec.ID = r.nextID
		r.nextID++
		created[i] = rec
	}

	r.records = append(r.records, created...)
	sort.SliceStable(r.records, func(i, j int) bool {
		return r.records[i].Timestamp.After(r.records[j].Timestamp)
	})

	return created
}

// All returns a copy of the ledger in stored order.
func (r *LedgerRepository) All() []model.RecordedTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]model.RecordedTransaction, len(r.records))
	copy(copied, r.records)
	return copied
}

func (r *LedgerRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Reset clears all records and restarts the id counter at 0.
func (r *LedgerRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = r.records[:0]
	r.nextID = 0
}
