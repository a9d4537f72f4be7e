package market

import "context"

// Snapshot is everything the prediction path needs for one ticker: company
// metadata, the latest price, and daily closes ordered oldest first.
type Snapshot struct {
	CompanyName  string
	CurrentPrice float64
	Closes       []float64
}

type DataProvider interface {
	Snapshot(ctx context.Context, symbol string) (*Snapshot, error)
	Name() string
}
