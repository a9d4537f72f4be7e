package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// historyDays is how far back daily candles are requested for the trend fit.
const historyDays = 90

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Snapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	symbol = strings.ToUpper(symbol)

	snapshot := &Snapshot{CompanyName: symbol}

	profile, _, err := c.client.CompanyProfile2(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub profile for %s: %w", symbol, err)
	}
	if profile.Name != nil && *profile.Name != "" {
		snapshot.CompanyName = *profile.Name
	}

	quote, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote for %s: %w", symbol, err)
	}
	if quote.C != nil {
		snapshot.CurrentPrice = float64(*quote.C)
	}

	to := time.Now()
	from := to.AddDate(0, 0, -historyDays)

	candles, _, err := c.client.StockCandles(ctx).
		Symbol(symbol).
		Resolution("D").
		From(from.Unix()).
		To(to.Unix()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub candles for %s: %w", symbol, err)
	}

	if candles.S != nil && *candles.S != "ok" {
		return nil, fmt.Errorf("finnhub candles for %s: status %q", symbol, *candles.S)
	}

	if candles.C != nil {
		snapshot.Closes = make([]float64, 0, len(*candles.C))
		for _, price := range *candles.C {
			snapshot.Closes = append(snapshot.Closes, float64(price))
		}
	}

	return snapshot, nil
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}
