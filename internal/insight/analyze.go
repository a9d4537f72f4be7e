// Package insight summarizes recent ledger activity into the plain-text
// adventurer's summary fed to the oracle prompt.
package insight

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"livingledger/internal/model"
)

const (
	// EmptyLedgerSummary stands in when no transactions exist at all,
	// QuietPathSummary when none fall inside the 30-day window. The two are
	// distinct on purpose: "no data" reads differently from "no activity".
	EmptyLedgerSummary = "The adventurer has not yet begun their journey. The scrolls are blank."
	QuietPathSummary   = "No quests have been logged in the past 30 days. The path is quiet."
)

const windowDays = 30

var (
	provisionKeywords = []string{"zomato", "swiggy", "food", "grocery"}
	tradeKeywords     = []string{"amazon", "flipkart", "shop"}

	printer = message.NewPrinter(language.English)
)

// Summarize reduces the records within the trailing 30-day window to totals
// and keyword counts, rendered as the oracle's adventurer summary.
func Summarize(records []model.RecordedTransaction, now time.Time) string {
	if len(records) == 0 {
		return EmptyLedgerSummary
	}

	cutoff := now.AddDate(0, 0, -windowDays)

	var recent []model.RecordedTransaction
	for _, rec := range records {
		if rec.Timestamp.After(cutoff) {
			recent = append(recent, rec)
		}
	}

	if len(recent) == 0 {
		return QuietPathSummary
	}

	income := decimal.Zero
	expenses := decimal.Zero
	var provisions, trades int

	for _, rec := range recent {
		switch rec.Type {
		case model.TypeCredit:
			income = income.Add(rec.Amount)
		case model.TypeDebit:
			expenses = expenses.Add(rec.Amount)
			desc := strings.ToLower(rec.Description)
			if containsAny(desc, provisionKeywords) {
				provisions++
			}
			if containsAny(desc, tradeKeywords) {
				trades++
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(printer.Sprintf("- Total Diamonds Gained in last 30 days: %.0f\n", income.InexactFloat64()))
	sb.WriteString(printer.Sprintf("- Total Diamonds Spent in last 30 days: %.0f\n", expenses.InexactFloat64()))

	if expenses.IsPositive() {
		sb.WriteString(printer.Sprintf("- Logged %d quests for provisions and %d trades with villagers.", provisions, trades))
	}

	return sb.String()
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
