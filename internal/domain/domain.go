package domain

import (
	"time"
)

// UncategorizedLabel is the category assigned to transactions whose upstream
// categorization left the category empty.
const UncategorizedLabel = "Uncategorized"

// Transaction is one bank transaction as populated by the external ingestion
// workflow. is_anomaly and confidence_score come from upstream categorization;
// this service reads them but never computes them.
type Transaction struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Description     string    `json:"description"`
	Merchant        string    `json:"merchant,omitempty"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category,omitempty"`
	ConfidenceScore *float64  `json:"confidence_score,omitempty"`
	IsAnomaly       bool      `json:"is_anomaly"`
	CreatedAt       time.Time `json:"created_at"`
}

// CategoryOrDefault returns the transaction category, substituting
// UncategorizedLabel when none was assigned.
func (t *Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return UncategorizedLabel
	}
	return t.Category
}

// Report is a monthly spending report. At most one report exists per period;
// regenerating within the same period replaces the previous row.
type Report struct {
	ID         string    `json:"id"`
	Period     string    `json:"period"` // calendar month, "YYYY-MM"
	TotalSpent float64   `json:"total_spent"`
	Summary    string    `json:"summary"`
	PDFURL     string    `json:"pdf_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PeriodLayout is the time.Format layout producing a "YYYY-MM" period key.
const PeriodLayout = "2006-01"

// ExecutionLog is one telemetry row written by the external ingestion
// workflow. This service only lists and deletes these rows.
type ExecutionLog struct {
	ID           string    `json:"id"`
	WorkflowName string    `json:"workflow_name"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ResetScope selects which collections a reset wipes.
type ResetScope string

const (
	// ScopeTransactions clears transactions and execution logs but keeps
	// historical reports.
	ScopeTransactions ResetScope = "transactions"
	// ScopeFull clears transactions, reports and execution logs.
	ScopeFull ResetScope = "full"
)

// NormalizeScope maps a raw mode string onto a ResetScope. Anything other
// than "transactions" (including empty input) falls back to ScopeFull,
// matching the destructive-by-default contract of the reset endpoint.
func NormalizeScope(raw string) ResetScope {
	if raw == string(ScopeTransactions) {
		return ScopeTransactions
	}
	return ScopeFull
}
