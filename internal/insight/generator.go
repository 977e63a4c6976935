// Package insight generates the monthly spending report: it aggregates the
// full transaction set, asks the completion service for a natural-language
// summary, and upserts the result keyed on the calendar period.
package insight

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/domain"
)

// Summarizer produces a natural-language summary for a prompt. A failed
// upstream call returns an error; an empty-but-successful completion returns
// ("", nil) and the generator substitutes FallbackSummary.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// TransactionSource is the read slice of the store gateway the generator
// needs.
type TransactionSource interface {
	ListTransactions(ctx context.Context) ([]*domain.Transaction, error)
}

// ReportSink persists generated reports with replace-on-period semantics.
type ReportSink interface {
	UpsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error)
}

// Generator is the report-generation service. Now is the clock used to
// derive the report period; it is a field so tests can pin it.
type Generator struct {
	transactions TransactionSource
	reports      ReportSink
	summarizer   Summarizer
	log          zerolog.Logger

	Now func() time.Time
}

// NewGenerator wires a Generator against real collaborators.
func NewGenerator(tx TransactionSource, reports ReportSink, s Summarizer, log zerolog.Logger) *Generator {
	return &Generator{
		transactions: tx,
		reports:      reports,
		summarizer:   s,
		log:          log,
		Now:          time.Now,
	}
}

// Generate builds this month's report. The sequence is strict: read all
// transactions, fail early on an empty dataset, aggregate, call the
// completion service, then upsert exactly one row for the current period.
// An upstream failure surfaces before anything is written; only the
// empty-completion case falls back to FallbackSummary and still persists.
func (g *Generator) Generate(ctx context.Context) (*domain.Report, error) {
	transactions, err := g.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	agg := Aggregate(transactions)
	prompt := buildPrompt(agg)

	g.log.Info().
		Int("transactions", agg.TransactionCount).
		Float64("total_spent", agg.TotalSpent).
		Msg("Requesting spending summary")

	summary, err := g.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if summary == "" {
		g.log.Warn().Msg("Completion service returned no text, using fallback summary")
		summary = FallbackSummary
	}

	now := g.Now()
	report := &domain.Report{
		ID:         uuid.New().String(),
		Period:     now.Format(domain.PeriodLayout),
		TotalSpent: agg.TotalSpent,
		Summary:    summary,
		CreatedAt:  now.UTC(),
	}

	persisted, err := g.reports.UpsertReport(ctx, report)
	if err != nil {
		return nil, err
	}

	g.log.Info().
		Str("period", persisted.Period).
		Float64("total_spent", persisted.TotalSpent).
		Msg("Report generated")

	return persisted, nil
}
