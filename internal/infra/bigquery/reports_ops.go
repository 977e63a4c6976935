package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/finsight-app/finsight/internal/domain"
)

// reportRow mirrors the reports table schema. period carries the uniqueness
// contract: UpsertReport merges on it, so at most one row per calendar month
// can exist.
type reportRow struct {
	ID         string              `bigquery:"id"`
	Period     string              `bigquery:"period"`
	TotalSpent float64             `bigquery:"total_spent"`
	Summary    bigquery.NullString `bigquery:"summary"`
	PDFURL     bigquery.NullString `bigquery:"pdf_url"`
	CreatedAt  time.Time           `bigquery:"created_at"`
}

func (r *reportRow) toDomain() *domain.Report {
	rep := &domain.Report{
		ID:         r.ID,
		Period:     r.Period,
		TotalSpent: r.TotalSpent,
		CreatedAt:  r.CreatedAt,
	}
	if r.Summary.Valid {
		rep.Summary = r.Summary.StringVal
	}
	if r.PDFURL.Valid {
		rep.PDFURL = r.PDFURL.StringVal
	}
	return rep
}

// ListReports returns every report, newest period first.
func (c *Client) ListReports(ctx context.Context) ([]*domain.Report, error) {
	q := c.bq.Query(`
		SELECT id, period, total_spent, summary, pdf_url, created_at
		FROM ` + c.table(reportsTable) + `
		ORDER BY period DESC
	`)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "ListReports", Err: fmt.Errorf("query read: %w", err)}
	}

	var out []*domain.Report
	for {
		var r reportRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &domain.StoreError{Op: "ListReports", Err: fmt.Errorf("iter next: %w", err)}
		}
		out = append(out, r.toDomain())
	}

	return out, nil
}

// UpsertReport inserts the report or, when a row with the same period exists,
// replaces its total_spent, summary and created_at. The conflict target is
// period, so re-generating within one calendar month collapses to a single
// row with the later call's values. Returns the persisted row.
func (c *Client) UpsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	sql := `
		MERGE ` + c.table(reportsTable) + ` T
		USING (
			SELECT @id AS id, @period AS period, @total_spent AS total_spent,
			       @summary AS summary, @created_at AS created_at
		) S
		ON T.period = S.period
		WHEN MATCHED THEN
			UPDATE SET total_spent = S.total_spent, summary = S.summary, created_at = S.created_at
		WHEN NOT MATCHED THEN
			INSERT (id, period, total_spent, summary, pdf_url, created_at)
			VALUES (S.id, S.period, S.total_spent, S.summary, NULL, S.created_at)
	`
	params := []bigquery.QueryParameter{
		{Name: "id", Value: report.ID},
		{Name: "period", Value: report.Period},
		{Name: "total_spent", Value: report.TotalSpent},
		{Name: "summary", Value: report.Summary},
		{Name: "created_at", Value: report.CreatedAt},
	}
	if err := c.runDML(ctx, "UpsertReport", sql, params); err != nil {
		return nil, err
	}

	return c.findReportByPeriod(ctx, report.Period)
}

func (c *Client) findReportByPeriod(ctx context.Context, period string) (*domain.Report, error) {
	q := c.bq.Query(`
		SELECT id, period, total_spent, summary, pdf_url, created_at
		FROM ` + c.table(reportsTable) + `
		WHERE period = @period
		LIMIT 1
	`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "period", Value: period},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "findReportByPeriod", Err: fmt.Errorf("query read: %w", err)}
	}

	var r reportRow
	if err := it.Next(&r); err != nil {
		if err == iterator.Done {
			return nil, &domain.StoreError{Op: "findReportByPeriod", Err: fmt.Errorf("report for period %s not found after upsert", period)}
		}
		return nil, &domain.StoreError{Op: "findReportByPeriod", Err: fmt.Errorf("iter next: %w", err)}
	}

	return r.toDomain(), nil
}

// DeleteAllReports wipes the reports table.
func (c *Client) DeleteAllReports(ctx context.Context) error {
	return c.deleteAll(ctx, "DeleteAllReports", reportsTable)
}
