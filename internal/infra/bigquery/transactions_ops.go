package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/finsight-app/finsight/internal/domain"
)

// transactionRow mirrors the transactions table schema.
type transactionRow struct {
	ID              string               `bigquery:"id"`
	Date            civil.Date           `bigquery:"date"`
	Description     string               `bigquery:"description"`
	Merchant        bigquery.NullString  `bigquery:"merchant"`
	Amount          float64              `bigquery:"amount"`
	Category        bigquery.NullString  `bigquery:"category"`
	ConfidenceScore bigquery.NullFloat64 `bigquery:"confidence_score"`
	IsAnomaly       bool                 `bigquery:"is_anomaly"`
	CreatedAt       time.Time            `bigquery:"created_at"`
}

func (r *transactionRow) toDomain() *domain.Transaction {
	t := &domain.Transaction{
		ID:          r.ID,
		Date:        r.Date.In(time.UTC),
		Description: r.Description,
		Amount:      r.Amount,
		IsAnomaly:   r.IsAnomaly,
		CreatedAt:   r.CreatedAt,
	}
	if r.Merchant.Valid {
		t.Merchant = r.Merchant.StringVal
	}
	if r.Category.Valid {
		t.Category = r.Category.StringVal
	}
	if r.ConfidenceScore.Valid {
		score := r.ConfidenceScore.Float64
		t.ConfidenceScore = &score
	}
	return t
}

func transactionRowFromDomain(t *domain.Transaction) *transactionRow {
	r := &transactionRow{
		ID:          t.ID,
		Date:        civil.DateOf(t.Date),
		Description: t.Description,
		Amount:      t.Amount,
		IsAnomaly:   t.IsAnomaly,
		CreatedAt:   t.CreatedAt,
	}
	if t.Merchant != "" {
		r.Merchant = bigquery.NullString{StringVal: t.Merchant, Valid: true}
	}
	if t.Category != "" {
		r.Category = bigquery.NullString{StringVal: t.Category, Valid: true}
	}
	if t.ConfidenceScore != nil {
		r.ConfidenceScore = bigquery.NullFloat64{Float64: *t.ConfidenceScore, Valid: true}
	}
	return r
}

// ListTransactions returns every transaction ordered by date descending,
// newest created_at first within a day.
func (c *Client) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	q := c.bq.Query(`
		SELECT id, date, description, merchant, amount, category,
		       confidence_score, is_anomaly, created_at
		FROM ` + c.table(transactionsTable) + `
		ORDER BY date DESC, created_at DESC
	`)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "ListTransactions", Err: fmt.Errorf("query read: %w", err)}
	}

	var out []*domain.Transaction
	for {
		var r transactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &domain.StoreError{Op: "ListTransactions", Err: fmt.Errorf("iter next: %w", err)}
		}
		out = append(out, r.toDomain())
	}

	return out, nil
}

// InsertTransactions inserts a batch of transactions via the streaming inserter.
func (c *Client) InsertTransactions(ctx context.Context, rows []*domain.Transaction) error {
	if len(rows) == 0 {
		return nil
	}

	bqRows := make([]*transactionRow, 0, len(rows))
	for _, t := range rows {
		bqRows = append(bqRows, transactionRowFromDomain(t))
	}

	table := c.bq.DatasetInProject(c.projectID, c.datasetID).Table(transactionsTable)
	if err := table.Inserter().Put(ctx, bqRows); err != nil {
		return &domain.StoreError{Op: "InsertTransactions", Err: fmt.Errorf("inserting rows: %w", err)}
	}

	return nil
}

// DeleteTransaction removes a single transaction by id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	sql := "DELETE FROM " + c.table(transactionsTable) + " WHERE id = @id"
	return c.runDML(ctx, "DeleteTransaction", sql, []bigquery.QueryParameter{
		{Name: "id", Value: id},
	})
}

// DeleteAllTransactions wipes the transactions table.
func (c *Client) DeleteAllTransactions(ctx context.Context) error {
	return c.deleteAll(ctx, "DeleteAllTransactions", transactionsTable)
}
