package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/finsight-app/finsight/internal/domain"
)

// executionLogRow mirrors the execution_logs table schema. Rows are produced
// by the external ingestion workflow; this service never inserts them.
type executionLogRow struct {
	ID           string              `bigquery:"id"`
	WorkflowName string              `bigquery:"workflow_name"`
	Status       string              `bigquery:"status"`
	ErrorMessage bigquery.NullString `bigquery:"error_message"`
	Timestamp    time.Time           `bigquery:"timestamp"`
}

func (r *executionLogRow) toDomain() *domain.ExecutionLog {
	l := &domain.ExecutionLog{
		ID:           r.ID,
		WorkflowName: r.WorkflowName,
		Status:       r.Status,
		Timestamp:    r.Timestamp,
	}
	if r.ErrorMessage.Valid {
		l.ErrorMessage = r.ErrorMessage.StringVal
	}
	return l
}

// ListExecutionLogs returns every ingestion log row, newest first.
func (c *Client) ListExecutionLogs(ctx context.Context) ([]*domain.ExecutionLog, error) {
	q := c.bq.Query(`
		SELECT id, workflow_name, status, error_message, timestamp
		FROM ` + c.table(executionLogsTable) + `
		ORDER BY timestamp DESC
	`)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "ListExecutionLogs", Err: fmt.Errorf("query read: %w", err)}
	}

	var out []*domain.ExecutionLog
	for {
		var r executionLogRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &domain.StoreError{Op: "ListExecutionLogs", Err: fmt.Errorf("iter next: %w", err)}
		}
		out = append(out, r.toDomain())
	}

	return out, nil
}

// DeleteAllExecutionLogs wipes the execution_logs table. Logs are transient
// ingestion telemetry, so both reset scopes clear them.
func (c *Client) DeleteAllExecutionLogs(ctx context.Context) error {
	return c.deleteAll(ctx, "DeleteAllExecutionLogs", executionLogsTable)
}
