// Package bigquery implements the store gateway on top of BigQuery tables.
// One Client holds a shared connection; per-collection operations live in
// the *_ops.go files in this package.
package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/finsight-app/finsight/internal/domain"
	"github.com/finsight-app/finsight/internal/store"
)

const (
	transactionsTable  = "transactions"
	reportsTable       = "reports"
	executionLogsTable = "execution_logs"
)

// Client is the concrete store gateway.
type Client struct {
	bq        *bigquery.Client
	projectID string
	datasetID string
}

var _ store.Store = (*Client)(nil)

// NewClient connects to BigQuery using Application Default Credentials.
// projectID and datasetID identify where the three collections live; an
// empty projectID is a configuration fault, reported before any call to
// Google APIs is made.
func NewClient(ctx context.Context, projectID, datasetID string) (*Client, error) {
	if projectID == "" {
		return nil, &domain.ConfigError{Missing: "store project ID"}
	}
	if datasetID == "" {
		return nil, &domain.ConfigError{Missing: "store dataset ID"}
	}

	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewClient: creating bigquery client: %w", err)
	}

	return &Client{
		bq:        bq,
		projectID: projectID,
		datasetID: datasetID,
	}, nil
}

// Close releases the underlying BigQuery connection.
func (c *Client) Close() error {
	if c.bq != nil {
		return c.bq.Close()
	}
	return nil
}

// table returns the fully qualified, backtick-quoted table name for SQL text.
func (c *Client) table(name string) string {
	return "`" + c.projectID + "." + c.datasetID + "." + name + "`"
}

// runDML runs a parameterized DML statement and waits for the job to finish.
func (c *Client) runDML(ctx context.Context, op, sql string, params []bigquery.QueryParameter) error {
	q := c.bq.Query(sql)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return &domain.StoreError{Op: op, Err: fmt.Errorf("run query: %w", err)}
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return &domain.StoreError{Op: op, Err: fmt.Errorf("wait for job: %w", err)}
	}

	if err := status.Err(); err != nil {
		return &domain.StoreError{Op: op, Err: fmt.Errorf("job error: %w", err)}
	}

	return nil
}

// deleteAll wipes a whole table. WHERE TRUE is required by BigQuery DML.
func (c *Client) deleteAll(ctx context.Context, op, tableName string) error {
	return c.runDML(ctx, op, "DELETE FROM "+c.table(tableName)+" WHERE TRUE", nil)
}
