// Package store defines the gateway interfaces over the three persisted
// collections. Concrete implementations live under internal/infra; services
// and handlers depend only on these interfaces.
package store

import (
	"context"

	"github.com/finsight-app/finsight/internal/domain"
)

// TransactionStore provides typed access to the transactions collection.
type TransactionStore interface {
	// ListTransactions returns every transaction ordered by date descending,
	// most recently created first within a day. No pagination: the dataset is
	// bounded by practical statement sizes.
	ListTransactions(ctx context.Context) ([]*domain.Transaction, error)

	// InsertTransactions inserts a batch of transactions.
	InsertTransactions(ctx context.Context, rows []*domain.Transaction) error

	// DeleteTransaction removes a single transaction by id.
	DeleteTransaction(ctx context.Context, id string) error

	// DeleteAllTransactions removes every transaction. Permanent.
	DeleteAllTransactions(ctx context.Context) error
}

// ReportStore provides typed access to the reports collection.
type ReportStore interface {
	// ListReports returns every report ordered by period descending.
	ListReports(ctx context.Context) ([]*domain.Report, error)

	// UpsertReport inserts the report, or replaces the existing row's
	// total_spent, summary and created_at when a row with the same period
	// already exists (last write wins). It returns the persisted row.
	UpsertReport(ctx context.Context, report *domain.Report) (*domain.Report, error)

	// DeleteAllReports removes every report. Permanent.
	DeleteAllReports(ctx context.Context) error
}

// ExecutionLogStore provides typed access to the execution_logs collection.
// Rows are written by the external ingestion workflow, not by this service.
type ExecutionLogStore interface {
	// ListExecutionLogs returns every log row ordered by timestamp descending.
	ListExecutionLogs(ctx context.Context) ([]*domain.ExecutionLog, error)

	// DeleteAllExecutionLogs removes every log row. Permanent.
	DeleteAllExecutionLogs(ctx context.Context) error
}

// Store aggregates the three collection gateways behind one connection.
type Store interface {
	TransactionStore
	ReportStore
	ExecutionLogStore

	Close() error
}
