// Package reset implements the destructive bulk-delete over the persisted
// collections. Deletes are issued sequentially per collection and are not
// atomic across collections: a failure partway leaves the earlier deletes
// in place, and the error surfaces to the caller.
package reset

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/domain"
)

// Purger is the slice of the store gateway the controller needs.
type Purger interface {
	DeleteAllTransactions(ctx context.Context) error
	DeleteAllReports(ctx context.Context) error
	DeleteAllExecutionLogs(ctx context.Context) error
}

// Controller executes scoped resets.
type Controller struct {
	store Purger
	log   zerolog.Logger
}

// NewController wires a Controller.
func NewController(store Purger, log zerolog.Logger) *Controller {
	return &Controller{store: store, log: log}
}

// Reset wipes collections according to the requested scope and returns the
// effective scope used. "transactions" clears transactions and execution
// logs but keeps historical reports; anything else (including empty input)
// is treated as a full reset and clears all three collections.
func (c *Controller) Reset(ctx context.Context, rawScope string) (domain.ResetScope, error) {
	scope := domain.NormalizeScope(rawScope)

	c.log.Info().Str("scope", string(scope)).Msg("Resetting store")

	if err := c.store.DeleteAllTransactions(ctx); err != nil {
		return scope, err
	}

	if scope == domain.ScopeFull {
		if err := c.store.DeleteAllReports(ctx); err != nil {
			return scope, err
		}
	}

	// Logs are ingestion telemetry tied to the deleted transactions, so both
	// scopes clear them.
	if err := c.store.DeleteAllExecutionLogs(ctx); err != nil {
		return scope, err
	}

	c.log.Info().Str("scope", string(scope)).Msg("Reset complete")
	return scope, nil
}
