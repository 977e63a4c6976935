package reset

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/domain"
)

// mockPurger records which collections were wiped, with injectable failures.
type mockPurger struct {
	calls []string

	transactionsErr error
	reportsErr      error
	logsErr         error
}

func (m *mockPurger) DeleteAllTransactions(ctx context.Context) error {
	m.calls = append(m.calls, "transactions")
	return m.transactionsErr
}

func (m *mockPurger) DeleteAllReports(ctx context.Context) error {
	m.calls = append(m.calls, "reports")
	return m.reportsErr
}

func (m *mockPurger) DeleteAllExecutionLogs(ctx context.Context) error {
	m.calls = append(m.calls, "execution_logs")
	return m.logsErr
}

func TestResetTransactionsScopeKeepsReports(t *testing.T) {
	purger := &mockPurger{}
	c := NewController(purger, zerolog.Nop())

	mode, err := c.Reset(context.Background(), "transactions")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mode != domain.ScopeTransactions {
		t.Errorf("mode = %q, want transactions", mode)
	}

	want := []string{"transactions", "execution_logs"}
	if len(purger.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", purger.calls, want)
	}
	for i, call := range want {
		if purger.calls[i] != call {
			t.Errorf("calls[%d] = %q, want %q", i, purger.calls[i], call)
		}
	}
}

func TestResetFullScopeWipesEverything(t *testing.T) {
	purger := &mockPurger{}
	c := NewController(purger, zerolog.Nop())

	mode, err := c.Reset(context.Background(), "full")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mode != domain.ScopeFull {
		t.Errorf("mode = %q, want full", mode)
	}

	want := []string{"transactions", "reports", "execution_logs"}
	if len(purger.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", purger.calls, want)
	}
}

func TestResetDefaultsToFull(t *testing.T) {
	tests := []string{"", "bogus", "TRANSACTIONS", "all"}

	for _, raw := range tests {
		t.Run("scope_"+raw, func(t *testing.T) {
			purger := &mockPurger{}
			c := NewController(purger, zerolog.Nop())

			mode, err := c.Reset(context.Background(), raw)
			if err != nil {
				t.Fatalf("Reset: %v", err)
			}
			if mode != domain.ScopeFull {
				t.Errorf("mode = %q, want full for input %q", mode, raw)
			}
			if len(purger.calls) != 3 {
				t.Errorf("calls = %v, want all three collections", purger.calls)
			}
		})
	}
}

func TestResetPartialFailureIsNotRolledBack(t *testing.T) {
	purger := &mockPurger{reportsErr: errors.New("quota exceeded")}
	c := NewController(purger, zerolog.Nop())

	_, err := c.Reset(context.Background(), "full")
	if err == nil {
		t.Fatal("expected error from failed reports delete")
	}

	// The transactions delete already happened and stays applied; the
	// execution_logs delete never runs.
	want := []string{"transactions", "reports"}
	if len(purger.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", purger.calls, want)
	}
}

func TestResetFirstDeleteFailureStopsSequence(t *testing.T) {
	purger := &mockPurger{transactionsErr: errors.New("timeout")}
	c := NewController(purger, zerolog.Nop())

	_, err := c.Reset(context.Background(), "transactions")
	if err == nil {
		t.Fatal("expected error from failed transactions delete")
	}
	if len(purger.calls) != 1 {
		t.Errorf("calls = %v, want only the failed transactions delete", purger.calls)
	}
}
