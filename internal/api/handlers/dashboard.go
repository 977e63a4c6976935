package handlers

import (
	"net/http"
	"sort"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/api/middleware"
	"github.com/finsight-app/finsight/internal/domain"
	"github.com/finsight-app/finsight/internal/insight"
	"github.com/finsight-app/finsight/internal/store"
)

// TransactionsHandler handles transaction-related read endpoints.
type TransactionsHandler struct {
	transactions store.TransactionStore
	log          zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(transactions store.TransactionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, log: log}
}

// ListTransactions handles GET /api/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.ListTransactions(r.Context())
	if err != nil {
		writeFailure(w, h.log, "Failed to list transactions", err)
		return
	}

	// Return array directly for frontend compatibility
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, transactions)
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.transactions.DeleteTransaction(r.Context(), id); err != nil {
		writeFailure(w, h.log, "Failed to delete transaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Stats handles GET /api/stats. It feeds the dashboard's overview cards and
// the category chart: signed total spend, counts, the per-category
// breakdown and the five most recent transactions.
func (h *TransactionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.ListTransactions(r.Context())
	if err != nil {
		writeFailure(w, h.log, "Failed to compute stats", err)
		return
	}

	agg := insight.Aggregate(transactions)

	anomalies := 0
	for _, t := range transactions {
		if t.IsAnomaly {
			anomalies++
		}
	}

	categories := make([]insight.CategoryTotal, 0, len(agg.CategoryTotals))
	for name, total := range agg.CategoryTotals {
		categories = append(categories, insight.CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Total > categories[j].Total
	})

	recent := agg.Recent
	if recent == nil {
		recent = []*domain.Transaction{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total_spent":         agg.TotalSpent,
		"transaction_count":   agg.TransactionCount,
		"anomaly_count":       anomalies,
		"category_totals":     categories,
		"recent_transactions": recent,
	})
}

// LogsHandler handles ingestion telemetry endpoints.
type LogsHandler struct {
	logs store.ExecutionLogStore
	log  zerolog.Logger
}

// NewLogsHandler creates a new execution-log handler.
func NewLogsHandler(logs store.ExecutionLogStore, log zerolog.Logger) *LogsHandler {
	return &LogsHandler{logs: logs, log: log}
}

// ListLogs handles GET /api/logs
func (h *LogsHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.ListExecutionLogs(r.Context())
	if err != nil {
		writeFailure(w, h.log, "Failed to list execution logs", err)
		return
	}

	if logs == nil {
		logs = []*domain.ExecutionLog{}
	}
	middleware.WriteJSON(w, http.StatusOK, logs)
}
