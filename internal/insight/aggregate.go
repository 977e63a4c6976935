package insight

import (
	"sort"

	"github.com/finsight-app/finsight/internal/domain"
)

// CategoryTotal is one category's summed amount.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Aggregation holds the summary statistics computed over the full
// transaction set. Amounts keep their sign: expenses are negative by
// upstream convention and the total is the plain signed sum.
type Aggregation struct {
	TotalSpent       float64
	TransactionCount int
	CategoryTotals   map[string]float64
	TopCategories    []CategoryTotal
	Recent           []*domain.Transaction
}

const (
	topCategoryCount = 3
	recentSampleSize = 5
)

// Aggregate computes totals over transactions. The input is expected in
// date-descending order (as the store lists it); Recent is simply the first
// recentSampleSize entries, so ordering carries through.
func Aggregate(transactions []*domain.Transaction) Aggregation {
	agg := Aggregation{
		TransactionCount: len(transactions),
		CategoryTotals:   make(map[string]float64),
	}

	for _, t := range transactions {
		agg.TotalSpent += t.Amount
		agg.CategoryTotals[t.CategoryOrDefault()] += t.Amount
	}

	agg.TopCategories = topCategories(agg.CategoryTotals, topCategoryCount)

	n := recentSampleSize
	if len(transactions) < n {
		n = len(transactions)
	}
	agg.Recent = transactions[:n]

	return agg
}

// topCategories returns up to n categories sorted by summed amount
// descending. Ties keep a stable but unspecified relative order.
func topCategories(totals map[string]float64, n int) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, CategoryTotal{Name: name, Total: total})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
