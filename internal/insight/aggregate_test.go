package insight

import (
	"math"
	"strings"
	"testing"

	"github.com/finsight-app/finsight/internal/domain"
)

func tx(description, category string, amount float64) *domain.Transaction {
	return &domain.Transaction{
		Description: description,
		Category:    category,
		Amount:      amount,
	}
}

func TestAggregateSignedTotal(t *testing.T) {
	transactions := []*domain.Transaction{
		tx("salary", "Income", 85000),
		tx("rent", "Housing", -28000),
		tx("dinner", "Food", -642.50),
		tx("refund", "Shopping", 1899),
	}

	agg := Aggregate(transactions)

	want := 85000 - 28000 - 642.50 + 1899
	if math.Abs(agg.TotalSpent-want) > 1e-9 {
		t.Errorf("TotalSpent = %v, want %v", agg.TotalSpent, want)
	}
	if agg.TransactionCount != 4 {
		t.Errorf("TransactionCount = %d, want 4", agg.TransactionCount)
	}
}

func TestAggregateCategorySumsPartitionTotal(t *testing.T) {
	transactions := []*domain.Transaction{
		tx("a", "Food", -100),
		tx("b", "Food", -250.25),
		tx("c", "", -75.75),
		tx("d", "Transport", -12),
		tx("e", "", 500),
	}

	agg := Aggregate(transactions)

	var sumOfCategories float64
	for _, v := range agg.CategoryTotals {
		sumOfCategories += v
	}
	if math.Abs(sumOfCategories-agg.TotalSpent) > 1e-9 {
		t.Errorf("sum of category sums = %v, want TotalSpent = %v", sumOfCategories, agg.TotalSpent)
	}

	uncategorized, ok := agg.CategoryTotals[domain.UncategorizedLabel]
	if !ok {
		t.Fatal("expected Uncategorized bucket for transactions without category")
	}
	if math.Abs(uncategorized-(-75.75+500)) > 1e-9 {
		t.Errorf("Uncategorized sum = %v, want %v", uncategorized, -75.75+500)
	}
}

func TestTopCategoriesSelection(t *testing.T) {
	transactions := []*domain.Transaction{
		tx("a", "A", 500),
		tx("b", "B", 300),
		tx("c", "C", 300),
		tx("d", "D", 100),
	}

	agg := Aggregate(transactions)

	if len(agg.TopCategories) != 3 {
		t.Fatalf("TopCategories length = %d, want 3", len(agg.TopCategories))
	}

	names := make(map[string]bool)
	for _, c := range agg.TopCategories {
		names[c.Name] = true
	}

	if !names["A"] {
		t.Error("expected A in top categories")
	}
	if names["D"] {
		t.Error("did not expect D in top categories")
	}
	// B and C tie at 300; either order is fine but both must be present
	// since only one other slot competes with them.
	if !names["B"] || !names["C"] {
		t.Errorf("expected both B and C in top categories, got %v", names)
	}

	if agg.TopCategories[0].Name != "A" {
		t.Errorf("top category = %s, want A", agg.TopCategories[0].Name)
	}
}

func TestAggregateRecentSampleCap(t *testing.T) {
	var transactions []*domain.Transaction
	for i := 0; i < 8; i++ {
		transactions = append(transactions, tx("t", "Food", -1))
	}

	agg := Aggregate(transactions)
	if len(agg.Recent) != recentSampleSize {
		t.Errorf("Recent length = %d, want %d", len(agg.Recent), recentSampleSize)
	}

	short := Aggregate(transactions[:2])
	if len(short.Recent) != 2 {
		t.Errorf("Recent length = %d, want 2", len(short.Recent))
	}
}

func TestBuildPromptIsBounded(t *testing.T) {
	transactions := []*domain.Transaction{
		tx("first", "Food", -100),
		tx("second", "Food", -200),
		tx("third", "Travel", -300),
		tx("fourth", "Travel", -400),
		tx("fifth", "Misc", -500),
		tx("sixth should not appear", "Misc", -600),
	}

	prompt := buildPrompt(Aggregate(transactions))

	for _, want := range []string{
		"financial analyst",
		"Total Spend:",
		"Transaction Count: 6",
		"Top Categories:",
		"Sample Transactions:",
		"first",
		"fifth",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt: %s", want, prompt)
		}
	}

	if strings.Contains(prompt, "sixth should not appear") {
		t.Error("prompt includes transactions beyond the sample cap")
	}
}
