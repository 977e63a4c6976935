package insight

import (
	"strconv"
	"strings"
)

// analystInstruction is the fixed instruction sent with every summary
// request. The data context is appended after it.
const analystInstruction = "You are a financial analyst. Write a concise, professional summary " +
	"(max 3 sentences) for this month's spending based on the following data. " +
	"Highlight any anomalies or major spending areas. Do not use markdown bolding."

// FallbackSummary is persisted when the completion service returns no text.
// An empty completion must not block report creation.
const FallbackSummary = "No summary generated."

// buildPrompt renders the bounded context string sent to the completion
// service: total spend, count, top categories and a capped sample of the
// most recent transactions. Raw transactions beyond the sample are never
// included, so the request size is bounded regardless of dataset size.
func buildPrompt(agg Aggregation) string {
	tops := make([]string, 0, len(agg.TopCategories))
	for _, c := range agg.TopCategories {
		tops = append(tops, c.Name+" ("+FormatINR(c.Total)+")")
	}

	samples := make([]string, 0, len(agg.Recent))
	for _, t := range agg.Recent {
		samples = append(samples, t.Description+" ("+FormatINR(t.Amount)+")")
	}

	var b strings.Builder
	b.WriteString(analystInstruction)
	b.WriteString("\n\nData:\n")
	b.WriteString("Total Spend: " + FormatINR(agg.TotalSpent) + "\n")
	b.WriteString("Transaction Count: " + strconv.Itoa(agg.TransactionCount) + "\n")
	b.WriteString("Top Categories: " + strings.Join(tops, ", ") + "\n")
	b.WriteString("Sample Transactions: " + strings.Join(samples, ", ") + "\n")
	return b.String()
}
