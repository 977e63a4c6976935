// Command seed inserts a small set of sample transactions so the dashboard
// has data to show during local development. It writes through the same
// store gateway the API uses.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"

	"github.com/finsight-app/finsight/internal/config"
	"github.com/finsight-app/finsight/internal/domain"
	"github.com/finsight-app/finsight/internal/infra/bigquery"
	"github.com/finsight-app/finsight/internal/logger"
)

type sample struct {
	daysAgo     int
	description string
	merchant    string
	amount      float64
	category    string
	anomaly     bool
}

var samples = []sample{
	{1, "UPI/SWIGGY/Dinner order", "Swiggy", -642.50, "Food & Dining", false},
	{2, "NEFT salary credit", "", 85000, "Income", false},
	{3, "UPI/BIGBASKET/Groceries", "BigBasket", -3214.00, "Groceries", false},
	{4, "Card payment AMAZON", "Amazon", -1899.00, "Shopping", false},
	{5, "UPI/UBER/Airport drop", "Uber", -912.35, "Transport", false},
	{6, "ATM cash withdrawal", "", -10000, "", false},
	{8, "Card payment CROMA electronics", "Croma", -45990.00, "Shopping", true},
	{9, "UPI/ZOMATO/Lunch", "Zomato", -289.00, "Food & Dining", false},
	{12, "Electricity bill autopay", "BESCOM", -2140.00, "Utilities", false},
	{15, "Rent transfer", "", -28000, "Housing", false},
}

func main() {
	cfg := config.Load()

	project := flag.String("project", cfg.GCPProject, "GCP project ID")
	dataset := flag.String("dataset", cfg.BQDataset, "BigQuery dataset ID")
	flag.Parse()

	log := logger.New()

	ctx := context.Background()
	client, err := bigquery.NewClient(ctx, *project, *dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create store client")
	}
	defer client.Close()

	now := time.Now().UTC()
	rows := make([]*domain.Transaction, 0, len(samples))
	for _, s := range samples {
		conf := 0.9
		tx := &domain.Transaction{
			ID:          uuid.New().String(),
			Date:        now.AddDate(0, 0, -s.daysAgo),
			Description: s.description,
			Merchant:    s.merchant,
			Amount:      s.amount,
			Category:    s.category,
			IsAnomaly:   s.anomaly,
			CreatedAt:   now,
		}
		if s.category != "" {
			tx.ConfidenceScore = &conf
		}
		rows = append(rows, tx)
	}

	if err := client.InsertTransactions(ctx, rows); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert sample transactions")
	}

	log.Info().Int("count", len(rows)).Msg("Sample transactions inserted")
}
