// Command migrate applies the BigQuery schema migrations for the three
// dashboard collections. Migration files live in migrations/bigquery as
// NNNN_name.sql; applied versions are tracked in a schema_migrations table
// so re-running the tool is safe.
package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

type migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

var (
	projectID     = flag.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID (or set GCP_PROJECT)")
	datasetID     = flag.String("dataset", "finsight", "BigQuery dataset ID")
	migrationsDir = flag.String("migrations", "migrations/bigquery", "Path to migrations directory")
)

var filePattern = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

func main() {
	flag.Parse()

	if *projectID == "" {
		log.Fatal("Error: -project flag or GCP_PROJECT is required.")
	}

	ctx := context.Background()

	client, err := bigquery.NewClient(ctx, *projectID)
	if err != nil {
		log.Fatalf("Failed to create BigQuery client: %v", err)
	}
	defer client.Close()

	log.Printf("Connected to BigQuery project: %s, dataset: %s", *projectID, *datasetID)

	if err := ensureSchemaMigrationsTable(ctx, client); err != nil {
		log.Fatalf("Failed to ensure schema_migrations table: %v", err)
	}

	migrations, err := readMigrations(*migrationsDir)
	if err != nil {
		log.Fatalf("Failed to read migrations: %v", err)
	}

	applied, err := appliedVersions(ctx, client)
	if err != nil {
		log.Fatalf("Failed to get applied migrations: %v", err)
	}

	appliedCount := 0
	for _, m := range migrations {
		if applied[m.Version] {
			log.Printf("  [SKIP] %04d_%s (already applied)", m.Version, m.Name)
			continue
		}

		log.Printf("  [RUN]  %04d_%s", m.Version, m.Name)

		if err := runStatement(ctx, client, m.SQL); err != nil {
			log.Fatalf("Failed to execute migration %04d_%s: %v", m.Version, m.Name, err)
		}
		if err := recordMigration(ctx, client, m); err != nil {
			log.Fatalf("Failed to record migration %04d_%s: %v", m.Version, m.Name, err)
		}

		log.Printf("  [OK]   %04d_%s", m.Version, m.Name)
		appliedCount++
	}

	if appliedCount == 0 {
		log.Println("No new migrations to apply. Database is up to date.")
	} else {
		log.Printf("Successfully applied %d migration(s)", appliedCount)
	}
}

func ensureSchemaMigrationsTable(ctx context.Context, client *bigquery.Client) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS `+"`%s.%s.schema_migrations`"+` (
			version    INT64 NOT NULL,
			name       STRING NOT NULL,
			applied_at TIMESTAMP NOT NULL,
			checksum   STRING
		)
	`, *projectID, *datasetID)
	return runStatement(ctx, client, sql)
}

func readMigrations(dir string) ([]migration, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		// Allow running from cmd/migrate during development.
		dir = filepath.Join("..", "..", dir)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil, fmt.Errorf("migrations directory not found: %s", *migrationsDir)
		}
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []migration
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		matches := filePattern.FindStringSubmatch(file.Name())
		if matches == nil {
			log.Printf("Skipping file with invalid format: %s", file.Name())
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			log.Printf("Skipping file with invalid version: %s", file.Name())
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", file.Name(), err)
		}

		sql := string(content)
		sql = strings.ReplaceAll(sql, "{{PROJECT_ID}}", *projectID)
		sql = strings.ReplaceAll(sql, "{{DATASET_ID}}", *datasetID)

		migrations = append(migrations, migration{
			Version: version,
			Name:    matches[2],
			SQL:     sql,
			// Checksum is taken over the raw content so switching
			// project/dataset does not register as a change.
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func appliedVersions(ctx context.Context, client *bigquery.Client) (map[int]bool, error) {
	sql := fmt.Sprintf(`
		SELECT version
		FROM `+"`%s.%s.schema_migrations`"+`
		ORDER BY version ASC
	`, *projectID, *datasetID)

	it, err := client.Query(sql).Read(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "Not found") {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}

	applied := make(map[int]bool)
	for {
		var row struct {
			Version int64
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating results: %w", err)
		}
		applied[int(row.Version)] = true
	}

	return applied, nil
}

func recordMigration(ctx context.Context, client *bigquery.Client, m migration) error {
	sql := fmt.Sprintf(`
		INSERT INTO `+"`%s.%s.schema_migrations`"+` (version, name, applied_at, checksum)
		VALUES (@version, @name, @applied_at, @checksum)
	`, *projectID, *datasetID)

	q := client.Query(sql)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "version", Value: m.Version},
		{Name: "name", Value: m.Name},
		{Name: "applied_at", Value: time.Now().UTC()},
		{Name: "checksum", Value: m.Checksum},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	return status.Err()
}

func runStatement(ctx context.Context, client *bigquery.Client, sql string) error {
	job, err := client.Query(sql).Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	return status.Err()
}
