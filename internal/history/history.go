// Package history archives scan runs in PostgreSQL so readiness and
// finding counts can be compared across time.
package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/beadscan/internal/model"
	"github.com/groblegark/beadscan/internal/scan"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one archived scan run.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	SourceCount  int       `json:"source_count"`
	FailedCount  int       `json:"failed_count"`
	ItemCount    int       `json:"item_count"`
	ReadyCount   int       `json:"ready_count"`
	FindingCount int       `json:"finding_count"`
}

// Finding is one archived finding row. Detail holds the original finding
// serialized as JSON; Kind discriminates how to decode it.
type Finding struct {
	RunID  string          `json:"run_id"`
	Source string          `json:"source"`
	Kind   string          `json:"kind"`
	ItemID string          `json:"item_id,omitempty"`
	Detail json.RawMessage `json:"detail"`
}

// Finding kinds as stored in the findings table.
const (
	KindOrphan    = "orphan"
	KindCycle     = "cycle"
	KindStale     = "stale"
	KindMalformed = "malformed"
	KindFailure   = "load_failure"
)

// Store archives scan runs in a PostgreSQL database.
type Store struct {
	db *sql.DB
}

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun archives the run summary and every finding in one transaction.
func (s *Store) RecordRun(ctx context.Context, res *scan.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := insertRun(ctx, tx, res); err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, finding := range flattenFindings(res) {
		if err := insertFinding(ctx, tx, finding); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, elapsed_ms, source_count, failed_count,
			item_count, ready_count, finding_count
		FROM scan_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun fetches one archived run and its findings.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, []*Finding, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, elapsed_ms, source_count, failed_count,
			item_count, ready_count, finding_count
		FROM scan_runs WHERE id = $1`, runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, source, kind, item_id, detail
		FROM findings WHERE run_id = $1 ORDER BY seq`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var findings []*Finding
	for rows.Next() {
		var (
			f      Finding
			itemID sql.NullString
		)
		if err := rows.Scan(&f.RunID, &f.Source, &f.Kind, &itemID, &f.Detail); err != nil {
			return nil, nil, err
		}
		f.ItemID = itemID.String
		findings = append(findings, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return run, findings, nil
}

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRun(ctx context.Context, db executor, res *scan.Result) error {
	itemCount := 0
	findingCount := 0
	for _, report := range res.Reports() {
		itemCount += len(report.Items)
		findingCount += len(report.Orphans) + len(report.Cycles) +
			len(report.Stale) + len(report.Malformed)
	}
	failures := res.Failures()
	findingCount += len(failures)

	_, err := db.ExecContext(ctx, `
		INSERT INTO scan_runs (
			id, started_at, elapsed_ms, source_count, failed_count,
			item_count, ready_count, finding_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.RunID,
		res.StartedAt,
		res.Elapsed.Milliseconds(),
		len(res.Sources),
		len(failures),
		itemCount,
		len(res.Ready()),
		findingCount,
	)
	return err
}

func insertFinding(ctx context.Context, db executor, f *Finding) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO findings (run_id, source, kind, item_id, detail)
		VALUES ($1, $2, $3, $4, $5)`,
		f.RunID,
		f.Source,
		f.Kind,
		nullString(f.ItemID),
		[]byte(f.Detail),
	)
	return err
}

// flattenFindings turns every per-source finding in the result into a
// Finding row, in source order.
func flattenFindings(res *scan.Result) []*Finding {
	var out []*Finding
	add := func(source, kind, itemID string, detail any) {
		raw, err := json.Marshal(detail)
		if err != nil {
			raw = json.RawMessage(`{}`)
		}
		out = append(out, &Finding{
			RunID:  res.RunID,
			Source: source,
			Kind:   kind,
			ItemID: itemID,
			Detail: raw,
		})
	}

	for _, sr := range res.Sources {
		if sr.Failure != nil {
			add(sr.Source.Name, KindFailure, "", sr.Failure)
			continue
		}
		report := sr.Report
		for _, o := range report.Orphans {
			add(sr.Source.Name, KindOrphan, o.ItemID, o)
		}
		for _, c := range report.Cycles {
			itemID := ""
			if len(c.Path) > 0 {
				itemID = c.Path[0]
			}
			add(sr.Source.Name, KindCycle, itemID, c)
		}
		for _, st := range report.Stale {
			add(sr.Source.Name, KindStale, st.ItemID, st)
		}
		for _, m := range report.Malformed {
			add(sr.Source.Name, KindMalformed, m.ItemID, m)
		}
	}
	return out
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	err := row.Scan(
		&r.ID,
		&r.StartedAt,
		&r.ElapsedMS,
		&r.SourceCount,
		&r.FailedCount,
		&r.ItemCount,
		&r.ReadyCount,
		&r.FindingCount,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// DecodeFinding decodes a Finding's detail into its typed form based on Kind.
func DecodeFinding(f *Finding) (any, error) {
	decode := func(v any) (any, error) {
		if err := json.Unmarshal(f.Detail, v); err != nil {
			return nil, fmt.Errorf("decode %s finding: %w", f.Kind, err)
		}
		return v, nil
	}
	switch f.Kind {
	case KindOrphan:
		return decode(&model.OrphanEdge{})
	case KindCycle:
		return decode(&model.Cycle{})
	case KindStale:
		return decode(&model.StaleClaim{})
	case KindMalformed:
		return decode(&model.MalformedRecord{})
	case KindFailure:
		return decode(&model.LoadFailure{})
	default:
		return nil, fmt.Errorf("unknown finding kind %q", f.Kind)
	}
}
