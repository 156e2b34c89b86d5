package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/riddler9999/recapflow/internal/job"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Journal persists one row per job so a crash between stages leaves every
// job observable at its last committed stage.
type Journal struct {
	db *sql.DB
}

// Record is the persisted slice of a job.
type Record struct {
	ID         string
	Status     job.Status
	Progress   int
	Title      string
	Genre      string
	Filename   string
	SourcePath string
	OutputPath string
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

// Open creates/migrates the journal database under dataDir.
func Open(dataDir string) (*Journal, error) {
	registerHook()

	dbPath := filepath.Join(dataDir, "jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection: WAL allows concurrent reads but only one writer.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Journal{db: db}, nil
}

// Upsert writes the job's committed state.
func (j *Journal) Upsert(ctx context.Context, rec Record) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO jobs (id, status, progress, title, genre, filename, source_path, output_path, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			progress = excluded.progress,
			output_path = excluded.output_path,
			error = excluded.error,
			updated_at = excluded.updated_at`,
		rec.ID, string(rec.Status), rec.Progress, rec.Title, rec.Genre,
		rec.Filename, rec.SourcePath, rec.OutputPath, rec.Error,
		rec.CreatedAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert job %s: %w", rec.ID, err)
	}
	return nil
}

// Load returns every persisted job record.
func (j *Journal) Load(ctx context.Context) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, status, progress, title, genre, filename, source_path, output_path, error, created_at, updated_at
		FROM jobs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var status string
		if err := rows.Scan(&rec.ID, &status, &rec.Progress, &rec.Title, &rec.Genre,
			&rec.Filename, &rec.SourcePath, &rec.OutputPath, &rec.Error,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		rec.Status = job.Status(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
