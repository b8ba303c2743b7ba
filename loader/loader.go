// Package loader applies generated scripts to a SQLite database file, the
// way `sqlite3 quilombolas.db < schema.sql` would.
package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	_ "modernc.org/sqlite"

	"tsv2sql/telemetry"
)

// ErrAborted reports a script rolled back after too many consecutive
// statement failures.
var ErrAborted = errors.New("script aborted")

type Options struct {
	// MaxConsecutiveFailures opens the breaker and aborts the script.
	MaxConsecutiveFailures uint32
	Metrics                *telemetry.Metrics
}

// Script is a named SQL text, usually the content of schema.sql or insert.sql.
type Script struct {
	Name string
	SQL  string
}

// Result summarizes one applied script.
type Result struct {
	Script   string
	Executed int
	Failed   int
}

type Loader struct {
	db      *sql.DB
	runID   string
	opts    Options
	metrics *telemetry.Metrics
}

// Open opens (or creates) the SQLite database at path.
func Open(path string, opts Options) (*Loader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	if opts.MaxConsecutiveFailures == 0 {
		opts.MaxConsecutiveFailures = 5
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.New()
	}

	return &Loader{
		db:      db,
		runID:   uuid.NewString(),
		opts:    opts,
		metrics: metrics,
	}, nil
}

// DB exposes the underlying connection pool.
func (l *Loader) DB() *sql.DB {
	return l.db
}

func (l *Loader) RunID() string {
	return l.runID
}

func (l *Loader) Close() error {
	return l.db.Close()
}

// Load applies the scripts in order and stops at the first aborted one.
func (l *Loader) Load(ctx context.Context, scripts ...Script) ([]Result, error) {
	var results []Result
	for _, s := range scripts {
		res, err := l.Apply(ctx, s)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Apply runs every statement of s inside one transaction. A failing
// statement is logged and skipped, like the sqlite3 shell does without
// -bail. Once MaxConsecutiveFailures statements fail in a row the breaker
// opens, the transaction is rolled back and ErrAborted is returned.
func (l *Loader) Apply(ctx context.Context, s Script) (Result, error) {
	res := Result{Script: s.Name}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("%s: failed to begin transaction: %w", s.Name, err)
	}

	limit := l.opts.MaxConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: s.Name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
		OnStateChange: l.metrics.OnCircuitBreakerStateChange,
	})

	log.Printf("load %s: applying %s", l.runID, s.Name)
	for _, stmt := range SplitStatements(s.SQL) {
		_, err := cb.Execute(func() (interface{}, error) {
			return tx.ExecContext(ctx, stmt)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				tx.Rollback()
				return res, fmt.Errorf("%s: %w", s.Name, ctxErr)
			}
			res.Failed++
			l.metrics.Statements.WithLabelValues(s.Name, "failed").Inc()
			log.Printf("load %s: %s: %v", l.runID, s.Name, err)

			if cb.State() == gobreaker.StateOpen {
				tx.Rollback()
				return res, fmt.Errorf("%s: %w after %d consecutive failures", s.Name, ErrAborted, limit)
			}
			continue
		}
		res.Executed++
		l.metrics.Statements.WithLabelValues(s.Name, "ok").Inc()
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("%s: failed to commit: %w", s.Name, err)
	}
	return res, nil
}
