// Package catalog indexes parsed feature files into the sqlite catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chriserin/gherk/internal/parser"
)

type State string

const (
	StateNew     State = "new"
	StateUpdated State = "upd"
	StateError   State = "err"
)

// Result is the outcome of syncing one file.
type Result struct {
	Path      string
	State     State
	Scenarios int
	Err       error
}

// Options configures Sync.
type Options struct {
	Workers int
	Parse   []parser.Option
	Logger  *zap.Logger
}

type parsedFile struct {
	content []byte
	feature *parser.Feature
	err     error
}

// Sync parses paths concurrently and stores each feature, in path order,
// replacing what was stored for that file before. Files that fail to parse
// keep their previous rows and are reported with StateError.
func Sync(ctx context.Context, sqlDB *sql.DB, paths []string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	parsed := make([]parsedFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			f, err := parser.Parse(path, content, opts.Parse...)
			parsed[i] = parsedFile{content: content, feature: f, err: err}
			logger.Debug("parsed feature file",
				zap.String("path", path),
				zap.Duration("duration", time.Since(start)),
				zap.Bool("ok", err == nil))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for i, path := range paths {
		p := parsed[i]
		if p.err != nil {
			logger.Warn("skipping unparsable feature file", zap.String("path", path), zap.Error(p.err))
			results = append(results, Result{Path: path, State: StateError, Err: p.err})
			continue
		}

		pf := parser.Transform(p.feature, p.content)
		state, err := store(ctx, sqlDB, path, pf)
		if err != nil {
			return nil, fmt.Errorf("storing %s: %w", path, err)
		}
		logger.Debug("stored feature file", zap.String("path", path), zap.Int("scenarios", len(pf.Scenarios)))
		results = append(results, Result{Path: path, State: state, Scenarios: len(pf.Scenarios)})
	}
	return results, nil
}

func store(ctx context.Context, sqlDB *sql.DB, path string, pf *parser.ParsedFile) (State, error) {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	state := StateUpdated
	var fileID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM files WHERE file_path = ?`, path).Scan(&fileID)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.ExecContext(ctx, `INSERT INTO files (file_path) VALUES (?)`, path)
		if err != nil {
			return "", fmt.Errorf("inserting file: %w", err)
		}
		if fileID, err = res.LastInsertId(); err != nil {
			return "", err
		}
		state = StateNew
	case err != nil:
		return "", fmt.Errorf("querying file: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE files SET updated_at = datetime('now') WHERE id = ?`, fileID); err != nil {
			return "", fmt.Errorf("touching file: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM features WHERE file_id = ?`, fileID); err != nil {
			return "", fmt.Errorf("clearing feature: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO features (file_id, name, language) VALUES (?, ?, ?)`,
		fileID, pf.Name, pf.Language)
	if err != nil {
		return "", fmt.Errorf("inserting feature: %w", err)
	}
	featureID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}

	for _, ps := range pf.Scenarios {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO scenarios (feature_id, name, kind, line, examples, content) VALUES (?, ?, ?, ?, ?, ?)`,
			featureID, ps.Name, string(ps.Kind), ps.Line, ps.Examples, ps.Content)
		if err != nil {
			return "", fmt.Errorf("inserting scenario %q: %w", ps.Name, err)
		}
		scenarioID, err := res.LastInsertId()
		if err != nil {
			return "", err
		}
		for i, tag := range ps.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO scenario_tags (scenario_id, position, tag) VALUES (?, ?, ?)`,
				scenarioID, i+1, tag); err != nil {
				return "", fmt.Errorf("inserting tag %q: %w", tag, err)
			}
		}
		for _, st := range ps.Steps {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO steps (scenario_id, position, verb, keyword, text, line) VALUES (?, ?, ?, ?, ?, ?)`,
				scenarioID, st.Position, string(st.Verb), st.Keyword, st.Text, st.Line); err != nil {
				return "", fmt.Errorf("inserting step %d: %w", st.Position, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return state, nil
}
