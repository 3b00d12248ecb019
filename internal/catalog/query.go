package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/chriserin/gherk/internal/parser"
)

var ErrNotFound = errors.New("scenario not found")

// Entry is one indexed scenario, background or outline.
type Entry struct {
	ID       int64
	Path     string
	Feature  string
	Name     string
	Kind     parser.Kind
	Line     int
	Examples int
	Steps    int
	Tags     []string
	Content  string
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Tag  string // with or without the leading "@"
	Kind parser.Kind
}

const entryColumns = `
	SELECT s.id, f.file_path, ft.name, s.name, s.kind, s.line, s.examples, s.content,
		(SELECT COUNT(*) FROM steps st WHERE st.scenario_id = s.id)
	FROM scenarios s
	JOIN features ft ON s.feature_id = ft.id
	JOIN files f ON ft.file_id = f.id`

// List returns the matching entries ordered by file path and line.
func List(ctx context.Context, sqlDB *sql.DB, filter Filter) ([]Entry, error) {
	tag := strings.TrimPrefix(filter.Tag, "@")
	rows, err := sqlDB.QueryContext(ctx, entryColumns+`
		WHERE (? = '' OR s.kind = ?)
		  AND (? = '' OR EXISTS (SELECT 1 FROM scenario_tags t WHERE t.scenario_id = s.id AND t.tag = ?))
		ORDER BY f.file_path, s.line`,
		string(filter.Kind), string(filter.Kind), tag, tag)
	if err != nil {
		return nil, fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	if err := attachTags(ctx, sqlDB, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Lookup returns the entry with the given id.
func Lookup(ctx context.Context, sqlDB *sql.DB, id int64) (*Entry, error) {
	row := sqlDB.QueryRowContext(ctx, entryColumns+` WHERE s.id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying scenario %d: %w", id, err)
	}
	entries := []Entry{e}
	if err := attachTags(ctx, sqlDB, entries); err != nil {
		return nil, err
	}
	return &entries[0], nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var kind string
	err := s.Scan(&e.ID, &e.Path, &e.Feature, &e.Name, &kind, &e.Line, &e.Examples, &e.Content, &e.Steps)
	e.Kind = parser.Kind(kind)
	return e, err
}

func attachTags(ctx context.Context, sqlDB *sql.DB, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	index := make(map[int64]int, len(entries))
	for i, e := range entries {
		index[e.ID] = i
	}

	rows, err := sqlDB.QueryContext(ctx, `SELECT scenario_id, tag FROM scenario_tags ORDER BY scenario_id, position`)
	if err != nil {
		return fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}
		if i, ok := index[id]; ok {
			entries[i].Tags = append(entries[i].Tags, tag)
		}
	}
	return rows.Err()
}

// TagCount is the number of scenarios carrying a tag.
type TagCount struct {
	Tag   string
	Count int
}

// Stats summarizes the catalog.
type Stats struct {
	Files int
	Kinds map[parser.Kind]int
	Steps int
	Tags  []TagCount
}

// Summarize counts files, units per kind, steps and tags.
func Summarize(ctx context.Context, sqlDB *sql.DB) (*Stats, error) {
	st := &Stats{Kinds: map[parser.Kind]int{}}

	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM features`).Scan(&st.Files); err != nil {
		return nil, fmt.Errorf("counting features: %w", err)
	}
	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM steps`).Scan(&st.Steps); err != nil {
		return nil, fmt.Errorf("counting steps: %w", err)
	}

	rows, err := sqlDB.QueryContext(ctx, `SELECT kind, COUNT(*) FROM scenarios GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting scenarios: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning kind count: %w", err)
		}
		st.Kinds[parser.Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := sqlDB.QueryContext(ctx, `
		SELECT tag, COUNT(DISTINCT scenario_id) AS cnt
		FROM scenario_tags
		GROUP BY tag
		ORDER BY cnt DESC, tag`)
	if err != nil {
		return nil, fmt.Errorf("counting tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tc TagCount
		if err := tagRows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		st.Tags = append(st.Tags, tc)
	}
	return st, tagRows.Err()
}
