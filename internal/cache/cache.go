// Package cache implements a content-addressed compile cache so repeated
// invocations over an unchanged source file skip re-checking (SPEC_FULL.md
// §4). It is new domain wiring — the teacher lists modernc.org/sqlite and
// google.golang.org/protobuf in go.mod without using either in source — so
// the schema and access pattern follow the plain database/sql +
// blank-imported-driver idiom modernc.org/sqlite is built for, and each
// row's timing metadata is a real (if minimal) protobuf value via the
// well-known timestamp/duration types rather than ad-hoc time encoding.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed cache keyed by the sha256 of source text.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS compile_cache (
	source_hash   TEXT PRIMARY KEY,
	tac_text      TEXT NOT NULL,
	diagnostics   TEXT NOT NULL,
	has_errors    INTEGER NOT NULL,
	compiled_at   BLOB NOT NULL,
	duration      BLOB NOT NULL
);`

// Hash returns the cache key for a source file's contents.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Entry is one cached compile outcome.
type Entry struct {
	TacText        string
	DiagnosticText string
	HasErrors      bool
	CompiledAt     time.Time
	CompileTook    time.Duration
}

// Lookup returns the cached entry for hash, if present.
func (s *Store) Lookup(ctx context.Context, hash string) (*Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT tac_text, diagnostics, has_errors, compiled_at, duration FROM compile_cache WHERE source_hash = ?`, hash)

	var tacText, diagText string
	var hasErrors int
	var compiledAtBytes, durationBytes []byte
	if err := row.Scan(&tacText, &diagText, &hasErrors, &compiledAtBytes, &durationBytes); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: lookup %s: %w", hash, err)
	}

	var compiledAt timestamppb.Timestamp
	if err := proto.Unmarshal(compiledAtBytes, &compiledAt); err != nil {
		return nil, false, fmt.Errorf("cache: decode compiled_at: %w", err)
	}
	var duration durationpb.Duration
	if err := proto.Unmarshal(durationBytes, &duration); err != nil {
		return nil, false, fmt.Errorf("cache: decode duration: %w", err)
	}
	return &Entry{
		TacText:        tacText,
		DiagnosticText: diagText,
		HasErrors:      hasErrors != 0,
		CompiledAt:     compiledAt.AsTime(),
		CompileTook:    duration.AsDuration(),
	}, true, nil
}

// Store writes an entry, overwriting any previous one for the same hash.
// Timing fields are stamped as protobuf well-known types (SPEC_FULL.md §4)
// rather than ad-hoc time encoding, each marshaled to its own column.
func (s *Store) Store(ctx context.Context, hash string, entry Entry) error {
	compiledAtBytes, err := proto.Marshal(timestamppb.New(entry.CompiledAt))
	if err != nil {
		return fmt.Errorf("cache: encode compiled_at: %w", err)
	}
	durationBytes, err := proto.Marshal(durationpb.New(entry.CompileTook))
	if err != nil {
		return fmt.Errorf("cache: encode duration: %w", err)
	}
	hasErrors := 0
	if entry.HasErrors {
		hasErrors = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO compile_cache (source_hash, tac_text, diagnostics, has_errors, compiled_at, duration) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_hash) DO UPDATE SET tac_text=excluded.tac_text, diagnostics=excluded.diagnostics, has_errors=excluded.has_errors, compiled_at=excluded.compiled_at, duration=excluded.duration`,
		hash, entry.TacText, entry.DiagnosticText, hasErrors, compiledAtBytes, durationBytes)
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", hash, err)
	}
	return nil
}
