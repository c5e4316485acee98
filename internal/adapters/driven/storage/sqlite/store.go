package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
)

// DatabaseFile is the database file inside the data directory.
const DatabaseFile = "records.db"

// Store is a SQLite-based storage for records of every resource type.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.projector/data/records.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".projector", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  func() time.Time { return time.Now().UTC() },
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" is version 1.
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

// Save stores or replaces a record and all of its refs.
func (s *recordStore) Save(ctx context.Context, rec *domain.Record) error {
	if rec == nil || rec.Type == "" || rec.ID == "" {
		return domain.ErrInvalidInput
	}

	attrs := rec.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("marshalling attributes: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.store.now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (type, id, discriminator, attributes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(type, id) DO UPDATE SET
			discriminator = excluded.discriminator,
			attributes = excluded.attributes,
			updated_at = excluded.updated_at
	`, rec.Type, rec.ID, null.NewString(rec.Discriminator, rec.Discriminator != ""),
		string(attrsJSON), now, now)
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM refs WHERE owner_type = ? AND owner_id = ?`, rec.Type, rec.ID); err != nil {
		return fmt.Errorf("clearing refs: %w", err)
	}

	fields := make([]string, 0, len(rec.Refs))
	for field := range rec.Refs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for pos, ref := range rec.Refs[field] {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO refs (owner_type, owner_id, field, position, target_type, target_id)
				VALUES (?, ?, ?, ?, ?, ?)
			`, rec.Type, rec.ID, field, pos, null.NewString(ref.Type, ref.Type != ""), ref.ID)
			if err != nil {
				return fmt.Errorf("saving ref %s[%d]: %w", field, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing record: %w", err)
	}
	return nil
}

// Get retrieves a record by type and id.
func (s *recordStore) Get(ctx context.Context, typ, id string) (*domain.Record, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT type, id, discriminator, attributes FROM records WHERE type = ? AND id = ?
	`, typ, id)

	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}

	byOwner, err := s.refs(ctx, typ, []string{id})
	if err != nil {
		return nil, err
	}
	if refs, ok := byOwner[id]; ok {
		rec.Refs = refs
	}
	return rec, nil
}

// List returns the records matching q, ordered by id.
func (s *recordStore) List(ctx context.Context, q domain.Query) ([]domain.Record, error) {
	where, args := whereClause(q)
	query := `SELECT type, id, discriminator, attributes FROM records` + where +
		` ORDER BY length(id), id`
	switch {
	case q.Limit > 0:
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.Limit, q.Offset)
	case q.Offset > 0:
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, q.Offset)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	byOwner, err := s.refs(ctx, q.Type, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if refs, ok := byOwner[records[i].ID]; ok {
			records[i].Refs = refs
		}
	}
	return records, nil
}

// Count returns how many records match q, ignoring offset and limit.
func (s *recordStore) Count(ctx context.Context, q domain.Query) (int, error) {
	where, args := whereClause(q)

	var count int
	if err := s.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// Delete removes a record. Its refs cascade.
func (s *recordStore) Delete(ctx context.Context, typ, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM records WHERE type = ? AND id = ?`, typ, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// refs loads the refs of the given owners, keyed by owner id then field.
func (s *recordStore) refs(ctx context.Context, typ string, ids []string) (map[string]map[string][]domain.Ref, error) {
	args := make([]any, 0, len(ids)+1)
	args = append(args, typ)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT owner_id, field, target_type, target_id FROM refs
		WHERE owner_type = ? AND owner_id IN (`+placeholders(len(ids))+`)
		ORDER BY owner_id, field, position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying refs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string][]domain.Ref)
	for rows.Next() {
		var ownerID, field, targetID string
		var targetType null.String
		if err := rows.Scan(&ownerID, &field, &targetType, &targetID); err != nil {
			return nil, fmt.Errorf("scanning ref: %w", err)
		}
		fields, ok := out[ownerID]
		if !ok {
			fields = make(map[string][]domain.Ref)
			out[ownerID] = fields
		}
		fields[field] = append(fields[field], domain.Ref{Type: targetType.String, ID: targetID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refs: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var discriminator null.String
	var attrsJSON string
	if err := row.Scan(&rec.Type, &rec.ID, &discriminator, &attrsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	rec.Discriminator = discriminator.String

	dec := json.NewDecoder(bytes.NewReader([]byte(attrsJSON)))
	dec.UseNumber()
	if err := dec.Decode(&rec.Attributes); err != nil {
		return nil, fmt.Errorf("unmarshalling attributes of %s: %w", rec.Ref().Key(), err)
	}
	return &rec, nil
}

func whereClause(q domain.Query) (string, []any) {
	clauses := []string{"type = ?"}
	args := []any{q.Type}

	if len(q.ExcludeIDs) > 0 {
		clauses = append(clauses, "id NOT IN ("+placeholders(len(q.ExcludeIDs))+")")
		for _, id := range q.ExcludeIDs {
			args = append(args, id)
		}
	}
	if len(q.Discriminators) > 0 {
		clauses = append(clauses, "discriminator IN ("+placeholders(len(q.Discriminators))+")")
		for _, d := range q.Discriminators {
			args = append(args, d)
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
