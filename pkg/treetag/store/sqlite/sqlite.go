package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/treetag/pkg/treetag/parse"
	"github.com/cognicore/treetag/pkg/treetag/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the
// schema initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	language TEXT NOT NULL,
	tagged_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS doc_tokens (
	doc_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	surface TEXT NOT NULL,
	tag TEXT NOT NULL,
	lemma TEXT NOT NULL,
	PRIMARY KEY(doc_id, idx),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_tokens_tag ON doc_tokens(tag);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc inserts or replaces a document and its token sequence
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, name, language, tagged_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	language=excluded.language,
	tagged_at=excluded.tagged_at
RETURNING id;
`

	var docID string
	err = tx.QueryRowContext(
		ctx,
		stmt,
		d.ID,
		d.Name,
		d.Language,
		d.TaggedAt.UTC().Format(time.RFC3339),
	).Scan(&docID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM doc_tokens WHERE doc_id = ?", docID); err != nil {
		return err
	}
	for i, tok := range d.Tokens {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO doc_tokens (doc_id, idx, surface, tag, lemma) VALUES (?, ?, ?, ?, ?)",
			docID, i, tok.Surface, tok.Tag, tok.Lemma)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDoc fetches a document and its tokens by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	return s.getDoc(ctx, "id", id)
}

// GetDocByName fetches a document and its tokens by name
func (s *sqliteStore) GetDocByName(ctx context.Context, name string) (store.Doc, bool, error) {
	return s.getDoc(ctx, "name", name)
}

func (s *sqliteStore) getDoc(ctx context.Context, col, key string) (store.Doc, bool, error) {
	var d store.Doc
	var taggedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, language, tagged_at FROM docs WHERE "+col+" = ?", key).
		Scan(&d.ID, &d.Name, &d.Language, &taggedAt)
	if err == sql.ErrNoRows {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}
	if d.TaggedAt, err = time.Parse(time.RFC3339, taggedAt); err != nil {
		return store.Doc{}, false, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT surface, tag, lemma FROM doc_tokens WHERE doc_id = ? ORDER BY idx", d.ID)
	if err != nil {
		return store.Doc{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var tok parse.Token
		if err := rows.Scan(&tok.Surface, &tok.Tag, &tok.Lemma); err != nil {
			return store.Doc{}, false, err
		}
		d.Tokens = append(d.Tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return store.Doc{}, false, err
	}

	return d, true, nil
}

// ListDocs returns all documents, newest first, without their tokens
func (s *sqliteStore) ListDocs(ctx context.Context) ([]store.DocInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT d.id, d.name, d.language, d.tagged_at, COUNT(t.doc_id)
FROM docs d LEFT JOIN doc_tokens t ON t.doc_id = d.id
GROUP BY d.id
ORDER BY d.tagged_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []store.DocInfo
	for rows.Next() {
		var info store.DocInfo
		var taggedAt string
		if err := rows.Scan(&info.ID, &info.Name, &info.Language, &taggedAt, &info.Tokens); err != nil {
			return nil, err
		}
		if info.TaggedAt, err = time.Parse(time.RFC3339, taggedAt); err != nil {
			return nil, err
		}
		docs = append(docs, info)
	}
	return docs, rows.Err()
}

// TagCounts returns the number of stored tokens per POS tag
func (s *sqliteStore) TagCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag, COUNT(*) FROM doc_tokens GROUP BY tag")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var tag string
		var n int64
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, err
		}
		counts[tag] = n
	}
	return counts, rows.Err()
}
