package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Postgres stores one collection of documents in a (key text, doc jsonb)
// table. Single-document updates are serialized by the row lock; concurrent
// read-modify-write across two sessions can still lose an update, which is
// the accepted behavior for this store.
type Postgres struct {
	db    *pgxpool.Pool
	table string
}

// NewPostgres binds a collection to a table created by the migrations.
func NewPostgres(db *pgxpool.Pool, table string) (*Postgres, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("docstore: invalid table name %q", table)
	}
	return &Postgres{db: db, table: table}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc []byte
	q := fmt.Sprintf(`SELECT doc FROM %s WHERE key = $1`, p.table)
	if err := p.db.QueryRow(ctx, q, key).Scan(&doc); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Upsert merges top-level fields of doc into the stored document, creating
// it when absent. jsonb concatenation gives the merge semantics.
func (p *Postgres) Upsert(ctx context.Context, key string, doc json.RawMessage) error {
	q := fmt.Sprintf(`
		INSERT INTO %s (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = %s.doc || EXCLUDED.doc`,
		p.table, p.table)
	_, err := p.db.Exec(ctx, q, key, []byte(doc))
	return err
}

func (p *Postgres) UpdateField(ctx context.Context, key, field string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE %s SET doc = jsonb_set(doc, ARRAY[$2], $3::jsonb, true) WHERE key = $1`, p.table)
	tag, err := p.db.Exec(ctx, q, key, field, b)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document. Deleting an absent document is a no-op.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table)
	_, err := p.db.Exec(ctx, q, key)
	return err
}
