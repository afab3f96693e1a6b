package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelier/infras/postgres"
)

const (
	queryReadDocument = `SELECT version, body FROM record_documents WHERE name = $1`

	queryInsertDocument = `INSERT INTO record_documents (name, version, body, modified_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (name) DO NOTHING`

	queryUpdateDocument = `UPDATE record_documents
SET version = $2, body = $3, modified_at = NOW()
WHERE name = $1 AND version = $4`
)

type documentRow struct {
	Version int64  `db:"version"`
	Body    []byte `db:"body"`
}

type postgresBackend struct {
	db   *postgres.Connection
	name string
}

// NewPostgresBackend keeps the document as one row of record_documents, guarded by its version column.
func NewPostgresBackend(db *postgres.Connection, name string) Backend {
	return &postgresBackend{db: db, name: name}
}

func (p *postgresBackend) ReadDocument(ctx context.Context) (*Document, error) {
	var row documentRow

	// Read from the write pool so a mutation never starts from a lagging replica.
	err := p.db.Write.GetContext(ctx, &row, queryReadDocument, p.name)
	if errors.Is(err, sql.ErrNoRows) {
		return NewDocument(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to select record document: %w", err)
	}

	doc, err := Decode(row.Body)
	if err != nil {
		return nil, err
	}

	doc.Version = row.Version

	return doc, nil
}

func (p *postgresBackend) WriteDocument(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	var result sql.Result
	if doc.Version == 0 {
		result, err = p.db.Write.ExecContext(ctx, queryInsertDocument, p.name, doc.Version+1, data)
	} else {
		result, err = p.db.Write.ExecContext(ctx, queryUpdateDocument, p.name, doc.Version+1, data, doc.Version)
	}

	if err != nil {
		return fmt.Errorf("failed to write record document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrVersionConflict
	}

	doc.Version++

	return nil
}

func (p *postgresBackend) Close() error {
	return p.db.Close()
}
