package timetabledb

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by Queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New wraps a database handle in a Queries value.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the hand-written SQL for the derived-results store.
// Hot read statements are prepared once via Prepare; everything else
// executes ad hoc.
type Queries struct {
	db DBTX
	tx *sql.Tx

	getImportMetadataStmt *sql.Stmt
	getTripDirectionStmt  *sql.Stmt
}

// Prepare readies the read-path statements. Bulk write statements are
// built per batch and never prepared.
func (q *Queries) Prepare(ctx context.Context) error {
	var err error
	if q.getImportMetadataStmt, err = q.db.PrepareContext(ctx, getImportMetadata); err != nil {
		return err
	}
	if q.getTripDirectionStmt, err = q.db.PrepareContext(ctx, getTripDirection); err != nil {
		return err
	}
	return nil
}

// Close releases the prepared statements.
func (q *Queries) Close() error {
	var firstErr error
	for _, stmt := range []*sql.Stmt{q.getImportMetadataStmt, q.getTripDirectionStmt} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithTx binds the queries to a transaction. Prepared statements carry
// over and are rebound to the transaction per call.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db:                    tx,
		tx:                    tx,
		getImportMetadataStmt: q.getImportMetadataStmt,
		getTripDirectionStmt:  q.getTripDirectionStmt,
	}
}

func (q *Queries) exec(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (sql.Result, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).ExecContext(ctx, args...)
	case stmt != nil:
		return stmt.ExecContext(ctx, args...)
	default:
		return q.db.ExecContext(ctx, query, args...)
	}
}

func (q *Queries) query(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (*sql.Rows, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryContext(ctx, args...)
	default:
		return q.db.QueryContext(ctx, query, args...)
	}
}

func (q *Queries) queryRow(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) *sql.Row {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryRowContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryRowContext(ctx, args...)
	default:
		return q.db.QueryRowContext(ctx, query, args...)
	}
}
