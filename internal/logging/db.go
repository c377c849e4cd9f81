package logging

import (
	"database/sql"
	"errors"
	"log/slog"
)

// SafeRollbackWithLogging rolls back a transaction in a defer. A rollback
// after a successful commit returns sql.ErrTxDone, which is expected and
// not logged.
func SafeRollbackWithLogging(tx *sql.Tx, logger *slog.Logger, operation string) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		LogError(logger, "failed_to_rollback_transaction", err,
			slog.String("operation", operation))
	}
}
