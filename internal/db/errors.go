package db

import (
	"errors"

	"titan/internal/ledger"
)

// ErrLedgerStateMissing means the ledger_state row is gone, usually because
// migrations have not been applied.
var ErrLedgerStateMissing = errors.New("ledger state row missing")

// storeName identifies the Postgres ledger in persistence errors.
const storeName = "postgres"

func persistenceErr(op string, err error) error {
	return &ledger.PersistenceError{Op: op, Path: storeName, Err: err}
}
