package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"titan/internal/ledger"
)

// TopicLedger is a ledger.Ledger stored in Postgres. Each write runs in one
// transaction, so concurrent writers keep the counters consistent.
type TopicLedger struct {
	db *DB
}

// NewTopicLedger returns a ledger backed by d. Migrations must have run.
func NewTopicLedger(d *DB) *TopicLedger {
	return &TopicLedger{db: d}
}

var _ ledger.Ledger = (*TopicLedger)(nil)

// Usage reads the whole ledger in a single read-only transaction.
func (l *TopicLedger) Usage(ctx context.Context) (ledger.Usage, error) {
	tx, err := l.db.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return ledger.Usage{}, persistenceErr("load", err)
	}
	defer tx.Rollback(ctx)

	u := ledger.Usage{ByCategory: make(map[string]int)}

	rows, err := tx.Query(ctx, `SELECT category, count FROM category_usage`)
	if err != nil {
		return ledger.Usage{}, persistenceErr("load", err)
	}
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			rows.Close()
			return ledger.Usage{}, persistenceErr("load", err)
		}
		u.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return ledger.Usage{}, persistenceErr("load", err)
	}

	rows, err = tx.Query(ctx, `SELECT keyword FROM topic_usage ORDER BY id ASC`)
	if err != nil {
		return ledger.Usage{}, persistenceErr("load", err)
	}
	u.Used, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return ledger.Usage{}, persistenceErr("load", err)
	}

	var (
		lastCategory *string
		lastUpdate   *time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT total_generated, last_category, last_update
		FROM ledger_state WHERE id = 1
	`).Scan(&u.TotalGenerated, &lastCategory, &lastUpdate)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Usage{}, persistenceErr("load", ErrLedgerStateMissing)
	}
	if err != nil {
		return ledger.Usage{}, persistenceErr("load", err)
	}
	if lastCategory != nil {
		u.LastCategory = *lastCategory
	}
	if lastUpdate != nil {
		u.LastUpdate = *lastUpdate
	}

	return u, nil
}

// Record marks keyword as used. A keyword already present keeps its original
// position; the counters are still incremented.
func (l *TopicLedger) Record(ctx context.Context, keyword, category string, at time.Time) error {
	tx, err := l.db.Pool.Begin(ctx)
	if err != nil {
		return persistenceErr("save", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO topic_usage (keyword, category, used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (keyword) DO NOTHING
	`, ledger.Normalize(keyword), category, at); err != nil {
		return persistenceErr("save", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO category_usage (category, count)
		VALUES ($1, 1)
		ON CONFLICT (category) DO UPDATE SET count = category_usage.count + 1
	`, category); err != nil {
		return persistenceErr("save", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE ledger_state
		SET total_generated = total_generated + 1, last_category = $1, last_update = $2
		WHERE id = 1
	`, category, at)
	if err != nil {
		return persistenceErr("save", err)
	}
	if tag.RowsAffected() == 0 {
		return persistenceErr("save", ErrLedgerStateMissing)
	}

	if err := tx.Commit(ctx); err != nil {
		return persistenceErr("save", err)
	}
	return nil
}

// ResetCategory deletes used keywords containing category.
func (l *TopicLedger) ResetCategory(ctx context.Context, category string) (int, error) {
	tag, err := l.db.Pool.Exec(ctx, `
		DELETE FROM topic_usage WHERE strpos(keyword, $1) > 0
	`, ledger.Normalize(category))
	if err != nil {
		return 0, persistenceErr("reset", err)
	}
	return int(tag.RowsAffected()), nil
}
