package main

import (
	"context"
	"database/sql"
	"time"

	buddyservice "peopledesk/internal/buddy/service"
	pairstore "peopledesk/internal/buddy/store/pair"
	touchpointstore "peopledesk/internal/buddy/store/touchpoint"
	dErrors "peopledesk/pkg/domain-errors"
)

const defaultBuddyTxTimeout = 5 * time.Second

// buddyPostgresTx runs coordinator callbacks inside one database
// transaction, handing tx-bound pair and touchpoint stores to the callback.
type buddyPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newBuddyPostgresTx(db *sql.DB) *buddyPostgresTx {
	return &buddyPostgresTx{db: db}
}

func (t *buddyPostgresTx) RunInTx(ctx context.Context, fn func(stores buddyservice.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultBuddyTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stores := buddyservice.Stores{
		Pairs:       pairstore.NewPostgresTx(tx),
		Touchpoints: touchpointstore.NewPostgresTx(tx),
	}
	if err := fn(stores); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
