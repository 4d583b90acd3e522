package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// RunInTx runs fn as one unit of work. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics. The error
// from fn is returned unchanged so typed errors keep their code.
func RunInTx(ctx context.Context, db *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	id := uuid.New().String()
	log := logger.FromContext(ctx).ID(id)
	ctx = log.WithContext(ctx)

	err := db.RunInTx(ctx, &sql.TxOptions{}, fn)
	if err != nil {
		log.Warn("unit of work rolled back", logger.Data{"error": err.Error()})
		return err
	}
	return nil
}

// RunRead runs fn in a transaction so every query of a multi-query read sees
// one snapshot. Nothing is logged on failure.
func RunRead(ctx context.Context, db *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, fn)
}
