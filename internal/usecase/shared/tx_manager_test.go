//go:build unit

package shared_test

import (
	"context"
	"testing"

	sqlc "request-hub/internal/infra/sqlc/generated"
	"request-hub/internal/pkg/errs"
	"request-hub/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records commit/rollback; every other pgx.Tx method is unused here.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs      []*fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestTxRunner_Within(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db := &fakeBeginner{}

		err := shared.NewTxRunner(db).Within(context.Background(), func(ctx context.Context, tx sqlc.DBTX) error {
			assert.NotNil(t, tx)
			return nil
		})

		require.NoError(t, err)
		require.Len(t, db.txs, 1)
		assert.True(t, db.txs[0].committed)
		assert.False(t, db.txs[0].rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := &fakeBeginner{}

		err := shared.NewTxRunner(db).Within(context.Background(), func(context.Context, sqlc.DBTX) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		require.Len(t, db.txs, 1)
		assert.True(t, db.txs[0].rolledBack)
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		db := &fakeBeginner{}
		calls := 0

		err := shared.NewTxRunner(db).Within(context.Background(), func(context.Context, sqlc.DBTX) error {
			calls++
			if calls == 1 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		require.Len(t, db.txs, 2)
		assert.True(t, db.txs[1].committed)
	})

	t.Run("begin failure is marked", func(t *testing.T) {
		db := &fakeBeginner{beginErr: assert.AnError}

		err := shared.NewTxRunner(db).Within(context.Background(), func(context.Context, sqlc.DBTX) error {
			t.Fatal("fn must not run")
			return nil
		})

		assert.True(t, errs.Is(err, shared.ErrTransactionBegin))
	})
}
