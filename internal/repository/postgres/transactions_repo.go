package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/devkartikrathi/ncfo/internal/models"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txnCols = `id, account_id, user_id, type, amount::text, category, date, description,
	is_recurring, recurring_interval, next_recurring_date, created_at`

func scanTxn(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	var amount string
	err := row.Scan(&t.ID, &t.AccountID, &t.UserID, &t.Type, &amount, &t.Category, &t.Date,
		&t.Description, &t.IsRecurring, &t.RecurringInterval, &t.NextRecurringDate, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, repo.ErrNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}
	t.Amount, err = decimal.NewFromString(amount)
	return t, err
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return scanTxn(r.pool.QueryRow(ctx,
		`SELECT `+txnCols+` FROM transactions WHERE id=$1`, id))
}

func (r *transactionsRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnCols+` FROM transactions
		  WHERE account_id=$1
		  ORDER BY date DESC, created_at DESC
		  LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTxns(rows)
}

func (r *transactionsRepo) ListDueRecurring(ctx context.Context, asOf time.Time, limit int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnCols+` FROM transactions
		  WHERE is_recurring AND next_recurring_date <= $1
		  ORDER BY next_recurring_date
		  LIMIT $2`,
		asOf, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTxns(rows)
}

func collectTxns(rows pgx.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// WithTx runs fn inside one serializable database transaction.
func (r *transactionsRepo) WithTx(ctx context.Context, fn func(repo.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(&pgTx{tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// pgTx adapts a pgx transaction to the repository.Tx unit of work.
type pgTx struct{ tx pgx.Tx }

func (t *pgTx) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists)
	return exists, err
}

func (t *pgTx) GetAccountForUpdate(ctx context.Context, accountID string) (models.Account, error) {
	return scanAccount(t.tx.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id=$1 FOR UPDATE`, accountID))
}

func (t *pgTx) InsertTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	return scanTxn(t.tx.QueryRow(ctx,
		`INSERT INTO transactions(
		    id, account_id, user_id, type, amount, category, date, description,
		    is_recurring, recurring_interval, next_recurring_date)
		 VALUES($1,$2,$3,$4,$5::numeric,$6,$7,$8,$9,$10,$11)
		 RETURNING `+txnCols,
		txn.ID, txn.AccountID, txn.UserID, txn.Type, txn.Amount.String(), txn.Category,
		txn.Date, txn.Description, txn.IsRecurring, txn.RecurringInterval, txn.NextRecurringDate,
	))
}

func (t *pgTx) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE accounts SET balance=$2::numeric, updated_at=now() WHERE id=$1`,
		accountID, balance.String())
	return err
}

func (t *pgTx) SetNextRecurringDate(ctx context.Context, txnID string, next time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE transactions SET next_recurring_date=$2 WHERE id=$1`,
		txnID, next)
	return err
}
