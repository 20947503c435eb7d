package postgres

import (
	"context"
	"errors"

	"github.com/devkartikrathi/ncfo/internal/models"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type accountsRepo struct{ pool *pgxpool.Pool }

// Balances travel as text between Postgres NUMERIC and decimal.Decimal so
// no binary floating point is involved at any point.
const accountCols = `id, user_id, name, balance::text, is_default, created_at, updated_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	var balance string
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &balance, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	a.Balance, err = decimal.NewFromString(balance)
	return a, err
}

func (r *accountsRepo) Create(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite})
	if err != nil {
		return models.Account{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE accounts SET is_default=false, updated_at=now() WHERE user_id=$1 AND is_default`,
			a.UserID,
		); err != nil {
			return models.Account{}, err
		}
	}

	created, err := scanAccount(tx.QueryRow(ctx,
		`INSERT INTO accounts(id, user_id, name, balance, is_default)
		 VALUES($1,$2,$3,$4::numeric,$5)
		 RETURNING `+accountCols,
		a.ID, a.UserID, a.Name, a.Balance.String(), a.IsDefault,
	))
	if err != nil {
		return models.Account{}, err
	}
	return created, tx.Commit(ctx)
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (models.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id=$1`, id))
}

func (r *accountsRepo) GetDefault(ctx context.Context, userID string) (models.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE user_id=$1 AND is_default`, userID))
}

func (r *accountsRepo) ListByUser(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
