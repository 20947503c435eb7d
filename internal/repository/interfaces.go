package repository

import (
	"context"
	"errors"
	"time"

	"github.com/devkartikrathi/ncfo/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by lookups for missing rows. Postgres
// implementations map pgx.ErrNoRows to it.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type Accounts interface {
	// Create inserts the account; when a.IsDefault is set the previous
	// default of the same owner is demoted in the same unit of work.
	Create(ctx context.Context, a models.Account) (models.Account, error)
	GetByID(ctx context.Context, id string) (models.Account, error)
	GetDefault(ctx context.Context, userID string) (models.Account, error)
	ListByUser(ctx context.Context, userID string) ([]models.Account, error)
}

// Tx is the atomic unit of work for transaction creation: every method runs
// inside one serializable database transaction.
type Tx interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	// GetAccountForUpdate locks the account row against concurrent writers.
	GetAccountForUpdate(ctx context.Context, accountID string) (models.Account, error)
	InsertTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error
	SetNextRecurringDate(ctx context.Context, txnID string, next time.Time) error
}

type Transactions interface {
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error)
	ListDueRecurring(ctx context.Context, asOf time.Time, limit int) ([]models.Transaction, error)
	// WithTx runs fn inside one serializable database transaction; fn's
	// writes commit or roll back together.
	WithTx(ctx context.Context, fn func(Tx) error) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
