package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devkartikrathi/ncfo/internal/admission"
	"github.com/devkartikrathi/ncfo/internal/cache"
	"github.com/devkartikrathi/ncfo/internal/metrics"
	"github.com/devkartikrathi/ncfo/internal/models"
	"github.com/devkartikrathi/ncfo/internal/recurring"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/shopspring/decimal"
)

// TransactionService owns the one stateful workflow with real invariants:
// inserting a transaction row and updating the owning account's balance as
// a single atomic unit of work.
type TransactionService struct {
	trx   repo.Transactions
	acc   repo.Accounts
	audit repo.AuditLogs
	adm   admission.Checker
	inv   cache.Invalidator
	log   *slog.Logger
}

func NewTransactionService(t repo.Transactions, a repo.Accounts, al repo.AuditLogs, adm admission.Checker, inv cache.Invalidator, log *slog.Logger) *TransactionService {
	return &TransactionService{trx: t, acc: a, audit: al, adm: adm, inv: inv, log: log}
}

type CreateTransactionInput struct {
	AccountID         string
	Type              models.TransactionType
	Amount            decimal.Decimal
	Category          string
	Date              time.Time
	Description       string
	IsRecurring       bool
	RecurringInterval string
}

type CreateTransactionResult struct {
	Transaction models.Transaction
	NewBalance  decimal.Decimal
	// StalePaths names the cached views invalidated by this write.
	StalePaths []string
}

// Create validates the caller, admits the request, and atomically persists
// the transaction row together with the balance update. Both writes commit
// or fail together.
func (s *TransactionService) Create(ctx context.Context, callerID string, in CreateTransactionInput) (CreateTransactionResult, error) {
	if callerID == "" {
		return CreateTransactionResult{}, ErrUnauthorized
	}
	if err := s.admit(ctx, callerID); err != nil {
		return CreateTransactionResult{}, err
	}

	if !in.Type.Valid() {
		return CreateTransactionResult{}, fmt.Errorf("%w: %q", ErrInvalidType, in.Type)
	}
	if in.Amount.IsNegative() {
		return CreateTransactionResult{}, ErrNegativeAmount
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	txn := models.Transaction{
		AccountID:   in.AccountID,
		UserID:      callerID,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
		IsRecurring: in.IsRecurring,
	}
	if in.IsRecurring {
		iv, err := recurring.Parse(in.RecurringInterval)
		if err != nil {
			return CreateTransactionResult{}, err
		}
		next, err := recurring.Next(in.Date, iv)
		if err != nil {
			return CreateTransactionResult{}, err
		}
		tag := string(iv)
		txn.RecurringInterval = &tag
		txn.NextRecurringDate = &next
	}

	var (
		created    models.Transaction
		newBalance decimal.Decimal
	)
	err := s.trx.WithTx(ctx, func(tx repo.Tx) error {
		ok, err := tx.UserExists(ctx, callerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		acct, err := tx.GetAccountForUpdate(ctx, in.AccountID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		// A foreign account is indistinguishable from a missing one.
		if acct.UserID != callerID {
			return ErrAccountNotFound
		}

		newBalance = acct.Balance.Add(in.Amount.Mul(in.Type.Sign()))

		created, err = tx.InsertTransaction(ctx, txn)
		if err != nil {
			return err
		}
		return tx.UpdateAccountBalance(ctx, in.AccountID, newBalance)
	})
	if err != nil {
		metrics.TransactionsFailed.Inc()
		return CreateTransactionResult{}, err
	}

	metrics.TransactionsTotal.WithLabelValues(string(in.Type)).Inc()
	s.auditCreate(ctx, created)

	stale := []string{cache.DashboardPath, cache.AccountPath(in.AccountID)}
	s.inv.Invalidate(stale...)

	return CreateTransactionResult{Transaction: created, NewBalance: newBalance, StalePaths: stale}, nil
}

func (s *TransactionService) admit(ctx context.Context, callerID string) error {
	d := s.adm.Check(ctx, callerID, 1)
	if d.Allowed {
		return nil
	}
	metrics.AdmissionDenied.Inc()
	if d.Blocked {
		s.log.Warn("request blocked", "user", callerID)
		return ErrRequestBlocked
	}
	// Quota detail stays in the logs; the user sees a generic message.
	s.log.Warn("rate limit hit",
		"user", callerID,
		"remaining", d.Remaining,
		"reset_in", d.ResetAfter,
	)
	return &RateLimitError{Remaining: d.Remaining, ResetAfter: d.ResetAfter}
}

func (s *TransactionService) auditCreate(ctx context.Context, t models.Transaction) {
	id := t.ID
	err := s.audit.Create(ctx, models.AuditLog{
		EntityType: "transaction",
		EntityID:   &id,
		Action:     "created",
		Details: map[string]any{
			"account_id": t.AccountID,
			"type":       t.Type,
			"amount":     t.Amount.String(),
		},
	})
	if err != nil {
		s.log.Error("audit log", "err", err)
	}
}

// GetByID returns the transaction when it belongs to the caller; anything
// else reads as not found.
func (s *TransactionService) GetByID(ctx context.Context, callerID, id string) (models.Transaction, error) {
	if callerID == "" {
		return models.Transaction{}, ErrUnauthorized
	}
	t, err := s.trx.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}
	if t.UserID != callerID {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return t, nil
}

// ListByAccount returns the account's transactions after an ownership check.
func (s *TransactionService) ListByAccount(ctx context.Context, callerID, accountID string, limit, offset int) ([]models.Transaction, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	acct, err := s.acc.GetByID(ctx, accountID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if acct.UserID != callerID {
		return nil, ErrAccountNotFound
	}
	return s.trx.ListByAccount(ctx, accountID, limit, offset)
}
