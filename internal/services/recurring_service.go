package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/devkartikrathi/ncfo/internal/metrics"
	"github.com/devkartikrathi/ncfo/internal/models"
	"github.com/devkartikrathi/ncfo/internal/recurring"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/devkartikrathi/ncfo/internal/worker"
)

// RecurringService materializes due recurring transactions: for every
// parent whose next occurrence date has passed, it books the occurrence and
// advances the schedule, atomically per parent.
type RecurringService struct {
	trx   repo.Transactions
	pool  *worker.Pool
	batch int
	log   *slog.Logger
}

func NewRecurringService(trx repo.Transactions, pool *worker.Pool, batch int, log *slog.Logger) *RecurringService {
	if batch <= 0 {
		batch = 100
	}
	return &RecurringService{trx: trx, pool: pool, batch: batch, log: log}
}

// ProcessDue sweeps one batch of due parents onto the worker pool and
// returns how many were dispatched.
func (s *RecurringService) ProcessDue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.trx.ListDueRecurring(ctx, asOf, s.batch)
	if err != nil {
		return 0, err
	}
	for _, parent := range due {
		p := parent
		s.pool.Submit(func() {
			if err := s.materialize(ctx, p); err != nil {
				s.log.Error("recurring materialize", "txn", p.ID, "err", err)
			}
		})
	}
	return len(due), nil
}

func (s *RecurringService) materialize(ctx context.Context, parent models.Transaction) error {
	if parent.RecurringInterval == nil || parent.NextRecurringDate == nil {
		return recurring.ErrInvalidInterval
	}
	iv, err := recurring.Parse(*parent.RecurringInterval)
	if err != nil {
		return err
	}
	occurredOn := *parent.NextRecurringDate
	next, err := recurring.Next(occurredOn, iv)
	if err != nil {
		return err
	}

	return s.trx.WithTx(ctx, func(tx repo.Tx) error {
		acct, err := tx.GetAccountForUpdate(ctx, parent.AccountID)
		if err != nil {
			return err
		}
		child := models.Transaction{
			AccountID:   parent.AccountID,
			UserID:      parent.UserID,
			Type:        parent.Type,
			Amount:      parent.Amount,
			Category:    parent.Category,
			Date:        occurredOn,
			Description: parent.Description + " (recurring)",
		}
		if _, err := tx.InsertTransaction(ctx, child); err != nil {
			return err
		}
		newBalance := acct.Balance.Add(parent.Amount.Mul(parent.Type.Sign()))
		if err := tx.UpdateAccountBalance(ctx, parent.AccountID, newBalance); err != nil {
			return err
		}
		if err := tx.SetNextRecurringDate(ctx, parent.ID, next); err != nil {
			return err
		}
		metrics.TransactionsTotal.WithLabelValues(string(parent.Type)).Inc()
		return nil
	})
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *RecurringService) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.ProcessDue(ctx, now)
			if err != nil {
				s.log.Error("recurring sweep", "err", err)
				continue
			}
			if n > 0 {
				s.log.Info("recurring sweep", "dispatched", n)
			}
		}
	}
}
