package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/devkartikrathi/ncfo/internal/admission"
	"github.com/devkartikrathi/ncfo/internal/ai"
	"github.com/devkartikrathi/ncfo/internal/models"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory store whose WithTx serializes units of work and
// rolls back on error, mirroring the Postgres contract.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]bool
	accounts map[string]models.Account
	txns     map[string]models.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]bool{},
		accounts: map[string]models.Account{},
		txns:     map[string]models.Transaction{},
	}
}

func (s *fakeStore) snapshot() (map[string]models.Account, map[string]models.Transaction) {
	accounts := make(map[string]models.Account, len(s.accounts))
	for k, v := range s.accounts {
		accounts[k] = v
	}
	txns := make(map[string]models.Transaction, len(s.txns))
	for k, v := range s.txns {
		txns[k] = v
	}
	return accounts, txns
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(repo.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, txns := s.snapshot()
	if err := fn(&fakeTx{s}); err != nil {
		s.accounts, s.txns = accounts, txns
		return err
	}
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok {
		return models.Transaction{}, repo.ErrNotFound
	}
	return t, nil
}

func (s *fakeStore) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.txns {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) ListDueRecurring(ctx context.Context, asOf time.Time, limit int) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.txns {
		if t.IsRecurring && t.NextRecurringDate != nil && !t.NextRecurringDate.After(asOf) {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type fakeTx struct{ s *fakeStore }

func (t *fakeTx) UserExists(ctx context.Context, userID string) (bool, error) {
	return t.s.users[userID], nil
}

func (t *fakeTx) GetAccountForUpdate(ctx context.Context, accountID string) (models.Account, error) {
	a, ok := t.s.accounts[accountID]
	if !ok {
		return models.Account{}, repo.ErrNotFound
	}
	return a, nil
}

func (t *fakeTx) InsertTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	txn.CreatedAt = time.Now()
	t.s.txns[txn.ID] = txn
	return txn, nil
}

func (t *fakeTx) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	a, ok := t.s.accounts[accountID]
	if !ok {
		return repo.ErrNotFound
	}
	a.Balance = balance
	t.s.accounts[accountID] = a
	return nil
}

func (t *fakeTx) SetNextRecurringDate(ctx context.Context, txnID string, next time.Time) error {
	txn, ok := t.s.txns[txnID]
	if !ok {
		return repo.ErrNotFound
	}
	txn.NextRecurringDate = &next
	t.s.txns[txnID] = txn
	return nil
}

// fakeAccounts exposes the same store through the Accounts interface.
type fakeAccounts struct{ s *fakeStore }

func (f *fakeAccounts) Create(ctx context.Context, a models.Account) (models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.IsDefault {
		for id, other := range f.s.accounts {
			if other.UserID == a.UserID && other.IsDefault {
				other.IsDefault = false
				f.s.accounts[id] = other
			}
		}
	}
	f.s.accounts[a.ID] = a
	return a, nil
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok {
		return models.Account{}, repo.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccounts) GetDefault(ctx context.Context, userID string) (models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, a := range f.s.accounts {
		if a.UserID == userID && a.IsDefault {
			return a, nil
		}
	}
	return models.Account{}, repo.ErrNotFound
}

func (f *fakeAccounts) ListByUser(ctx context.Context, userID string) ([]models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Account
	for _, a := range f.s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeAudit struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (f *fakeAudit) Create(ctx context.Context, l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

// fakeChecker returns a fixed admission decision.
type fakeChecker struct {
	decision admission.Decision
}

func allowAll() *fakeChecker {
	return &fakeChecker{decision: admission.Decision{Allowed: true, Remaining: 99}}
}

func (f *fakeChecker) Check(ctx context.Context, key string, cost int) admission.Decision {
	return f.decision
}

type fakeInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeInvalidator) Invalidate(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, paths...)
}

// fakeOracle returns canned text or a canned error.
type fakeOracle struct {
	out string
	err error
}

func (f *fakeOracle) Generate(ctx context.Context, parts ...ai.Part) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

var errOracleDown = errors.New("oracle unavailable")
