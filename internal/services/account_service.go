package services

import (
	"context"
	"errors"
	"strings"

	"github.com/devkartikrathi/ncfo/internal/models"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	acc repo.Accounts
}

func NewAccountService(acc repo.Accounts) *AccountService {
	return &AccountService{acc: acc}
}

// Create opens an account for the caller. The owner's first account always
// becomes the default; a later default demotes the previous one in the
// store's unit of work, so exactly one default exists per user.
func (s *AccountService) Create(ctx context.Context, callerID, name string, opening decimal.Decimal, isDefault bool) (models.Account, error) {
	if callerID == "" {
		return models.Account{}, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Account{}, errors.New("account name required")
	}
	if opening.IsNegative() {
		return models.Account{}, ErrNegativeAmount
	}

	existing, err := s.acc.ListByUser(ctx, callerID)
	if err != nil {
		return models.Account{}, err
	}
	if len(existing) == 0 {
		isDefault = true
	}

	return s.acc.Create(ctx, models.Account{
		UserID:    callerID,
		Name:      name,
		Balance:   opening,
		IsDefault: isDefault,
	})
}

func (s *AccountService) List(ctx context.Context, callerID string) ([]models.Account, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	return s.acc.ListByUser(ctx, callerID)
}

// Get returns the account after an ownership check; a foreign account reads
// as not found.
func (s *AccountService) Get(ctx context.Context, callerID, accountID string) (models.Account, error) {
	if callerID == "" {
		return models.Account{}, ErrUnauthorized
	}
	a, err := s.acc.GetByID(ctx, accountID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	if a.UserID != callerID {
		return models.Account{}, ErrAccountNotFound
	}
	return a, nil
}
