package services

import (
	"context"
	"errors"
	"testing"

	"github.com/devkartikrathi/ncfo/internal/models"
	"github.com/shopspring/decimal"
)

func newAccountFixture() (*AccountService, *fakeStore) {
	store := newFakeStore()
	store.users["u1"] = true
	return NewAccountService(&fakeAccounts{store}), store
}

func TestAccountCreateFirstIsDefault(t *testing.T) {
	svc, _ := newAccountFixture()
	a, err := svc.Create(context.Background(), "u1", "main", decimal.Zero, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !a.IsDefault {
		t.Error("first account must become the default")
	}
}

func TestAccountCreateNewDefaultDemotesOld(t *testing.T) {
	svc, store := newAccountFixture()
	first, _ := svc.Create(context.Background(), "u1", "main", decimal.Zero, true)
	second, err := svc.Create(context.Background(), "u1", "savings", decimal.NewFromInt(10), true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !second.IsDefault {
		t.Error("second account should be default")
	}
	if store.accounts[first.ID].IsDefault {
		t.Error("previous default must be demoted")
	}

	defaults := 0
	for _, a := range store.accounts {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("exactly one default expected, got %d", defaults)
	}
}

func TestAccountCreateNegativeOpening(t *testing.T) {
	svc, _ := newAccountFixture()
	if _, err := svc.Create(context.Background(), "u1", "x", decimal.NewFromInt(-1), false); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("want ErrNegativeAmount, got %v", err)
	}
}

func TestAccountGetForeignIsNotFound(t *testing.T) {
	svc, store := newAccountFixture()
	store.accounts["b1"] = models.Account{ID: "b1", UserID: "u2", Name: "theirs"}
	if _, err := svc.Get(context.Background(), "u1", "b1"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}
