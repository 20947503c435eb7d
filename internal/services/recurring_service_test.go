package services

import (
	"context"
	"testing"
	"time"

	"github.com/devkartikrathi/ncfo/internal/models"
	"github.com/devkartikrathi/ncfo/internal/worker"
	"github.com/shopspring/decimal"
)

func TestRecurringProcessDue(t *testing.T) {
	store := newFakeStore()
	store.users["u1"] = true
	store.accounts["a1"] = models.Account{ID: "a1", UserID: "u1", Balance: decimal.NewFromInt(100)}

	iv := "MONTHLY"
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	store.txns["t1"] = models.Transaction{
		ID: "t1", AccountID: "a1", UserID: "u1",
		Type: models.TxnExpense, Amount: decimal.NewFromInt(10), Category: "bills",
		Description: "rent", IsRecurring: true,
		RecurringInterval: &iv, NextRecurringDate: &due,
	}

	pool := worker.NewPool(1, 8)
	svc := NewRecurringService(store, pool, 10, testLogger())

	n, err := svc.ProcessDue(context.Background(), due.Add(time.Hour))
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if n != 1 {
		t.Fatalf("dispatched = %d, want 1", n)
	}
	pool.Stop() // wait for the materialization

	if len(store.txns) != 2 {
		t.Fatalf("rows = %d, want parent plus one occurrence", len(store.txns))
	}
	if !store.accounts["a1"].Balance.Equal(decimal.NewFromInt(90)) {
		t.Errorf("balance = %s, want 90", store.accounts["a1"].Balance)
	}

	parent := store.txns["t1"]
	wantNext := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if parent.NextRecurringDate == nil || !parent.NextRecurringDate.Equal(wantNext) {
		t.Errorf("parent next date = %v, want %s", parent.NextRecurringDate, wantNext)
	}

	for id, txn := range store.txns {
		if id == "t1" {
			continue
		}
		if txn.IsRecurring {
			t.Error("occurrence must not itself be recurring")
		}
		if !txn.Date.Equal(due) {
			t.Errorf("occurrence date = %s, want %s", txn.Date, due)
		}
	}
}

func TestRecurringNothingDue(t *testing.T) {
	store := newFakeStore()
	pool := worker.NewPool(1, 8)
	defer pool.Stop()
	svc := NewRecurringService(store, pool, 10, testLogger())

	n, err := svc.ProcessDue(context.Background(), time.Now())
	if err != nil || n != 0 {
		t.Fatalf("ProcessDue = %d, %v; want 0, nil", n, err)
	}
}
