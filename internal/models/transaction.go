package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnIncome  TransactionType = "INCOME"
	TxnExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool { return t == TxnIncome || t == TxnExpense }

// Sign returns the balance delta direction: +1 for income, -1 for expense.
func (t TransactionType) Sign() decimal.Decimal {
	if t == TxnExpense {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

type Transaction struct {
	ID                string          `json:"id"`
	AccountID         string          `json:"account_id"`
	UserID            string          `json:"user_id"`
	Type              TransactionType `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Category          string          `json:"category"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurringInterval *string         `json:"recurring_interval,omitempty"`
	NextRecurringDate *time.Time      `json:"next_recurring_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
