package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestScanReceipt(t *testing.T) {
	oracle := &fakeOracle{out: "```json\n{\"amount\": 42.10, \"date\": \"2024-05-01\", \"description\": \"groceries\", \"merchantName\": \"Lidl\", \"category\": \"groceries\"}\n```"}
	svc := NewScanService(oracle, testLogger())

	fields, err := svc.ScanReceipt(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	if err != nil {
		t.Fatalf("ScanReceipt: %v", err)
	}
	if !fields.Amount.Equal(decimal.RequireFromString("42.10")) {
		t.Errorf("amount = %s", fields.Amount)
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !fields.Date.Equal(want) {
		t.Errorf("date = %s", fields.Date)
	}
	if fields.MerchantName != "Lidl" || fields.Category != "groceries" {
		t.Errorf("fields = %+v", fields)
	}
}

// A non-receipt image yields {} from the oracle: zero fields, no error.
// Presentation decides how to show it.
func TestScanReceiptNotAReceipt(t *testing.T) {
	svc := NewScanService(&fakeOracle{out: "{}"}, testLogger())
	fields, err := svc.ScanReceipt(context.Background(), []byte{1}, "image/png")
	if err != nil {
		t.Fatalf("ScanReceipt: %v", err)
	}
	if !fields.Amount.IsZero() || fields.MerchantName != "" || !fields.Date.IsZero() {
		t.Errorf("want zero fields, got %+v", fields)
	}
}

func TestScanReceiptOracleFailure(t *testing.T) {
	svc := NewScanService(&fakeOracle{err: errOracleDown}, testLogger())
	_, err := svc.ScanReceipt(context.Background(), []byte{1}, "image/png")
	if !errors.Is(err, ErrScanFailed) {
		t.Fatalf("want ErrScanFailed, got %v", err)
	}
}

func TestScanReceiptGarbageOutput(t *testing.T) {
	for _, out := range []string{
		"This does not look like a receipt to me.",
		"```json\n{oops\n```",
		`{"amount": "a lot"}`,
	} {
		svc := NewScanService(&fakeOracle{out: out}, testLogger())
		if _, err := svc.ScanReceipt(context.Background(), []byte{1}, "image/png"); !errors.Is(err, ErrScanFailed) {
			t.Errorf("output %q: want ErrScanFailed, got %v", out, err)
		}
	}
}

func TestScanReceiptBadDate(t *testing.T) {
	svc := NewScanService(&fakeOracle{out: `{"amount": 5, "date": "last tuesday"}`}, testLogger())
	if _, err := svc.ScanReceipt(context.Background(), []byte{1}, "image/png"); !errors.Is(err, ErrScanFailed) {
		t.Fatalf("want ErrScanFailed, got %v", err)
	}
}
