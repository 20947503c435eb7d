package ai

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"amount": 12.5}`, `{"amount": 12.5}`},
		{"fenced", "```json\n{\"amount\": 12.5}\n```", `{"amount": 12.5}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here is the JSON:\n{\"a\":1}", `{"a":1}`},
		{"trailing prose", "{\"a\":1}\nHope that helps!", `{"a":1}`},
		{"whitespace", "   {\"a\":1}   ", `{"a":1}`},
		{"empty object", "{}", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSON(tt.in); got != tt.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Amount decimal.Decimal `json:"amount"`
		Date   string          `json:"date"`
	}
	if err := Decode("```json\n{\"amount\": 42.10, \"date\": \"2024-05-01\"}\n```", &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !out.Amount.Equal(decimal.RequireFromString("42.10")) {
		t.Errorf("amount = %s, want 42.10", out.Amount)
	}
	if out.Date != "2024-05-01" {
		t.Errorf("date = %q", out.Date)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{
		"I could not read the receipt, sorry.",
		"```json\n{broken\n```",
		"",
	} {
		var out map[string]any
		err := Decode(raw, &out)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Decode(%q): want *ParseError, got %v", raw, err)
		}
	}
}

func TestDecodeInvalidAmount(t *testing.T) {
	// Non-numeric amount text must fail the decode, never pass through.
	var out struct {
		Amount decimal.Decimal `json:"amount"`
	}
	err := Decode(`{"amount": "twelve"}`, &out)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError for non-numeric amount, got %v", err)
	}
}
