package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/devkartikrathi/ncfo/internal/ai"
	"github.com/devkartikrathi/ncfo/internal/metrics"
	"github.com/devkartikrathi/ncfo/internal/models"
	repo "github.com/devkartikrathi/ncfo/internal/repository"
	"github.com/shopspring/decimal"
)

// PromptService persists a transaction extracted from free user text such
// as "Spent 500 on lunch", against the caller's default account.
type PromptService struct {
	oracle ai.Oracle
	acc    repo.Accounts
	txn    *TransactionService
	log    *slog.Logger
}

func NewPromptService(o ai.Oracle, acc repo.Accounts, txn *TransactionService, log *slog.Logger) *PromptService {
	return &PromptService{oracle: o, acc: acc, txn: txn, log: log}
}

// CreateFromPrompt extracts fields from text and delegates persistence to
// the transaction service. Failures from the delegated call propagate
// unchanged.
func (s *PromptService) CreateFromPrompt(ctx context.Context, callerID, text string) (CreateTransactionResult, error) {
	if callerID == "" {
		return CreateTransactionResult{}, ErrUnauthorized
	}

	acct, err := s.acc.GetDefault(ctx, callerID)
	if errors.Is(err, repo.ErrNotFound) {
		return CreateTransactionResult{}, ErrNoDefaultAccount
	}
	if err != nil {
		return CreateTransactionResult{}, err
	}

	raw, err := s.oracle.Generate(ctx, ai.Part{Text: ai.TransactionPrompt(text)})
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("prompt", "error").Inc()
		return CreateTransactionResult{}, fmt.Errorf("extract from prompt: %w", err)
	}

	// Pointer fields so absence is distinguishable from zero values.
	var payload struct {
		Type        *string          `json:"type"`
		Amount      *decimal.Decimal `json:"amount"`
		Category    *string          `json:"category"`
		Description string           `json:"description"`
		Date        string           `json:"date"`
	}
	if err := ai.Decode(raw, &payload); err != nil {
		metrics.ExtractionsTotal.WithLabelValues("prompt", "parse_error").Inc()
		s.log.Warn("prompt extraction: unparseable oracle output", "err", err)
		return CreateTransactionResult{}, err
	}
	if payload.Amount == nil || payload.Type == nil || payload.Category == nil {
		metrics.ExtractionsTotal.WithLabelValues("prompt", "incomplete").Inc()
		return CreateTransactionResult{}, ErrIncompleteExtraction
	}

	in := CreateTransactionInput{
		AccountID:   acct.ID,
		Type:        models.TransactionType(strings.ToUpper(*payload.Type)),
		Amount:      *payload.Amount,
		Category:    *payload.Category,
		Description: payload.Description,
		IsRecurring: false,
	}
	if in.Description == "" {
		in.Description = *payload.Category
	}
	if payload.Date != "" {
		if d, err := time.Parse("2006-01-02", payload.Date); err == nil {
			in.Date = d
		}
	}

	metrics.ExtractionsTotal.WithLabelValues("prompt", "ok").Inc()
	return s.txn.Create(ctx, callerID, in)
}
