package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devkartikrathi/ncfo/internal/ai"
	"github.com/devkartikrathi/ncfo/internal/metrics"
	"github.com/shopspring/decimal"
)

// ReceiptFields is the best-effort structured guess extracted from a
// receipt image. A zero value means the oracle judged the image not to be
// a receipt.
type ReceiptFields struct {
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	MerchantName string          `json:"merchantName"`
}

// ScanService turns receipt images into ReceiptFields via the AI oracle.
type ScanService struct {
	oracle ai.Oracle
	log    *slog.Logger
}

func NewScanService(o ai.Oracle, log *slog.Logger) *ScanService {
	return &ScanService{oracle: o, log: log}
}

// ScanReceipt submits the image with the fixed instruction prompt and
// strictly parses the oracle's answer. Any oracle or parse failure is
// ErrScanFailed; partial or garbage fields never come back.
func (s *ScanService) ScanReceipt(ctx context.Context, image []byte, mimeType string) (ReceiptFields, error) {
	raw, err := s.oracle.Generate(ctx,
		ai.Part{Text: ai.ReceiptPrompt},
		ai.Part{Data: image, MIMEType: mimeType},
	)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("receipt", "error").Inc()
		return ReceiptFields{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	var payload struct {
		Amount       decimal.Decimal `json:"amount"`
		Date         string          `json:"date"`
		Description  string          `json:"description"`
		Category     string          `json:"category"`
		MerchantName string          `json:"merchantName"`
	}
	if err := ai.Decode(raw, &payload); err != nil {
		metrics.ExtractionsTotal.WithLabelValues("receipt", "parse_error").Inc()
		s.log.Warn("receipt scan: unparseable oracle output", "err", err)
		return ReceiptFields{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}

	fields := ReceiptFields{
		Amount:       payload.Amount,
		Description:  payload.Description,
		Category:     payload.Category,
		MerchantName: payload.MerchantName,
	}
	if payload.Date != "" {
		d, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			metrics.ExtractionsTotal.WithLabelValues("receipt", "parse_error").Inc()
			return ReceiptFields{}, fmt.Errorf("%w: bad date %q", ErrScanFailed, payload.Date)
		}
		fields.Date = d
	}

	metrics.ExtractionsTotal.WithLabelValues("receipt", "ok").Inc()
	return fields, nil
}
