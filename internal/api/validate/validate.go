package validate

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func NonNegative(field string, v decimal.Decimal) *ErrField {
	if v.IsNegative() {
		return &ErrField{Field: field, Msg: "must not be negative"}
	}
	return nil
}

// Collect folds optional field errors into a single error value.
func Collect(fields ...*ErrField) error {
	var errs Errs
	for _, f := range fields {
		if f != nil {
			errs = append(errs, *f)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
