// Package ai wraps the generative-AI oracle used to turn receipts and
// free-text prompts into structured transaction fields. The model output is
// untrusted free text and is strictly parsed before use.
package ai

import "context"

// Part is one piece of oracle input: either text or inline binary data.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Oracle is the text-completion oracle. Implementations are injected into
// the extraction services so tests can substitute canned output.
type Oracle interface {
	Generate(ctx context.Context, parts ...Part) (string, error)
}
