package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini is the production Oracle backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, parts ...Part) (string, error) {
	gp := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Data != nil {
			gp = append(gp, &genai.Part{InlineData: &genai.Blob{MIMEType: p.MIMEType, Data: p.Data}})
			continue
		}
		gp = append(gp, &genai.Part{Text: p.Text})
	}
	contents := []*genai.Content{{Role: "user", Parts: gp}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("ai: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("ai: empty response from model")
	}
	return text, nil
}
