package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// NewAnalyst returns an Expert commenting portfolio summaries valued in currency.
func NewAnalyst(model, currency string) *Expert {
	e := NewExpert("analyst", "Comments the performance of a portfolio against its benchmarks.")
	e.ModelName = model
	e.Config = &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
You are a financial analyst reviewing a private investor's portfolio.
All amounts are in %s. Benchmarks are index levels converted into %s.

You receive a markdown summary of the portfolio value, its holdings and its
benchmarks over the tracked period. Write a short commentary (at most three
paragraphs) comparing the portfolio return with the benchmarks and pointing
out the holdings driving the result. Do not give investment advice. Answer in
plain markdown, without headings.
`, currency, currency)}}},
	}
	return e
}

// Comment starts a chat with the analyst and returns its commentary of summary.
func Comment(ctx context.Context, client *genai.Client, analyst *Expert, summary string) (string, error) {
	if err := analyst.Start(ctx, client); err != nil {
		return "", fmt.Errorf("cannot start %s: %w", analyst.Name, err)
	}
	return analyst.Ask(ctx, summary)
}
