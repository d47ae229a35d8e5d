package ai

import "context"

// Explainer answers educational questions about token risk concepts. It is
// deliberately outside the scoring path: the keyword classifier routes
// intents and the calculators stay deterministic whether or not a language
// model is configured.
type Explainer interface {
	// Explain answers a free-text educational question in plain language.
	Explain(ctx context.Context, question string) (string, error)
}

// ExplainerFunc adapts a plain function to the Explainer interface.
type ExplainerFunc func(ctx context.Context, question string) (string, error)

func (f ExplainerFunc) Explain(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}
