package llm

import "context"

// Provider generates an answer from a fully composed prompt. Prompt
// assembly lives in BuildPrompt so every backend sees the same contract.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
