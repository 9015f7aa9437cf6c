package utils

import "context"

// GenerationClientInterface abstracts the LLM provider. Construct one client at
// startup and inject it; callers treat any error as "no artifact produced".
type GenerationClientInterface interface {
	GenerateCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ModelName() string
}
