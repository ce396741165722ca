package llm

import "context"

// Provider is the backend transport: it sends one prompt to a generative
// model and returns the model's raw text.
type Provider interface {
	// Generate executes a single prompt. When req.Schema is set, providers
	// with native structured output are asked to honor it and the returned
	// Text is validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider uses by default.
	ModelID() string
}

// Request describes one prompt round trip.
type Request struct {
	// Model overrides the provider's configured model when non-empty.
	Model string

	// System is an optional system instruction.
	System string

	// Prompt is the user prompt.
	Prompt string

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "fake-values".
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Text is the generated output exactly as the backend returned it.
	// It may carry code fences, numbering or other formatting noise.
	Text string

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// model returns the request override or the fallback.
func (r Request) model(fallback string) string {
	if r.Model != "" {
		return r.Model
	}
	return fallback
}
