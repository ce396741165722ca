package fakevalues

import (
	"fmt"
	"strings"

	"github.com/abhisek/llmfaker/internal/llm"
)

// ValuesSchema describes the object-style response: {"values": [...]}.
var ValuesSchema = &llm.Schema{
	Name:        "fake-values",
	Description: "A list of realistic fake values",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"values": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"values"},
		"additionalProperties": false,
	},
}

// BuildPrompt renders the single instruction sent to the backend for one
// fetch. The text asks for count items of phrase in language, as JSON and
// nothing else.
func BuildPrompt(phrase, language string, count int, style PromptStyle) string {
	var b strings.Builder
	switch style {
	case StyleObject:
		fmt.Fprintf(&b, "List %d %s %s.\n", count, language, phrase)
		b.WriteString("The values must look like real data.\n")
		b.WriteString(`Response should be a json object, with array field named "values".`)
	default:
		b.WriteString("You are a generator of fake data which looks like real data.\n")
		b.WriteString("Given a question, answer ONLY with json outputs.\n")
		fmt.Fprintf(&b, "Generate a single list of %d items of %s.\n", count, phrase)
		fmt.Fprintf(&b, "Generate the list in %s.", language)
	}
	return b.String()
}

// buildRequest wraps the prompt for one key into a backend request.
func buildRequest(cfg Config, k Key, language string) llm.Request {
	req := llm.Request{
		Model:       cfg.Model,
		Prompt:      BuildPrompt(k.Phrase(cfg.UseFullKey), language, cfg.ItemsPerFetch, cfg.Style),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
	if cfg.Style == StyleObject {
		req.Schema = ValuesSchema
	}
	return req
}
