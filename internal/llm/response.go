package llm

import "net/http"

// defaultMaxTokens is used when a request leaves MaxTokens unset and the
// backend requires a value.
const defaultMaxTokens = 500

// finishResponse applies the checks every adapter shares once the backend
// answered: truncated structured output is an error, and schema-bound
// responses must validate.
func finishResponse(req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Text: resp.Text}
	}
	if err := validateResponse(req.Schema, resp.Text); err != nil {
		return nil, err
	}
	return resp, nil
}

// mapStatusError classifies an HTTP status reported by an SDK error.
func mapStatusError(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 500:
		return &ErrProviderUnavailable{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names pass through so direct model IDs keep working.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
