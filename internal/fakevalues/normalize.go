package fakevalues

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Strategy names how Normalize extracted candidates.
type Strategy int

const (
	// StrategyStructured means the text decoded as JSON.
	StrategyStructured Strategy = iota + 1

	// StrategyHeuristic means the text was split line by line or on commas.
	StrategyHeuristic
)

func (s Strategy) String() string {
	switch s {
	case StrategyStructured:
		return "structured"
	case StrategyHeuristic:
		return "heuristic"
	}
	return "unknown"
}

// Normalized is the candidate list extracted from one backend response.
type Normalized struct {
	Strategy Strategy
	Values   []string
}

var (
	codeFence = regexp.MustCompile("```[A-Za-z0-9_-]*")
	ordinal   = regexp.MustCompile(`^\d+[.)]\s+`)
	bullet    = regexp.MustCompile(`^[-*•]\s+`)
)

// arrayFields are the object fields searched, in order, for the candidate
// array when the response is a JSON object.
var arrayFields = []string{"values", "items", "data", "results"}

// Normalize turns raw backend text into candidates. It removes code fences
// and decodes JSON first: a bare array, or an object with the array under
// "values". Text that does not decode is split into lines, or on commas
// when it is a single line, with list numbering, bullets and quotes
// stripped. A decoded empty array yields zero values and no error; text
// with nothing usable yields *UnparsableError.
func Normalize(raw string) (Normalized, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return Normalized{}, &UnparsableError{Raw: raw}
	}

	if values, ok := decodeStructured(cleaned); ok {
		return Normalized{Strategy: StrategyStructured, Values: values}, nil
	}

	if values := splitHeuristic(cleaned); len(values) > 0 {
		return Normalized{Strategy: StrategyHeuristic, Values: values}, nil
	}
	return Normalized{}, &UnparsableError{Raw: raw}
}

func decodeStructured(text string) ([]string, bool) {
	flat := strings.NewReplacer("\r", "", "\n", "").Replace(text)
	if values, ok := decodeJSON(flat); ok {
		return values, true
	}
	// Models often wrap the payload in a sentence.
	if inner, ok := enclosed(flat); ok {
		return decodeJSON(inner)
	}
	return nil, false
}

func enclosed(text string) (string, bool) {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return "", false
	}
	closer := byte(']')
	if text[start] == '{' {
		closer = '}'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func decodeJSON(text string) ([]string, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}

	switch t := v.(type) {
	case []any:
		return stringify(t), true
	case map[string]any:
		if arr, ok := objectArray(t); ok {
			return stringify(arr), true
		}
	}
	return nil, false
}

func objectArray(obj map[string]any) ([]any, bool) {
	for _, field := range arrayFields {
		for k, v := range obj {
			if strings.EqualFold(k, field) {
				if arr, ok := v.([]any); ok {
					return arr, true
				}
			}
		}
	}

	// A single array-valued field is unambiguous whatever its name.
	var found []any
	n := 0
	for _, v := range obj {
		if arr, ok := v.([]any); ok {
			found = arr
			n++
		}
	}
	return found, n == 1
}

func stringify(items []any) []string {
	values := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		switch t := item.(type) {
		case nil:
			continue
		case string:
			s = t
		case json.Number:
			s = t.String()
		case bool:
			if t {
				s = "true"
			} else {
				s = "false"
			}
		default:
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(t); err != nil {
				continue
			}
			s = buf.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			values = append(values, s)
		}
	}
	return values
}

func splitHeuristic(text string) []string {
	pieces := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	if len(pieces) == 1 {
		pieces = strings.Split(text, ",")
	}

	var values []string
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, "[]{},")
		p = strings.TrimSpace(p)
		p = ordinal.ReplaceAllString(p, "")
		p = bullet.ReplaceAllString(p, "")
		p = strings.TrimSpace(strings.Trim(p, "\"'`"))
		p = strings.TrimSpace(strings.TrimSuffix(p, ","))
		p = strings.Trim(p, "\"'`")
		if p == "" || strings.HasSuffix(p, ":") {
			continue
		}
		values = append(values, p)
	}
	return values
}
