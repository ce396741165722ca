package fakevalues

import (
	"strings"
	"unicode"
)

// Key is a parsed "<domain>.<property>" field identifier.
type Key struct {
	Domain   string
	Property string
}

// ParseKey splits raw on '.' into a domain and a property segment.
// Segments after the second are ignored.
func ParseKey(raw string) (Key, error) {
	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return Key{}, &MalformedKeyError{Key: raw, Reason: "expected <domain>.<property>"}
	}
	if strings.TrimSpace(parts[0]) == "" {
		return Key{}, &MalformedKeyError{Key: raw, Reason: "empty domain segment"}
	}
	if strings.TrimSpace(parts[1]) == "" {
		return Key{}, &MalformedKeyError{Key: raw, Reason: "empty property segment"}
	}
	return Key{Domain: parts[0], Property: parts[1]}, nil
}

// String returns the key in dotted form.
func (k Key) String() string {
	return k.Domain + "." + k.Property
}

// Phrase renders the key as plain words for a prompt. Underscores become
// spaces and the property is split on camelCase and character-type
// boundaries: "first_nameXML2" reads "first name XML 2".
func (k Key) Phrase(useFullKey bool) string {
	property := collapseSpaces(strings.Join(splitCharacterType(strings.ReplaceAll(k.Property, "_", " ")), " "))
	if !useFullKey {
		return property
	}
	domain := collapseSpaces(strings.ReplaceAll(k.Domain, "_", " "))
	return domain + " " + property
}

// FormatKey parses raw and renders its phrase.
func FormatKey(raw string, useFullKey bool) (string, error) {
	k, err := ParseKey(raw)
	if err != nil {
		return "", err
	}
	return k.Phrase(useFullKey), nil
}

type charClass int

const (
	classOther charClass = iota
	classUpper
	classLower
	classDigit
	classSpace
)

func classify(r rune) charClass {
	switch {
	case unicode.IsUpper(r), unicode.IsTitle(r):
		return classUpper
	case unicode.IsLower(r):
		return classLower
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classOther
	}
}

// splitCharacterType splits s wherever the character class changes. An
// uppercase run followed by lowercase keeps its last capital with the
// lowercase part, so "XMLParser" yields "XML", "Parser".
func splitCharacterType(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	var tokens []string
	start := 0
	prev := classify(runes[0])
	for i := 1; i < len(runes); i++ {
		cur := classify(runes[i])
		if cur == prev {
			continue
		}
		if cur == classLower && prev == classUpper {
			if i-1 > start {
				tokens = append(tokens, string(runes[start:i-1]))
				start = i - 1
			}
		} else {
			tokens = append(tokens, string(runes[start:i]))
			start = i
		}
		prev = cur
	}
	return append(tokens, string(runes[start:]))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
