package fakevalues

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of tag's base language, e.g.
// "German" for de-AT. Unknown tags fall back to their BCP 47 form.
func LanguageName(tag language.Tag) string {
	base, _ := tag.Base()
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return tag.String()
}

// ResolveLocale is Resolve with the language taken from a locale tag.
func (r *Resolver) ResolveLocale(ctx context.Context, key string, tag language.Tag) (string, bool, error) {
	return r.Resolve(ctx, key, LanguageName(tag))
}
