// Package labels maps verse identifier prefixes to bilingual display
// labels and section icons. Prefixes with no registry entry fall back to
// a title-cased form of the prefix itself so unknown verse types still
// render a readable heading.
package labels

import "strings"

// Label carries the display strings for one verse type.
type Label struct {
	En   string
	Hi   string
	Icon string
}

// Qualifier carries the display strings for a named-suffix verse, such
// as "doha-opening". The English form precedes the type label ("Opening
// Doha"); the Hindi form precedes the Hindi label.
type Qualifier struct {
	En string
	Hi string
}

// DefaultIcon is used for prefixes outside the registry.
const DefaultIcon = "📿"

var registry = map[string]Label{
	"chaupai":       {En: "Chaupai", Hi: "चौपाई", Icon: "📿"},
	"doha":          {En: "Doha", Hi: "दोहा", Icon: "🪷"},
	"pada":          {En: "Pada", Hi: "पद", Icon: "🎵"},
	"shloka":        {En: "Shloka", Hi: "श्लोक", Icon: "📖"},
	"stanza":        {En: "Stanza", Hi: "स्तुति", Icon: "📜"},
	"verse":         {En: "Verse", Hi: "पद", Icon: "📖"},
	"mangalacharan": {En: "Mangalacharan", Hi: "मंगलाचरण", Icon: "🙏"},
	"vithi":         {En: "Vithi", Hi: "वीथी", Icon: "🎋"},
	"stuti":         {En: "Stuti", Hi: "स्तुति", Icon: "✨"},
}

var qualifiers = map[string]Qualifier{
	"opening":    {En: "Opening", Hi: "प्रारम्भिक"},
	"closing":    {En: "Closing", Hi: "समापन"},
	"invocation": {En: "Invocation", Hi: "आवाहन"},
	"final":      {En: "Final", Hi: "अंतिम"},
}

// Resolve returns the label for prefix. Unknown prefixes get a
// title-cased fallback with hyphens turned into spaces and the default
// icon; Hindi falls back to the same string as English.
func Resolve(prefix string) Label {
	if l, ok := registry[prefix]; ok {
		return l
	}
	name := titleCase(prefix)
	return Label{En: name, Hi: name, Icon: DefaultIcon}
}

// ResolveQualifier returns the qualifier display strings for a named
// suffix. Unknown qualifiers get the same title-cased fallback.
func ResolveQualifier(suffix string) Qualifier {
	if q, ok := qualifiers[suffix]; ok {
		return q
	}
	name := titleCase(suffix)
	return Qualifier{En: name, Hi: name}
}

func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
