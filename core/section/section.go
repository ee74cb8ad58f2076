// Package section groups the verse identifiers of a collection into ordered,
// classified sections for page synthesis.
//
// A verse identifier is the stem of a verse source file, shaped
// <prefix>[-<suffix>] (e.g. "chaupai-01", "doha-opening", "mangalacharan").
// Identifiers sharing a prefix and appearing adjacently in traversal order
// form one section. Runs of more than LoopThreshold numerically suffixed
// identifiers render as a single repeating block; lone named identifiers
// carry their suffix as a qualifier (e.g. "opening").
package section

import (
	"sort"
	"strings"
)

// LoopThreshold is the fixed policy cutoff for loop sections: a run of
// same-prefix, all-numeric identifiers is a loop only when it holds more
// than this many verses. Runs of 1-3 are always rendered individually.
const LoopThreshold = 3

// Section is a contiguous run of identifiers sharing one prefix, in the
// traversal order chosen for the collection.
type Section struct {
	// Prefix is the verse-type tag shared by every identifier in the run.
	Prefix string
	// VerseIDs holds the identifiers in traversal order. Never empty.
	VerseIDs []string
	// IsLoop marks runs of more than LoopThreshold all-numeric identifiers.
	IsLoop bool
	// Qualifier names the role of a lone named verse ("opening", "closing").
	// Empty unless the section has exactly one identifier whose suffix is
	// non-empty and non-numeric.
	Qualifier string
}

// Prefix returns the verse-type tag of an identifier: everything before the
// last hyphen, or the whole token when no hyphen exists.
func Prefix(id string) string {
	if i := strings.LastIndex(id, "-"); i >= 0 {
		return id[:i]
	}
	return id
}

// Suffix returns the part after the last hyphen, or "" when no hyphen
// exists. An empty suffix is treated as non-numeric everywhere but never
// registers as a qualifier.
func Suffix(id string) string {
	if i := strings.LastIndex(id, "-"); i >= 0 {
		return id[i+1:]
	}
	return ""
}

// allDigits reports whether s is a non-empty string of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TraversalOrder computes the order in which identifiers are walked.
// Identifiers present in sequence come first, in sequence order; any
// identifier absent from sequence is appended afterward in ascending
// lexicographic order. With no sequence, all identifiers sort ascending.
func TraversalOrder(ids []string, sequence []string) []string {
	if len(sequence) == 0 {
		ordered := make([]string, len(ids))
		copy(ordered, ids)
		sort.Strings(ordered)
		return ordered
	}

	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}

	ordered := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range sequence {
		if present[id] && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}

	var rest []string
	for _, id := range ids {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// IsLoopRun reports whether a completed run renders as a repeating block:
// every identifier's suffix must be all digits and the run must hold more
// than LoopThreshold identifiers.
func IsLoopRun(verseIDs []string) bool {
	if len(verseIDs) <= LoopThreshold {
		return false
	}
	for _, id := range verseIDs {
		if !allDigits(Suffix(id)) {
			return false
		}
	}
	return true
}

// QualifierFor returns the qualifier of a completed run: the suffix of its
// sole identifier when that suffix is non-empty and non-numeric, "" in
// every other case.
func QualifierFor(verseIDs []string) string {
	if len(verseIDs) != 1 {
		return ""
	}
	suffix := Suffix(verseIDs[0])
	if suffix == "" || allDigits(suffix) {
		return ""
	}
	return suffix
}

// Detect groups a collection's verse identifiers into ordered, classified
// sections. Adjacent identifiers sharing a prefix merge into one section;
// two same-prefix runs separated by a different prefix stay distinct. An
// empty input yields an empty result.
func Detect(ids []string, sequence []string) []Section {
	ordered := TraversalOrder(ids, sequence)

	var sections []Section
	for _, id := range ordered {
		p := Prefix(id)
		if n := len(sections); n > 0 && sections[n-1].Prefix == p {
			sections[n-1].VerseIDs = append(sections[n-1].VerseIDs, id)
		} else {
			sections = append(sections, Section{Prefix: p, VerseIDs: []string{id}})
		}
	}

	for i := range sections {
		sections[i].IsLoop = IsLoopRun(sections[i].VerseIDs)
		sections[i].Qualifier = QualifierFor(sections[i].VerseIDs)
	}
	return sections
}

// VerseNumber extracts the integer suffix of a numbered identifier
// ("chaupai-16" -> 16, "shloka_01" -> 1). The second return is false for
// named suffixes and bare tokens. Both hyphen and underscore separators
// are recognized.
func VerseNumber(id string) (int, bool) {
	sep := strings.LastIndexAny(id, "-_")
	if sep < 0 {
		return 0, false
	}
	suffix := id[sep+1:]
	if !allDigits(suffix) {
		return 0, false
	}
	n := 0
	for _, r := range suffix {
		n = n*10 + int(r-'0')
	}
	return n, true
}
