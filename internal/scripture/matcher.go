package scripture

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type aliasEntry struct {
	key  string
	book BookID
	// span matches the alias inside unstripped text, tolerating whitespace
	// between its runes.
	span *regexp.Regexp
}

// BookMatch is the result of a successful alias lookup.
type BookMatch struct {
	Book  BookID
	Alias string

	span *regexp.Regexp
}

// Mask replaces the first occurrence of the matched alias in text with a
// single space.
func (m BookMatch) Mask(text string) string {
	if m.span == nil {
		return text
	}
	loc := m.span.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + " " + text[loc[1]:]
}

// BookMatcher finds the canonical book whose alias longest-matches a
// substring of the input. It is immutable after construction.
type BookMatcher struct {
	entries []aliasEntry
}

// NewBookMatcher builds a matcher over the default alias table.
func NewBookMatcher() *BookMatcher {
	return NewBookMatcherFromAliases(DefaultAliases)
}

// NewBookMatcherFromAliases builds a matcher over aliases. Keys are stripped of
// whitespace; duplicate keys keep their first declaration. Longer keys are
// tried first and equal lengths keep declaration order.
func NewBookMatcherFromAliases(aliases []Alias) *BookMatcher {
	seen := make(map[string]struct{}, len(aliases))
	entries := make([]aliasEntry, 0, len(aliases))
	for _, a := range aliases {
		key := stripSpace(a.Name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, aliasEntry{key: key, book: a.Book, span: spanPattern(key)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return utf8.RuneCountInString(entries[i].key) > utf8.RuneCountInString(entries[j].key)
	})
	return &BookMatcher{entries: entries}
}

// FindBook returns the book of the first alias contained in text.
func (m *BookMatcher) FindBook(text string) (BookID, bool) {
	match, ok := m.Match(text)
	return match.Book, ok
}

// Match is FindBook with the matched alias attached.
func (m *BookMatcher) Match(text string) (BookMatch, bool) {
	clean := stripSpace(text)
	if clean == "" {
		return BookMatch{}, false
	}
	for _, e := range m.entries {
		if strings.Contains(clean, e.key) {
			return BookMatch{Book: e.book, Alias: e.key, span: e.span}, true
		}
	}
	return BookMatch{}, false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// spaceRun matches the runes unicode.IsSpace accepts. RE2's \s alone is ASCII
// only and misses \v.
const spaceRun = `[\s\x{0B}\x{85}\p{Z}]*`

func spanPattern(key string) *regexp.Regexp {
	parts := make([]string, 0, utf8.RuneCountInString(key))
	for _, r := range key {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return regexp.MustCompile(strings.Join(parts, spaceRun))
}
