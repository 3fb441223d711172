package scripture

import (
	"sort"
	"strings"
	"unicode/utf8"
)

type numeralEntry struct {
	word  string
	value string
}

// numeralTable lists Korean numeral spellings in declaration order. Recognizer
// misspellings are ordinary entries.
var numeralTable = []numeralEntry{
	{"일", "1"}, {"이", "2"}, {"삼", "3"}, {"사", "4"}, {"오", "5"},
	{"육", "6"}, {"칠", "7"}, {"팔", "8"}, {"구", "9"}, {"십", "10"},

	{"십일", "11"}, {"십이", "12"}, {"십삼", "13"}, {"십사", "14"}, {"십오", "15"},
	{"십육", "16"}, {"십칠", "17"}, {"십팔", "18"}, {"십구", "19"},

	{"이십", "20"}, {"이십일", "21"}, {"이십이", "22"}, {"이십삼", "23"},
	{"이십사", "24"}, {"이십오", "25"}, {"이십육", "26"}, {"이십칠", "27"},
	{"이십팔", "28"}, {"이십구", "29"},

	{"삼십", "30"}, {"삼십일", "31"}, {"사십", "40"}, {"오십", "50"},

	{"백", "100"}, {"백오십", "150"},

	// speech recognizer variants
	{"신육", "16"}, {"시육", "16"}, {"심육", "16"}, {"시뉵", "16"},
	{"신칠", "17"}, {"심칠", "17"}, {"신팔", "18"}, {"신구", "19"},
}

// NumeralNormalizer rewrites Korean numeral words into decimal digits.
type NumeralNormalizer struct {
	entries []numeralEntry
}

// NewNumeralNormalizer builds a normalizer over the default numeral table.
func NewNumeralNormalizer() *NumeralNormalizer {
	return newNumeralNormalizer(numeralTable)
}

func newNumeralNormalizer(table []numeralEntry) *NumeralNormalizer {
	entries := make([]numeralEntry, len(table))
	copy(entries, table)
	sort.SliceStable(entries, func(i, j int) bool {
		return utf8.RuneCountInString(entries[i].word) > utf8.RuneCountInString(entries[j].word)
	})
	return &NumeralNormalizer{entries: entries}
}

// Normalize applies every table entry as a literal substring replacement,
// longest words first.
func (n *NumeralNormalizer) Normalize(text string) string {
	out := text
	for _, e := range n.entries {
		out = strings.ReplaceAll(out, e.word, e.value)
	}
	return out
}
