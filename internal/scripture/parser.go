package scripture

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Reference locates a verse or verse range. Chapter and verse numbers are
// 1-based; VerseEnd is zero when no range end was given.
type Reference struct {
	Book       BookID `json:"book"`
	Chapter    int    `json:"chapter"`
	VerseStart int    `json:"verse_start"`
	VerseEnd   int    `json:"verse_end,omitempty"`
}

// HasEnd reports whether the reference carries an explicit range end.
func (r Reference) HasEnd() bool {
	return r.VerseEnd != 0
}

func (r Reference) String() string {
	s := fmt.Sprintf("%s %d:%d", BookName(r.Book), r.Chapter, r.VerseStart)
	if r.HasEnd() {
		s += fmt.Sprintf("-%d", r.VerseEnd)
	}
	return s
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Parser turns a noisy transcript into a Reference.
type Parser struct {
	books    *BookMatcher
	numerals *NumeralNormalizer
	maskBook bool
	log      *slog.Logger
}

// ParserOption adjusts a Parser at construction.
type ParserOption func(*Parser)

// MaskBookNames removes the matched book alias from the transcript before
// numeral normalization, so numeral syllables inside names such as 사무엘상
// or 이사야 do not become chapter numbers. Off by default.
func MaskBookNames(enabled bool) ParserOption {
	return func(p *Parser) {
		p.maskBook = enabled
	}
}

// NewParser returns a Parser using the default alias and numeral tables.
func NewParser(logger *slog.Logger, opts ...ParserOption) *Parser {
	return NewParserWith(NewBookMatcher(), NewNumeralNormalizer(), logger, opts...)
}

// NewParserWith returns a Parser over explicit tables.
func NewParserWith(books *BookMatcher, numerals *NumeralNormalizer, logger *slog.Logger, opts ...ParserOption) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{
		books:    books,
		numerals: numerals,
		log:      logger.With("component", "scripture.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Books exposes the parser's alias matcher.
func (p *Parser) Books() *BookMatcher {
	return p.books
}

// Parse resolves the book from the raw transcript, then reads chapter, verse
// and optional range end from the numeral-normalized transcript. Numbers past
// the third are ignored.
func (p *Parser) Parse(transcript string) (Reference, error) {
	text := norm.NFC.String(transcript)
	p.log.Debug("parse input", "text", text)

	match, ok := p.books.Match(text)
	if !ok {
		p.log.Debug("no book matched", "text", text)
		return Reference{}, ErrNoBookMatched
	}

	numeric := text
	if p.maskBook {
		numeric = match.Mask(text)
	}
	converted := p.numerals.Normalize(numeric)
	numbers := extractNumbers(converted)
	p.log.Debug("parse numbers",
		"book", BookName(match.Book),
		"alias", match.Alias,
		"converted", converted,
		"numbers", numbers,
	)
	if len(numbers) < 2 {
		return Reference{}, ErrInsufficientNumerals
	}

	ref := Reference{
		Book:       match.Book,
		Chapter:    numbers[0],
		VerseStart: numbers[1],
	}
	if len(numbers) > 2 {
		ref.VerseEnd = numbers[2]
	}
	return ref, nil
}

func extractNumbers(text string) []int {
	runs := digitRun.FindAllString(text, -1)
	out := make([]int, 0, len(runs))
	for _, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil || n > math.MaxInt32 {
			n = math.MaxInt32
		}
		out = append(out, n)
	}
	return out
}
