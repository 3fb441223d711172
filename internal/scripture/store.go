package scripture

import (
	"strconv"
	"strings"
)

// Book is one book of the corpus. Chapters and verses are stored 0-based.
type Book struct {
	Name     string
	Chapters [][]string
}

// Store is an immutable in-memory corpus. All methods are safe for
// concurrent use without locking.
type Store struct {
	books  []Book
	loaded bool
	digest string
	source string
}

// NewStore wraps books in a loaded Store. Books without a display name get the
// canonical one.
func NewStore(books []Book) *Store {
	cp := make([]Book, len(books))
	for i, b := range books {
		if b.Name == "" {
			b.Name = BookName(BookID(i))
		}
		cp[i] = b
	}
	return &Store{books: cp, loaded: true}
}

// UnloadedStore returns a Store that answers every lookup with ErrDataNotLoaded.
func UnloadedStore(source string) *Store {
	return &Store{source: source}
}

// Loaded reports whether the corpus is available.
func (s *Store) Loaded() bool { return s != nil && s.loaded }

// BookCount returns the number of books held.
func (s *Store) BookCount() int {
	if s == nil {
		return 0
	}
	return len(s.books)
}

// Digest returns the BLAKE3 digest of the source document, if known.
func (s *Store) Digest() string {
	if s == nil {
		return ""
	}
	return s.digest
}

// Source returns the path the corpus was loaded from.
func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Books returns the corpus contents. Callers must not modify the result.
func (s *Store) Books() []Book {
	if s == nil {
		return nil
	}
	return s.books
}

// Verse returns the text of a single verse, 1-based.
func (s *Store) Verse(book BookID, chapter, verse int) (string, bool) {
	if !s.Loaded() || book < 0 || int(book) >= len(s.books) {
		return "", false
	}
	chapters := s.books[book].Chapters
	if chapter < 1 || chapter > len(chapters) {
		return "", false
	}
	verses := chapters[chapter-1]
	if verse < 1 || verse > len(verses) {
		return "", false
	}
	return verses[verse-1], true
}

// Lookup renders the verses addressed by ref as "{n}절. {text}" entries joined
// by spaces. A range end beyond the chapter is truncated; an invalid first
// verse fails. A missing or reversed range end reads a single verse.
func (s *Store) Lookup(ref Reference) (string, error) {
	if !s.Loaded() {
		return "", ErrDataNotLoaded
	}

	name := BookName(ref.Book)
	if ref.Book < 0 || int(ref.Book) >= len(s.books) {
		return "", &LookupError{Kind: BookOutOfRange, Book: ref.Book, BookName: name}
	}
	book := s.books[ref.Book]
	if book.Name != "" {
		name = book.Name
	}

	if ref.Chapter < 1 || ref.Chapter > len(book.Chapters) {
		return "", &LookupError{
			Kind:     ChapterNotFound,
			Book:     ref.Book,
			BookName: name,
			Chapter:  ref.Chapter,
			Max:      len(book.Chapters),
		}
	}
	verses := book.Chapters[ref.Chapter-1]

	end := ref.VerseEnd
	if end < ref.VerseStart {
		end = ref.VerseStart
	}

	var parts []string
	for v := ref.VerseStart; v <= end; v++ {
		if v >= 1 && v <= len(verses) {
			parts = append(parts, strconv.Itoa(v)+"절. "+verses[v-1])
			continue
		}
		if v == ref.VerseStart {
			return "", &LookupError{
				Kind:     VerseNotFound,
				Book:     ref.Book,
				BookName: name,
				Chapter:  ref.Chapter,
				Verse:    v,
				Max:      len(verses),
			}
		}
		break
	}

	if len(parts) == 0 {
		return "", &LookupError{
			Kind:     NotFound,
			Book:     ref.Book,
			BookName: name,
			Chapter:  ref.Chapter,
			Verse:    ref.VerseStart,
		}
	}
	return strings.Join(parts, " "), nil
}

// Info summarises the corpus for health reporting.
type Info struct {
	Loaded        bool   `json:"loaded"`
	Books         int    `json:"books"`
	Source        string `json:"source,omitempty"`
	Digest        string `json:"digest,omitempty"`
	GenesisSample string `json:"test_genesis_1_1,omitempty"`
	JohnSample    string `json:"test_john_3_16,omitempty"`
}

const sampleRunes = 50

// Info reports load state and two sample verses truncated to 50 runes.
func (s *Store) Info() Info {
	if !s.Loaded() {
		return Info{Source: s.Source()}
	}
	info := Info{
		Loaded: true,
		Books:  len(s.books),
		Source: s.source,
		Digest: s.digest,
	}
	if v, ok := s.Verse(0, 1, 1); ok {
		info.GenesisSample = truncateRunes(v, sampleRunes)
	}
	if v, ok := s.Verse(42, 3, 16); ok {
		info.JohnSample = truncateRunes(v, sampleRunes)
	}
	return info
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
