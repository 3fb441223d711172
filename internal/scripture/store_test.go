package scripture

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const genesisOneOne = "태초에 하나님이 천지를 창조하시니라"

func testBooks() []Book {
	books := make([]Book, BookCount)
	for i := range books {
		books[i] = Book{Chapters: [][]string{{fmt.Sprintf("%s 1장 1절 본문", BookName(BookID(i)))}}}
	}
	books[0].Chapters = [][]string{
		{
			genesisOneOne,
			"땅이 혼돈하고 공허하며 흑암이 깊음 위에 있고 하나님의 영은 수면 위에 운행하시니라",
			"하나님이 이르시되 빛이 있으라 하시니 빛이 있었고",
		},
		{"천지와 만물이 다 이루어지니라"},
	}
	john := make([][]string, 3)
	for c := range john {
		verses := make([]string, 18)
		for v := range verses {
			verses[v] = fmt.Sprintf("요한복음 %d장 %d절 본문", c+1, v+1)
		}
		john[c] = verses
	}
	john[2][15] = "하나님이 세상을 이처럼 사랑하사 독생자를 주셨으니 이는 그를 믿는 자마다 멸망하지 않고 영생을 얻게 하려 하심이라"
	books[42].Chapters = john
	return books
}

func TestLookupGenesisOneOne(t *testing.T) {
	store := NewStore(testBooks())
	got, err := store.Lookup(Reference{Book: 0, Chapter: 1, VerseStart: 1})
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if want := "1절. " + genesisOneOne; got != want {
		t.Fatalf("Lookup = %q, want %q", got, want)
	}
}

func TestLookupEveryVerseRoundTrip(t *testing.T) {
	store := NewStore(testBooks())
	for b, book := range store.Books() {
		for c, verses := range book.Chapters {
			for v, text := range verses {
				got, err := store.Lookup(Reference{Book: BookID(b), Chapter: c + 1, VerseStart: v + 1})
				if err != nil {
					t.Fatalf("Lookup(%d %d:%d) error: %v", b, c+1, v+1, err)
				}
				if got == "" || !strings.Contains(got, text) {
					t.Fatalf("Lookup(%d %d:%d) = %q, missing %q", b, c+1, v+1, got, text)
				}
			}
		}
	}
}

func TestLookupChapterBounds(t *testing.T) {
	store := NewStore(testBooks())
	for _, chapter := range []int{0, 3, -1} {
		_, err := store.Lookup(Reference{Book: 0, Chapter: chapter, VerseStart: 1})
		var lerr *LookupError
		if !errors.As(err, &lerr) || lerr.Kind != ChapterNotFound {
			t.Fatalf("chapter %d: expected ChapterNotFound, got %v", chapter, err)
		}
		if lerr.Max != 2 {
			t.Fatalf("chapter %d: Max = %d, want 2", chapter, lerr.Max)
		}
	}
	_, err := store.Lookup(Reference{Book: 0, Chapter: 3, VerseStart: 1})
	if got, want := Message(err), "창세기에는 3장이 없습니다. (총 2장)"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestLookupRangeTruncates(t *testing.T) {
	store := NewStore(testBooks())
	got, err := store.Lookup(Reference{Book: 0, Chapter: 1, VerseStart: 2, VerseEnd: 8})
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if !strings.HasPrefix(got, "2절. ") || !strings.Contains(got, " 3절. ") {
		t.Fatalf("unexpected range text: %q", got)
	}
	if strings.Contains(got, "4절.") {
		t.Fatalf("range ran past chapter end: %q", got)
	}
}

func TestLookupRangeJoinsVerses(t *testing.T) {
	store := NewStore(testBooks())
	got, err := store.Lookup(Reference{Book: 42, Chapter: 3, VerseStart: 16, VerseEnd: 17})
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	want := "16절. 하나님이 세상을 이처럼 사랑하사 독생자를 주셨으니 이는 그를 믿는 자마다 멸망하지 않고 영생을 얻게 하려 하심이라 17절. 요한복음 3장 17절 본문"
	if got != want {
		t.Fatalf("Lookup = %q, want %q", got, want)
	}
}

func TestLookupReversedRangeReadsSingleVerse(t *testing.T) {
	store := NewStore(testBooks())
	got, err := store.Lookup(Reference{Book: 0, Chapter: 1, VerseStart: 3, VerseEnd: 1})
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if !strings.HasPrefix(got, "3절. ") || strings.Contains(got, "1절.") {
		t.Fatalf("Lookup = %q, want verse 3 only", got)
	}
}

func TestLookupInvalidStartVerse(t *testing.T) {
	store := NewStore(testBooks())
	for _, verse := range []int{0, 4} {
		_, err := store.Lookup(Reference{Book: 0, Chapter: 1, VerseStart: verse, VerseEnd: 10})
		var lerr *LookupError
		if !errors.As(err, &lerr) || lerr.Kind != VerseNotFound {
			t.Fatalf("verse %d: expected VerseNotFound, got %v", verse, err)
		}
	}
	_, err := store.Lookup(Reference{Book: 0, Chapter: 1, VerseStart: 4})
	if got, want := Message(err), "창세기 1장에는 4절이 없습니다. (총 3절)"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestLookupBookOutOfRange(t *testing.T) {
	store := NewStore(testBooks()[:10])
	_, err := store.Lookup(Reference{Book: 42, Chapter: 3, VerseStart: 16})
	var lerr *LookupError
	if !errors.As(err, &lerr) || lerr.Kind != BookOutOfRange {
		t.Fatalf("expected BookOutOfRange, got %v", err)
	}
	if got, want := Message(err), "잘못된 책 번호입니다: 42"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestLookupBookWithoutChapters(t *testing.T) {
	books := testBooks()
	books[5].Chapters = nil
	_, err := NewStore(books).Lookup(Reference{Book: 5, Chapter: 1, VerseStart: 1})
	if got, want := Message(err), "여호수아에는 1장이 없습니다. (총 0장)"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestLookupNotLoaded(t *testing.T) {
	store := UnloadedStore("missing.json")
	_, err := store.Lookup(Reference{Book: 0, Chapter: 1, VerseStart: 1})
	if !errors.Is(err, ErrDataNotLoaded) {
		t.Fatalf("expected ErrDataNotLoaded, got %v", err)
	}
	if got, want := Message(err), "성경 데이터가 로드되지 않았습니다."; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
	if info := store.Info(); info.Loaded || info.Books != 0 {
		t.Fatalf("unexpected info for unloaded store: %+v", info)
	}
}

func TestMessageNotFound(t *testing.T) {
	err := &LookupError{Kind: NotFound, BookName: "룻기", Chapter: 1, Verse: 2}
	if got, want := Message(err), "룻기 1장 2절을 찾을 수 없습니다."; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestStoreInfo(t *testing.T) {
	info := NewStore(testBooks()).Info()
	if !info.Loaded || info.Books != BookCount {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.GenesisSample != genesisOneOne {
		t.Fatalf("GenesisSample = %q", info.GenesisSample)
	}
	if n := len([]rune(info.JohnSample)); n != 50 {
		t.Fatalf("JohnSample has %d runes, want 50", n)
	}
}

func TestParseThenLookup(t *testing.T) {
	ref, err := newTestParser().Parse("창세기 1장 1절")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got, err := NewStore(testBooks()).Lookup(ref)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if got != "1절. 태초에 하나님이 천지를 창조하시니라" {
		t.Fatalf("Lookup = %q", got)
	}
}
