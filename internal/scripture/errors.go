package scripture

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBookMatched indicates that no book alias occurs in the transcript.
	ErrNoBookMatched = errors.New("scripture: no book matched")
	// ErrInsufficientNumerals indicates that fewer than two numbers were found.
	ErrInsufficientNumerals = errors.New("scripture: chapter and verse numbers missing")
	// ErrDataNotLoaded is returned by every lookup when the corpus failed to load.
	ErrDataNotLoaded = errors.New("scripture: corpus not loaded")
)

// FallbackText is spoken when a transcript cannot be resolved to a reference.
const FallbackText = "죄송합니다, 성경 구절을 인식하지 못했습니다. 다시 한번 말씀해주세요."

const dataNotLoadedText = "성경 데이터가 로드되지 않았습니다."

// LookupKind classifies a failed corpus lookup.
type LookupKind int

const (
	BookOutOfRange LookupKind = iota + 1
	ChapterNotFound
	VerseNotFound
	NotFound
)

func (k LookupKind) String() string {
	switch k {
	case BookOutOfRange:
		return "book_out_of_range"
	case ChapterNotFound:
		return "chapter_not_found"
	case VerseNotFound:
		return "verse_not_found"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// LookupError describes a lookup that could not be satisfied. Max carries the
// chapter count for ChapterNotFound and the verse count for VerseNotFound.
type LookupError struct {
	Kind     LookupKind
	Book     BookID
	BookName string
	Chapter  int
	Verse    int
	Max      int
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case BookOutOfRange:
		return fmt.Sprintf("scripture: book %d out of range", int(e.Book))
	case ChapterNotFound:
		return fmt.Sprintf("scripture: %s has no chapter %d (max %d)", e.BookName, e.Chapter, e.Max)
	case VerseNotFound:
		return fmt.Sprintf("scripture: %s %d has no verse %d (max %d)", e.BookName, e.Chapter, e.Verse, e.Max)
	default:
		return fmt.Sprintf("scripture: %s %d:%d not found", e.BookName, e.Chapter, e.Verse)
	}
}

// Message renders the sentence spoken back to the user for err. Parse
// failures and unrecognised errors yield FallbackText.
func Message(err error) string {
	if errors.Is(err, ErrDataNotLoaded) {
		return dataNotLoadedText
	}
	var lerr *LookupError
	if errors.As(err, &lerr) {
		switch lerr.Kind {
		case BookOutOfRange:
			return fmt.Sprintf("잘못된 책 번호입니다: %d", int(lerr.Book))
		case ChapterNotFound:
			return fmt.Sprintf("%s에는 %d장이 없습니다. (총 %d장)", lerr.BookName, lerr.Chapter, lerr.Max)
		case VerseNotFound:
			return fmt.Sprintf("%s %d장에는 %d절이 없습니다. (총 %d절)", lerr.BookName, lerr.Chapter, lerr.Verse, lerr.Max)
		default:
			return fmt.Sprintf("%s %d장 %d절을 찾을 수 없습니다.", lerr.BookName, lerr.Chapter, lerr.Verse)
		}
	}
	return FallbackText
}
