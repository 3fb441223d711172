package scripture

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

var (
	// ErrNotArray indicates that the corpus document is not a JSON array.
	ErrNotArray = errors.New("scripture: corpus is not a JSON array")
	// ErrMissingChapters indicates that the first book carries no chapters field.
	ErrMissingChapters = errors.New("scripture: first book has no chapters field")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type jsonBook struct {
	Abbrev   string      `json:"abbrev"`
	Name     string      `json:"book"`
	Chapters *[][]string `json:"chapters"`
}

// Load reads the corpus at path. The format is chosen by extension: .json,
// .json.xz, or .db/.sqlite/.sqlite3. On failure Load returns an unloaded Store
// together with the error so callers can keep serving in degraded mode.
func Load(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scripture.corpus", "path", path)

	store, err := load(path)
	if err != nil {
		return UnloadedStore(path), err
	}

	if n := store.BookCount(); n < BookCount {
		log.Warn("corpus incomplete", "books", n, "expected", BookCount)
	}
	if v, ok := store.Verse(0, 1, 1); ok {
		log.Info("corpus self-check passed", "genesis_1_1", truncateRunes(v, 30))
	} else {
		log.Warn("corpus self-check failed: Genesis 1:1 missing")
	}
	log.Info("corpus loaded", "books", store.BookCount(), "digest", store.Digest())
	return store, nil
}

func load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripture: read corpus: %w", err)
	}
	digest := Digest(raw)

	var books []Book
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".db", ".sqlite", ".sqlite3":
		books, err = loadSQLite(path)
	case ".xz":
		var r *xz.Reader
		r, err = xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("scripture: open xz stream: %w", err)
		}
		var data []byte
		if data, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("scripture: decompress corpus: %w", err)
		}
		books, err = DecodeJSON(data)
	default:
		books, err = DecodeJSON(raw)
	}
	if err != nil {
		return nil, err
	}

	store := NewStore(books)
	store.digest = digest
	store.source = path
	return store, nil
}

// DecodeJSON parses a corpus document: an array of book objects whose
// chapters field is an array of arrays of verse strings. Only the first book
// is required to carry chapters; later books without one have no chapters.
func DecodeJSON(data []byte) ([]Book, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, fmt.Errorf("scripture: decode corpus: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("scripture: corpus is empty")
	}

	books := make([]Book, 0, len(items))
	for i, item := range items {
		var jb jsonBook
		if err := json.Unmarshal(item, &jb); err != nil {
			return nil, fmt.Errorf("scripture: decode book %d: %w", i, err)
		}
		if i == 0 && jb.Chapters == nil {
			return nil, ErrMissingChapters
		}
		book := Book{Name: jb.Name}
		if i < BookCount {
			book.Name = BookName(BookID(i))
		}
		if jb.Chapters != nil {
			book.Chapters = *jb.Chapters
		}
		books = append(books, book)
	}
	return books, nil
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
