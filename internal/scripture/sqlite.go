package scripture

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE books (
		idx  INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE verses (
		book    INTEGER NOT NULL,
		chapter INTEGER NOT NULL,
		verse   INTEGER NOT NULL,
		text    TEXT NOT NULL,
		PRIMARY KEY (book, chapter, verse)
	)`,
}

func loadSQLite(path string) ([]Book, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("scripture: open sqlite corpus: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scripture: open sqlite corpus: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT idx, name FROM books ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("scripture: query books: %w", err)
	}
	var books []Book
	for rows.Next() {
		var (
			idx  int
			name string
		)
		if err := rows.Scan(&idx, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scripture: scan book: %w", err)
		}
		for len(books) <= idx {
			books = append(books, Book{Name: BookName(BookID(len(books)))})
		}
		books[idx].Name = name
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scripture: iterate books: %w", err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("scripture: corpus is empty")
	}

	rows, err = db.Query(`SELECT book, chapter, verse, text FROM verses ORDER BY book, chapter, verse`)
	if err != nil {
		return nil, fmt.Errorf("scripture: query verses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			book, chapter, verse int
			text                 string
		)
		if err := rows.Scan(&book, &chapter, &verse, &text); err != nil {
			return nil, fmt.Errorf("scripture: scan verse: %w", err)
		}
		if book < 0 || book >= len(books) || chapter < 1 || verse < 1 {
			continue
		}
		b := &books[book]
		for len(b.Chapters) < chapter {
			b.Chapters = append(b.Chapters, nil)
		}
		verses := b.Chapters[chapter-1]
		for len(verses) < verse {
			verses = append(verses, "")
		}
		verses[verse-1] = text
		b.Chapters[chapter-1] = verses
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scripture: iterate verses: %w", err)
	}
	return books, nil
}

// ExportSQLite writes the corpus held by store into a new SQLite database at
// path. The file must not already exist.
func ExportSQLite(ctx context.Context, store *Store, path string) error {
	if !store.Loaded() {
		return ErrDataNotLoaded
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("scripture: export target %s already exists", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("scripture: create sqlite corpus: %w", err)
	}
	defer db.Close()

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("scripture: create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("scripture: begin export: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	bookStmt, err := tx.PrepareContext(ctx, `INSERT INTO books (idx, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("scripture: prepare books insert: %w", err)
	}
	defer bookStmt.Close()
	verseStmt, err := tx.PrepareContext(ctx, `INSERT INTO verses (book, chapter, verse, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("scripture: prepare verses insert: %w", err)
	}
	defer verseStmt.Close()

	for i, b := range store.Books() {
		if _, err := bookStmt.ExecContext(ctx, i, b.Name); err != nil {
			return fmt.Errorf("scripture: insert book %d: %w", i, err)
		}
		for c, verses := range b.Chapters {
			for v, text := range verses {
				if _, err := verseStmt.ExecContext(ctx, i, c+1, v+1, text); err != nil {
					return fmt.Errorf("scripture: insert %s %d:%d: %w", b.Name, c+1, v+1, err)
				}
			}
		}
	}
	return tx.Commit()
}
