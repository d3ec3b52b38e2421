package ppu466

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register sqlite3
)

// Catalog is a SQLite database recording where each converted sprite came
// from.
type Catalog struct {
	db *sql.DB
}

type CatalogEntry struct {
	Name   string
	Source string
	SHA1   string
	Tiles  int
}

// NewCatalog opens or creates the catalog in the named file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, source TEXT NOT NULL, sha1 TEXT NOT NULL, tiles INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Reset removes every entry. The tables are rebuilt from scratch by each
// conversion so the catalog is too.
func (c *Catalog) Reset() error {
	_, err := c.db.Exec("DELETE FROM sprite")
	return err
}

// Record adds or replaces the entry for a sprite.
func (c *Catalog) Record(e CatalogEntry) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO sprite (name, source, sha1, tiles) VALUES (?, ?, ?, ?)", e.Name, e.Source, e.SHA1, e.Tiles); err != nil {
		return err
	}
	return nil
}

// FindBySHA1 returns the name of the first sprite converted from a source
// with the given SHA-1, or an empty string if there isn't one.
func (c *Catalog) FindBySHA1(sha string) (string, error) {
	var name string
	switch err := c.db.QueryRow("SELECT name FROM sprite WHERE sha1 = ? ORDER BY id LIMIT 1", sha).Scan(&name); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return name, nil
	default:
		return "", err
	}
}

// Entries returns every entry in the order they were recorded.
func (c *Catalog) Entries() ([]CatalogEntry, error) {
	rows, err := c.db.Query("SELECT name, source, sha1, tiles FROM sprite ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.Name, &e.Source, &e.SHA1, &e.Tiles); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
