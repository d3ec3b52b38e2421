package ppu466

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/ppu466/chunk"
)

// TileRef places one tile with one palette within a sprite. The offsets are
// in whole tiles relative to the bottom-left tile of the sprite.
type TileRef struct {
	TileIndex    uint16
	PaletteIndex uint16
	OffsetX      int16
	OffsetY      int16
}

// Sprite is a named list of tile references. The order is the order in which
// tiles are drawn.
type Sprite struct {
	Name  string
	Tiles []TileRef
}

func spriteName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// WriteSprite writes the tile references of s to w.
func WriteSprite(w io.Writer, s *Sprite) error {
	return chunk.Write(w, TagRefs, s.Tiles)
}

// ReadSprite reads a sprite written by WriteSprite from r. Any data after the
// tile references is an error.
func ReadSprite(r io.Reader, name string) (*Sprite, error) {
	s := &Sprite{Name: name}
	if err := chunk.Read(r, TagRefs, &s.Tiles); err != nil {
		return nil, err
	}
	if err := chunk.ExpectEOF(r); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSprite reads a sprite from the named file, naming it after the file
// without its extension.
func LoadSprite(file string) (*Sprite, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	s, err := ReadSprite(bytes.NewReader(b), spriteName(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}

// Library is a set of sprites keyed by name.
type Library struct {
	sprites map[string]*Sprite
}

func NewLibrary() *Library {
	return &Library{
		sprites: make(map[string]*Sprite),
	}
}

// Add adds s to the library unless a sprite with the same name exists.
func (l *Library) Add(s *Sprite) error {
	if _, ok := l.sprites[s.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSprite, s.Name)
	}
	l.sprites[s.Name] = s
	return nil
}

// Lookup returns the named sprite.
func (l *Library) Lookup(name string) (*Sprite, error) {
	s, ok := l.sprites[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingSprite, name)
	}
	return s, nil
}

func (l *Library) Len() int {
	return len(l.sprites)
}

// Names returns the sprite names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.sprites))
	for name := range l.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkNames(files []string) error {
	seen := make(map[string]string, len(files))
	for _, file := range files {
		name := spriteName(file)
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q from %s and %s", ErrDuplicateSprite, name, other, file)
		}
		seen[name] = file
	}
	return nil
}

// LoadLibrary loads every file below dir as a sprite. All names are checked
// for duplicates before any file is read.
func LoadLibrary(dir string) (*Library, error) {
	files, err := findFiles(dir, func(string) bool { return true })
	if err != nil {
		return nil, err
	}

	if err := checkNames(files); err != nil {
		return nil, err
	}

	l := NewLibrary()
	for _, file := range files {
		s, err := LoadSprite(file)
		if err != nil {
			return nil, err
		}
		if err := l.Add(s); err != nil {
			return nil, err
		}
	}

	return l, nil
}
