package ppu466

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/bodgit/ppu466/ppm" // register PPM
	_ "golang.org/x/image/bmp"      // register BMP
)

var imageExts = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".ppm":  {},
}

func isImage(file string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(file))]
	return ok
}

// findFiles returns every regular file below base accepted by match, in
// lexical order.
func findFiles(base string, match func(string) bool) ([]string, error) {
	var files []string
	if err := filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
		if file != base && info.Name()[0] == '.' {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Ignore anything that isn't a normal file
		if !info.Mode().IsRegular() || !match(file) {
			return nil
		}

		files = append(files, file)

		return nil
	}); err != nil {
		return nil, err
	}
	return files, nil
}

func decodeImage(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	tee := io.TeeReader(f, h)
	m, _, err := image.Decode(tee)
	if err != nil {
		return nil, "", err
	}

	// Anything after the image data still counts towards the hash
	if _, err := io.Copy(ioutil.Discard, tee); err != nil {
		return nil, "", err
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (c *Converter) record(s *Sprite, file, sha string) error {
	if c.catalog == nil {
		return nil
	}

	other, err := c.catalog.FindBySHA1(sha)
	if err != nil {
		return err
	}
	if other != "" && other != s.Name {
		c.logger.Printf("\"%s\" has the same source image as \"%s\"\n", s.Name, other)
	}

	return c.catalog.Record(CatalogEntry{
		Name:   s.Name,
		Source: file,
		SHA1:   sha,
		Tiles:  len(s.Tiles),
	})
}

// ConvertDirectory converts every image below src. Each image is written to
// spriteDir as a sprite file named after the image and once all images are
// converted the shared tables are written to tablesFile. The first error
// stops the conversion.
func (c *Converter) ConvertDirectory(src, spriteDir, tablesFile string) (*Session, error) {
	dir, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}

	files, err := findFiles(dir, isImage)
	if err != nil {
		return nil, err
	}

	if err := checkNames(files); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(spriteDir, 0755); err != nil {
		return nil, err
	}

	if c.catalog != nil {
		if err := c.catalog.Reset(); err != nil {
			return nil, err
		}
	}

	session := NewSession(c.logger)

	for _, file := range files {
		name := spriteName(file)

		m, sha, err := decodeImage(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		s, err := session.ConvertImage(name, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		b := new(bytes.Buffer)
		if err := WriteSprite(b, s); err != nil {
			return nil, err
		}
		out := filepath.Join(spriteDir, name+SpriteExt)
		if err := os.WriteFile(out, b.Bytes(), 0644); err != nil {
			return nil, err
		}

		if err := c.record(s, file, sha); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(tablesFile), 0755); err != nil {
		return nil, err
	}
	if err := session.WriteTablesFile(tablesFile); err != nil {
		return nil, err
	}

	c.logger.Printf("Wrote %d tiles and %d palettes to \"%s\"\n", len(session.tiles), len(session.palettes), tablesFile)

	return session, nil
}
