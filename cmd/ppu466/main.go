package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/ppu466"
	"github.com/bodgit/ppu466/ppm"
	"github.com/bodgit/ppu466/prepare"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

const (
	defaultSprites = "sprites"
	defaultTables  = "tables.ppu"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func fileSize(file string) string {
	info, err := os.Stat(file)
	if err != nil {
		return "unknown size"
	}
	return humanize.Bytes(uint64(info.Size()))
}

func openCatalog(c *cli.Context) (*ppu466.Catalog, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return ppu466.NewCatalog(c.String("db"))
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	catalog, err := openCatalog(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if catalog != nil {
		defer catalog.Close()
	}

	session, err := ppu466.New(catalog, logger).ConvertDirectory(c.Args().First(), c.String("sprites"), c.String("tables"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	tables := c.String("tables")
	fmt.Printf("%d tiles, %d palettes written to %s (%s)\n", len(session.Tiles()), len(session.Palettes()), tables, fileSize(tables))
	if n := len(session.Tiles()); n > ppu466.MaxTiles {
		logger.Printf("Warning: %d tiles won't fit the %d tile table\n", n, ppu466.MaxTiles)
	}
	if n := len(session.Palettes()); n > ppu466.MaxPalettes {
		logger.Printf("Warning: %d palettes won't fit the %d palette table\n", n, ppu466.MaxPalettes)
	}

	return nil
}

func load(c *cli.Context) error {
	library, err := ppu466.LoadLibrary(c.String("sprites"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var rt ppu466.Runtime
	if err := rt.LoadTablesFile(c.String("tables")); err != nil {
		return cli.NewExitError(err, 1)
	}

	slot := 0
	for _, name := range library.Names() {
		s, err := library.Lookup(name)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Printf("%s: %d tiles\n", name, len(s.Tiles))

		if c.Bool("place") {
			if slot, err = rt.Place(slot, s, 0, 0); err != nil {
				return cli.NewExitError(err, 1)
			}
		}
	}

	fmt.Printf("%d sprites, %d tiles, %d palettes\n", library.Len(), rt.NumTiles(), rt.NumPalettes())
	if c.Bool("place") {
		fmt.Printf("%d of %d sprite slots used\n", slot, ppu466.MaxSprites)
	}

	return nil
}

func preview(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	library, err := ppu466.LoadLibrary(c.String("sprites"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	s, err := library.Lookup(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	tiles, palettes, err := ppu466.ReadTablesFile(c.String("tables"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var m image.Image
	m, err = ppu466.Render(s, tiles, palettes)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if factor := c.Int("scale"); factor > 1 {
		b := m.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, xdraw.Src, nil)
		m = dst
	}

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func prepareImage(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	in, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer in.Close()

	m, format, err := image.Decode(in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	logger.Printf("Decoded %s image %dx%d\n", format, m.Bounds().Dx(), m.Bounds().Dy())

	opts := prepare.Options{
		Width:  c.Int("width"),
		Height: c.Int("height"),
		Colors: c.Int("colors"),
		Dither: c.Bool("dither"),
	}
	if c.Bool("kmeans") {
		opts.Quantizer = prepare.KMeans
	} else if opts.Dither {
		return cli.NewExitError(errors.New("dithering requires --kmeans"), 1)
	}

	out, err := prepare.Image(m, opts)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if err := ppm.Encode(f, out); err != nil {
		return cli.NewExitError(err, 1)
	}

	logger.Printf("Wrote %s (%s)\n", c.Args().Get(1), fileSize(c.Args().Get(1)))

	return nil
}

func listCatalog(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if catalog == nil {
		return cli.NewExitError(errors.New("no catalog database given"), 1)
	}
	defer catalog.Close()

	entries, err := catalog.Entries()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, e := range entries {
		fmt.Printf("%s\t%d\t%s\t%s\n", e.Name, e.Tiles, e.SHA1, e.Source)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "ppu466"
	app.Usage = "PPU466 tile and palette conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "sprites",
			EnvVars: []string{"PPU466_SPRITES"},
			Value:   filepath.Join(cwd, defaultSprites),
			Usage:   "directory of sprite files",
		},
		&cli.StringFlag{
			Name:    "tables",
			EnvVars: []string{"PPU466_TABLES"},
			Value:   filepath.Join(cwd, defaultTables),
			Usage:   "path to tile and palette tables",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PPU466_DB"},
			Usage:   "path to optional catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a directory of images",
			Description: "Every image below DIRECTORY is converted into a sprite file and the shared tables are written once all images are done.",
			ArgsUsage:   "DIRECTORY",
			Action:      convert,
		},
		{
			Name:  "load",
			Usage: "Load sprites and tables as the display core would",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "place",
					Usage: "also place every sprite into the sprite slots",
				},
			},
			Action: load,
		},
		{
			Name:      "preview",
			Usage:     "Render a sprite to a PNG image",
			ArgsUsage: "NAME FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "scale factor",
				},
			},
			Action: preview,
		},
		{
			Name:        "prepare",
			Usage:       "Reduce an image to at most four colors per tile",
			Description: "The result is written as a plain PPM image ready to be converted.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Usage: "rescale to this width",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "rescale to this height",
				},
				&cli.IntFlag{
					Name:  "colors",
					Value: prepare.DefaultColors,
					Usage: "maximum number of colors in the whole image",
				},
				&cli.BoolFlag{
					Name:  "kmeans",
					Usage: "use k-means rather than median cut quantization",
				},
				&cli.BoolFlag{
					Name:  "dither",
					Usage: "dither when quantizing",
				},
			},
			Action: prepareImage,
		},
		{
			Name:   "catalog",
			Usage:  "List the sprites recorded in the catalog database",
			Action: listCatalog,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
