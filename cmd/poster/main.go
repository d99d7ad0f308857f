package main

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/poster"
	"github.com/bodgit/poster/config"
	"github.com/bodgit/poster/raster"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
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

// loadConfig returns the configuration file named by --config, or the
// defaults if the default location does not exist
func loadConfig(c *cli.Context) (config.Config, error) {
	file := c.String("config")
	if _, err := os.Stat(file); err != nil {
		if !c.IsSet("config") && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return config.Config{}, err
	}
	return config.Read(file)
}

// flagConfig returns the configuration with any flags given on the command
// line applied over it, validated as a configuration file would be
func flagConfig(c *cli.Context) (config.Config, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return config.Config{}, err
	}

	if c.IsSet("db") {
		conf.Database = c.String("db")
	}
	if c.IsSet("format") {
		conf.Format = c.String("format")
	}
	if c.IsSet("strict") {
		conf.Strict = c.Bool("strict")
	}
	if c.IsSet("colors") {
		conf.Colors = c.Int("colors")
	}
	if c.IsSet("dither") {
		conf.Dither = c.Bool("dither")
	}
	if c.IsSet("scale") {
		conf.Scale = c.Int("scale")
	}

	// Accept the short format names
	if f, err := poster.ParseFormat(conf.Format); err == nil {
		conf.Format = f.String()
	}

	if err := conf.ValidateFields(); err != nil {
		return config.Config{}, err
	}

	return conf, nil
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"F"},
		Usage:   "output format (\"binary\" or \"json\")",
	}
}

func convert(c *cli.Context) error {
	conf, err := flagConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := poster.ParseFormat(conf.Format)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p := poster.New(newLogger(c), conf.Strict)

	out, err := p.Convert(c.String("input"), c.String("output"), f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Println(out)

	return nil
}

func render(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	conf, err := flagConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p := poster.New(newLogger(c), conf.Strict)
	scale := conf.Scale

	v, _, err := p.Load(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	switch v := v.(type) {
	case *poster.Image:
		pm, err := raster.Render(v)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if err := png.Encode(out, raster.Scale(pm, scale)); err != nil {
			return cli.NewExitError(err, 1)
		}
	case *poster.Collection:
		g, err := raster.RenderCollection(v, c.Int("delay"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		for i := range g.Image {
			g.Image[i] = raster.Scale(g.Image[i], scale)
		}
		g.Config.Width *= scale
		g.Config.Height *= scale
		if err := gif.EncodeAll(out, g); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return out.Close()
}

func importImage(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	conf, err := flagConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := poster.ParseFormat(conf.Format)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	logger := newLogger(c)
	colors := conf.Colors
	dither := conf.Dither

	in, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer in.Close()

	var v poster.Value
	if strings.ToLower(filepath.Ext(in.Name())) == ".gif" {
		g, err := gif.DecodeAll(in)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if len(g.Image) > 1 {
			col, err := raster.FromGIF(g, colors, dither)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			col.Title = poster.Present(strings.TrimSuffix(filepath.Base(in.Name()), filepath.Ext(in.Name())))
			v = col
		} else if len(g.Image) == 1 {
			m, err := raster.FromImage(g.Image[0], colors, dither)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			v = m
		}
	} else {
		src, name, err := image.Decode(in)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		logger.Printf("Decoded %s image \"%s\"\n", name, in.Name())
		m, err := raster.FromImage(src, colors, dither)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		v = m
	}
	if v == nil {
		return cli.NewExitError(errors.New("no images found"), 1)
	}

	out, err := poster.Save(v, c.Args().Get(1), f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Println(out)

	return nil
}

func openLibrary(c *cli.Context) (*poster.Library, *poster.Poster, error) {
	conf, err := flagConfig(c)
	if err != nil {
		return nil, nil, err
	}
	lib, err := poster.OpenLibrary(conf.Database)
	if err != nil {
		return nil, nil, err
	}
	return lib, poster.New(newLogger(c), conf.Strict), nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "poster"
	app.Usage = "Palette indexed 2D image conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"POSTER_CONFIG"},
			Value:   filepath.Join(cwd, config.DefaultLocation),
			Usage:   "path to configuration file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"POSTER_DB"},
			Usage:   "path to library database",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on decode warnings and inconsistent images",
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
			Usage:       "Convert between binary and JSON forms",
			Description: "The input format and kind are taken from the file extension (.2db, .2dj, .2dba, .2dja), the output extension is set automatically.",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "input",
					Aliases:  []string{"i"},
					Usage:    "input file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "output file",
					Required: true,
				},
				formatFlag(),
			},
			Action: convert,
		},
		{
			Name:        "render",
			Usage:       "Render an image as PNG or a collection as an animated GIF",
			Description: "",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Usage: "integer scale factor",
				},
				&cli.IntFlag{
					Name:  "delay",
					Value: 50,
					Usage: "delay between collection pages in hundredths of a second",
				},
			},
			Action: render,
		},
		{
			Name:        "import",
			Usage:       "Import a PNG, JPEG, GIF, BMP, TIFF or WEBP image",
			Description: "Animated GIFs are imported as a collection.",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				formatFlag(),
				&cli.IntFlag{
					Name:  "colors",
					Usage: "maximum palette size",
				},
				&cli.BoolFlag{
					Name:  "dither",
					Usage: "dither when reducing colors",
				},
			},
			Action: importImage,
		},
		{
			Name:  "library",
			Usage: "Manage the library database",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add images and collections",
					ArgsUsage: "FILE...",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						lib, p, err := openLibrary(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer lib.Close()

						for _, file := range c.Args().Slice() {
							if err := p.Add(lib, file); err != nil {
								return cli.NewExitError(err, 1)
							}
						}

						return nil
					},
				},
				{
					Name:      "scan",
					Usage:     "Scan a directory and add everything found",
					ArgsUsage: "DIRECTORY",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						lib, p, err := openLibrary(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer lib.Close()

						if err := p.Scan(lib, c.Args().First()); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:      "export",
					Usage:     "Write a stored collection",
					ArgsUsage: "NAME OUTPUT",
					Flags: []cli.Flag{
						formatFlag(),
					},
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						conf, err := flagConfig(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						f, err := poster.ParseFormat(conf.Format)
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						lib, _, err := openLibrary(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer lib.Close()

						col, err := lib.Collection(c.Args().Get(0))
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						out, err := poster.Save(col, c.Args().Get(1), f)
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						fmt.Println(out)

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List stored collections",
					Action: func(c *cli.Context) error {
						lib, _, err := openLibrary(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer lib.Close()

						names, err := lib.Collections()
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						for _, name := range names {
							fmt.Println(name)
						}

						return nil
					},
				},
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
