package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/marathon/internal/movie"
)

// ErrUnsupportedFile is returned for catalog files that are neither TOML nor YAML.
var ErrUnsupportedFile = errors.New("catalog file must be .toml, .yaml or .yml")

// File is the on-disk catalog format.
//
//	[[movies]]
//	title = "Alien"
//	duration = "1hr 57min"
//	showtimes = ["10:00", "2:30pm"]
//	mandatory = true
type File struct {
	Movies []FileMovie `toml:"movies" yaml:"movies"`
}

// FileMovie is one catalog file entry.
type FileMovie struct {
	Title     string   `toml:"title" yaml:"title"`
	Duration  string   `toml:"duration" yaml:"duration"`
	Showtimes []string `toml:"showtimes" yaml:"showtimes"`
	Mandatory bool     `toml:"mandatory" yaml:"mandatory"`
}

// Parse decodes catalog data. ext selects the decoder (".toml", ".yaml", ".yml").
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w, got %q", ErrUnsupportedFile, ext)
	}
	return &f, nil
}

// ReadFile reads and decodes a catalog file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Import adds every entry of f. It stops at the first invalid entry and
// returns how many were added before it.
func (c *Catalog) Import(ctx context.Context, f *File) (int, error) {
	for i, fm := range f.Movies {
		in := Input{
			Title:     fm.Title,
			Duration:  fm.Duration,
			Showtimes: c.joinShowtimes(fm.Showtimes),
			Mandatory: fm.Mandatory,
		}
		if _, err := c.Add(ctx, in); err != nil {
			return i, fmt.Errorf("movie %d (%q): %w", i+1, fm.Title, err)
		}
	}
	return len(f.Movies), nil
}

// LoadFile reads path and imports it into the catalog.
func (c *Catalog) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	return c.Import(ctx, f)
}

// joinShowtimes turns the file's list back into input text for the
// configured format.
func (c *Catalog) joinShowtimes(times []string) string {
	if c.format == movie.FormatList {
		return strings.Join(times, ",")
	}
	return strings.Join(times, "\n")
}
