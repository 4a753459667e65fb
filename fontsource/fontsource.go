// Package fontsource locates the font file an atlas is rasterized from.
//
// Fonts are tried from a prioritized list of candidates: an explicit file
// given by the caller, well-known relative and system paths, fonts found by
// name in the system font directories, and finally the Go Mono font compiled
// into the binary. Without any usable font nothing can be rendered, so
// Resolve failing with ErrNoFontSource is fatal for the caller.
package fontsource

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/go-text/typesetting/font"
	"github.com/gogpu/easyfont/internal/logging"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrNoFontSource is returned when none of the candidates yields a usable font.
var ErrNoFontSource = errors.New("fontsource: no usable font source found")

// Source is a loaded font file.
type Source struct {
	// Name identifies where the font came from (a path or "embedded:gomono").
	Name string
	Data []byte
}

// Candidate is one place a font may be loaded from.
type Candidate struct {
	Name string
	Load func() ([]byte, error)
}

// File returns a candidate reading the font file at path.
func File(path string) Candidate {
	return Candidate{
		Name: path,
		Load: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

// System returns a candidate looking up a font file by name in the system
// font directories.
func System(name string) Candidate {
	return Candidate{
		Name: "system:" + name,
		Load: func() ([]byte, error) {
			path, err := findfont.Find(name)
			if err != nil {
				return nil, err
			}
			return os.ReadFile(path)
		},
	}
}

// Embedded returns a candidate for the Go Mono font linked into the binary.
func Embedded() Candidate {
	return Candidate{
		Name: "embedded:gomono",
		Load: func() ([]byte, error) { return gomono.TTF, nil },
	}
}

// DefaultCandidates returns the default search order.
func DefaultCandidates() []Candidate {
	return []Candidate{
		File("extra/Inconsolata-Regular.ttf"),
		File("Inconsolata-Regular.ttf"),
		File("C:/Windows/Fonts/consola.ttf"),
		File("/usr/share/fonts/dejavu/DejaVuSansMono.ttf"),
		System("DejaVuSansMono.ttf"),
		Embedded(),
	}
}

// Resolve returns the first usable font. A non-empty explicit path is tried
// before the candidates. A candidate is usable if it loads and parses as a
// TrueType/OpenType font.
func Resolve(explicit string, candidates []Candidate) (Source, error) {
	if explicit != "" {
		candidates = append([]Candidate{File(explicit)}, candidates...)
	}

	log := logging.Logger()
	var errs []error
	for _, c := range candidates {
		data, err := load(c)
		if err != nil {
			log.Debug("fontsource: candidate rejected", "candidate", c.Name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}
		log.Info("fontsource: using font", "source", c.Name)
		return Source{Name: c.Name, Data: data}, nil
	}
	if len(errs) == 0 {
		return Source{}, ErrNoFontSource
	}
	return Source{}, fmt.Errorf("%w: %w", ErrNoFontSource, errors.Join(errs...))
}

func load(c Candidate) ([]byte, error) {
	if c.Load == nil {
		return nil, errors.New("no loader")
	}
	data, err := c.Load()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty font file")
	}
	if _, err := font.ParseTTF(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return data, nil
}
