package presets

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/alex65536/go-chess/chess"

	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/randutil"
)

type Preset struct {
	Name  string
	FEN   string
	Board fen.Board
}

type Book struct {
	presets []Preset
	rnd     *rand.Rand
}

func parseLine(ln string) (Preset, error) {
	name, fenText, ok := strings.Cut(ln, "|")
	if !ok {
		fenText = name
		name = ""
	}
	name = strings.TrimSpace(name)
	fenText = strings.TrimSpace(fenText)

	// Presets must be real positions, not just any layout.
	cb, err := chess.BoardFromFEN(fenText)
	if err != nil {
		return Preset{}, fmt.Errorf("validate fen: %w", err)
	}
	fenText = cb.FEN()
	b, err := fen.Parse(fenText)
	if err != nil {
		return Preset{}, fmt.Errorf("parse layout: %w", err)
	}
	if name == "" {
		name = b.Layout()
	}
	return Preset{Name: name, FEN: fenText, Board: b}, nil
}

// NewBook reads presets, one per line. A line is either a FEN or a name and
// a FEN separated by "|". Empty lines and lines starting with "#" are skipped.
func NewBook(r io.Reader, source rand.Source) (*Book, error) {
	var presets []Preset
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		lineNo++
		ln, err := br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read: %w", err)
			}
			if ln == "" {
				break
			}
		}
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		p, err := parseLine(ln)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		presets = append(presets, p)
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("no presets in book")
	}
	return &Book{
		presets: presets,
		rnd:     rand.New(randutil.NewConcurrentSource(source)),
	}, nil
}

func (b *Book) Len() int {
	return len(b.presets)
}

func (b *Book) All() []Preset {
	res := make([]Preset, len(b.presets))
	copy(res, b.presets)
	return res
}

func (b *Book) Random() Preset {
	return b.presets[b.rnd.IntN(len(b.presets))]
}

// Find returns the preset with the given name, ignoring case.
func (b *Book) Find(name string) (Preset, bool) {
	for _, p := range b.presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

//go:embed data/classic.txt
var classic string

var classicBook = func() *Book {
	b, err := NewBook(strings.NewReader(classic), randutil.DefaultSource())
	if err != nil {
		panic(err)
	}
	return b
}()

func ClassicBook() *Book {
	return classicBook
}
