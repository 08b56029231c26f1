package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/btreekit/btree"
	"golang.org/x/term"
)

// DefaultWidth is the line width used if output is not a terminal.
const DefaultWidth = 65

// Printer writes tree renderings and event logs to a console.
type Printer struct {
	Width   int // clip lines to this many characters; 0 means no clipping
	w       io.Writer
	colors  map[btree.EventKind]*color.Color
	ok, bad *color.Color
}

// New creates a printer writing to w. The line width is taken from the
// terminal if stdout is one.
//
// colors maps event kinds to colors. It may contain just a subset of the
// kinds; if it is nil, a default palette is used.
func New(w io.Writer, colors map[btree.EventKind]*color.Color) *Printer {
	p := &Printer{
		Width:  WidthFromTerminal(),
		w:      w,
		colors: colors,
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed, color.Bold),
	}
	if p.colors == nil {
		p.colors = makeDefaultPalette()
	}
	return p
}

func makeDefaultPalette() map[btree.EventKind]*color.Color {
	return map[btree.EventKind]*color.Color{
		btree.KeyInserted:  color.New(color.FgGreen),
		btree.KeyRemoved:   color.New(color.FgRed),
		btree.KeyReplaced:  color.New(color.FgYellow),
		btree.NodeSplit:    color.New(color.FgBlue),
		btree.NodesMerged:  color.New(color.FgMagenta),
		btree.RotatedLeft:  color.New(color.FgCyan),
		btree.RotatedRight: color.New(color.FgCyan),
		btree.RootGrown:    color.New(color.FgBlue, color.Bold),
		btree.RootShrunk:   color.New(color.FgMagenta, color.Bold),
	}
}

// DisableColor switches off colorized output for this printer, regardless
// of the global setting of package color.
func (p *Printer) DisableColor() {
	for _, c := range p.colors {
		c.DisableColor()
	}
	p.ok.DisableColor()
	p.bad.DisableColor()
}

// Status outputs a line of text, colored as success or failure.
func (p *Printer) Status(success bool, format string, args ...interface{}) {
	c := p.ok
	if !success {
		c = p.bad
	}
	c.Fprintf(p.w, format, args...)
	io.WriteString(p.w, "\n")
}

// Observer returns an observer which logs every event of a tree to p,
// one line per event.
func Observer[K any](p *Printer) btree.Observer[K] {
	return btree.ObserverFunc[K](func(e btree.Event[K]) {
		PrintEvent(p, e)
	})
}

// PrintEvent outputs a single event, with the event kind colorized.
func PrintEvent[K any](p *Printer, e btree.Event[K]) {
	name := fmt.Sprintf("%-13s", e.Kind.String())
	if c, ok := p.colors[e.Kind]; ok {
		c.Fprint(p.w, name)
	} else {
		io.WriteString(p.w, name)
	}
	fmt.Fprintf(p.w, " path=%v keys=%v nodes=%v\n", e.Path, e.Keys, e.Nodes)
}

// PrintTree outputs the nodes of a tree, one line per node, clipped to the
// printer's width.
func PrintTree[K any](p *Printer, tree *btree.Tree[K]) error {
	var buf bytes.Buffer
	tree.Print(&buf)
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		line := clip(scanner.Text(), p.Width)
		if _, err := io.WriteString(p.w, line+"\n"); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// clip shortens s to at most width runes, marking a clipped line with an
// ellipsis.
func clip(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// --- Width of terminals ----------------------------------------------------

// WidthFromTerminal checks wether stdout is a terminal, and if so it reads
// the terminal's width and derives a line width from it.
func WidthFromTerminal() int {
	width := DefaultWidth
	if term.IsTerminal(1) {
		w, _, err := term.GetSize(1)
		if err == nil {
			switch {
			case w > 65:
				width = w - 10
			case w > 30:
				width = w - 5
			case w > 10:
				width = w
			default:
				width = 10
			}
		}
	}
	T().Debugf("console: setting line width to %d", width)
	return width
}
