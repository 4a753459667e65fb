package main

import (
	"fmt"
	"strings"

	"github.com/gogpu/easyfont/palette"
	"github.com/pterm/pterm"
)

func (intp *Intp) printFont() {
	source, family := intp.font.Source()
	fm := intp.font.Metrics()
	data := [][]string{
		{"Source", "Family", "Pixel size", "Atlas", "Ascent", "Descent", "Line gap", "Line dist"},
		{
			source,
			family,
			fmt.Sprintf("%.1f", fm.PixelSize),
			fmt.Sprintf("%dx%d", fm.Width, fm.Height),
			fmt.Sprintf("%.2f", fm.Ascent),
			fmt.Sprintf("%.2f", fm.Descent),
			fmt.Sprintf("%.2f", fm.LineGap),
			fmt.Sprintf("%.2f", fm.LineDist),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) printTokens(text string) {
	tokens := intp.font.Tokens(text)
	if len(tokens) == 0 {
		pterm.Println("no tokens")
		return
	}
	data := [][]string{
		{"Start", "Stop", "Class", "Text"},
	}
	for _, t := range tokens {
		data = append(data, []string{
			fmt.Sprintf("%d", t.Start),
			fmt.Sprintf("%d", t.Stop),
			t.Class.String(),
			fmt.Sprintf("%q", t.Text(text)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) printGlyphs(chars string) error {
	if chars == "" {
		return usage("glyph <characters>")
	}
	m := intp.font.Model()
	data := [][]string{
		{"Char", "Index", "Rect", "Offset", "Advance"},
	}
	for _, r := range chars {
		i, ok := m.Lookup(r)
		if !ok {
			data = append(data, []string{fmt.Sprintf("%q", r), "-", "unsupported", "", ""})
			continue
		}
		g := m.Glyph(i)
		data = append(data, []string{
			fmt.Sprintf("%q", r),
			fmt.Sprintf("%d", i),
			fmt.Sprintf("(%d,%d)-(%d,%d)", g.X0, g.Y0, g.X1, g.Y1),
			fmt.Sprintf("(%.0f,%.0f)-(%.0f,%.0f)", g.XOff, g.YOff, g.XOff2, g.YOff2),
			fmt.Sprintf("%.2f", g.XAdvance),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

var paletteNames = []string{"foreground", "operator", "numeric", "function", "keyword",
	"comment", "type", "background", "clear"}

func (intp *Intp) printPalette() {
	p := intp.font.Colors()
	data := [][]string{
		{"Index", "Role", "RGB"},
	}
	for i, name := range paletteNames {
		c := p.At(uint8(i))
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			name,
			pterm.NewRGB(c.R, c.G, c.B).Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d more entries\n", palette.Size-len(paletteNames))
}

func (intp *Intp) printBuffer() {
	b := intp.buf
	line, col := b.Caret()
	for i := 0; i < b.Lines(); i++ {
		s, err := b.Line(i)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if i == line {
			s = s[:col] + "|" + s[col:]
		}
		pterm.Printf("%3d  %s\n", i+1, s)
	}
}

func printHelp() {
	pterm.Info.Println("Commands")
	pterm.Println(strings.TrimSpace(`
font                 font source and metrics
tokens <text>        lexical classes of text
draw <text>          stage highlighted text and report the draw call
measure <text>       extent of text at the display size
preview <text>       ASCII art of the first line from the atlas
fold <text>          ASCII folding of text
glyph <chars>        atlas entries of characters
palette              highlighting colors
size <n>             set the display size
px <n>               re-rasterize the atlas at n pixels
atlas <file.png>     save the atlas bitmap
edit [op]            edit the scratch buffer (insert <text>, newline, back, del,
                     left, right, up, down, clear)
quit                 leave

Text arguments accept Go escapes such as \n and \t.`))
}
