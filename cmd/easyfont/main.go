// Command easyfont inspects the glyph atlas, layout and highlighting of a
// font the way the GPU text renderer sees it.
//
// Without -text it starts an interactive prompt; type "help" for commands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/chzyer/readline"
	"github.com/gogpu/easyfont"
	"github.com/gogpu/easyfont/layout"
	"github.com/gogpu/easyfont/textbuf"
	"github.com/pterm/pterm"
)

// exitNoFont is the exit status when no font can be loaded.
const exitNoFont = 9

func main() {
	initDisplay()

	var (
		fontFile = flag.String("font", "", "font file tried before the default search list")
		pixel    = flag.Float64("px", 48, "rasterization pixel size")
		size     = flag.Float64("size", 24, "display size used by draw and measure")
		atlasOut = flag.String("atlas", "", "write the truncated atlas bitmap to this PNG file")
		text     = flag.String("text", "", "print tokens, draw summary and preview of this text and exit")
		reject   = flag.Bool("reject", false, "reject characters outside the glyph range instead of substituting")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	easyfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := []easyfont.Option{
		easyfont.WithFontFile(*fontFile),
		easyfont.WithPixelSize(float32(*pixel)),
	}
	if *reject {
		opts = append(opts, easyfont.WithPolicy(layout.Reject))
	}

	f, err := easyfont.New(opts...)
	if err != nil {
		pterm.Error.Println(err)
		if errors.Is(err, easyfont.ErrNoFontSource) {
			os.Exit(exitNoFont)
		}
		os.Exit(1)
	}

	intp := &Intp{font: f, size: float32(*size), buf: textbuf.New("")}

	if *atlasOut != "" {
		if err := intp.saveAtlas(*atlasOut); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}

	if *text != "" {
		intp.printFont()
		intp.printTokens(*text)
		if err := intp.draw(*text); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		pterm.Println(f.Preview(*text))
		return
	}
	if *atlasOut != "" {
		return
	}

	repl, err := readline.New("easyfont > ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl

	pterm.Info.Println("Welcome to the easyfont CLI")
	intp.printFont()
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func usage(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
