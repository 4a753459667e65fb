package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gogpu/easyfont"
	"github.com/gogpu/easyfont/textbuf"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object.
type Intp struct {
	font *easyfont.Font
	repl *readline.Instance
	size float32 // display size for draw and measure
	buf  *textbuf.Buffer
}

// resolution of the virtual screen draw calls are made for.
var resolution = [2]float32{1280, 720}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// execute runs one command line. Text arguments may use Go escapes such as
// \n; they are unquoted before use.
func (intp *Intp) execute(line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = unescape(strings.TrimLeft(arg, " "))

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		printHelp()
	case "font":
		intp.printFont()
	case "tokens":
		intp.printTokens(arg)
	case "draw":
		return false, intp.draw(arg)
	case "measure":
		w, h := intp.font.Measure(arg, intp.size)
		pterm.Printf("%q at %.1f px: %.2f x %.2f\n", arg, intp.size, w, h)
	case "preview":
		pterm.Println(intp.font.Preview(easyfont.Fold(arg)))
	case "fold":
		pterm.Printf("%q\n", easyfont.Fold(arg))
	case "glyph":
		return false, intp.printGlyphs(arg)
	case "palette":
		intp.printPalette()
	case "size":
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil || v <= 0 {
			return false, usage("size <positive number>")
		}
		intp.size = float32(v)
	case "px":
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return false, usage("px <number>")
		}
		return false, intp.font.Reload(easyfont.WithPixelSize(float32(v)))
	case "atlas":
		if arg == "" {
			return false, usage("atlas <file.png>")
		}
		return false, intp.saveAtlas(arg)
	case "edit":
		return false, intp.edit(arg)
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

// edit drives the text buffer: "edit insert <text>", "edit back", "edit del",
// "edit left|right|up|down", "edit clear" or just "edit" to show it.
func (intp *Intp) edit(arg string) error {
	op, text, _ := strings.Cut(arg, " ")
	b := intp.buf
	var err error
	switch op {
	case "":
	case "insert":
		err = b.Insert(text)
	case "newline":
		err = b.Insert("\n")
	case "back":
		err = b.Backspace()
	case "del":
		err = b.Delete()
	case "left":
		b.MoveLeft()
	case "right":
		b.MoveRight()
	case "up":
		b.MoveUp()
	case "down":
		b.MoveDown()
	case "clear":
		intp.buf = textbuf.New("")
		b = intp.buf
	default:
		return usage("edit [insert <text>|newline|back|del|left|right|up|down|clear]")
	}
	if err != nil {
		return err
	}
	intp.printBuffer()
	return intp.draw(b.String())
}

func (intp *Intp) draw(text string) error {
	call, err := intp.font.DrawHighlighted(text, [2]float32{4, 4}, intp.size, resolution)
	if err != nil {
		return err
	}
	w, h := intp.font.Measure(text, intp.size)
	pterm.Printf("%d instances, %d bytes, scale %.3f, extent %.1f x %.1f px\n",
		call.Count, len(call.Instances), call.Uniforms.ScaleFactor, w, h)
	return nil
}

func (intp *Intp) saveAtlas(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, intp.font.Bitmap()); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	b := intp.font.Bitmap().Rect
	pterm.Info.Printf("atlas written to %s (%dx%d)\n", path, b.Dx(), b.Dy())
	return nil
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return s
	}
	return u
}
