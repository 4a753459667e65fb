// Package lexer assigns a color class to every character of a source text.
//
// It is a crude classifier for C-like shader code, not a parser. Text is split
// at delimiters and single-character operators; comments are recognized as a
// whole. The remaining words are classified in this fixed order:
//
//  1. Function: the word is directly followed by '('.
//  2. Numeric: the word starts with a decimal number ("3", "1.5f", ".5").
//  3. Keyword: the word is in the keyword list.
//  4. Type: the word is in the type list.
//  5. Other.
//
// Because rule 1 comes first, a keyword written like a call ("if(") is
// classified as Function.
package lexer

import (
	"strings"
	"sync"

	"github.com/derekparker/trie"
)

const (
	delimiters = " ,(){}[];\t\n"
	operators  = "/+-*<>=&|"
)

// DefaultKeywords are the words classified as Keyword by default.
var DefaultKeywords = []string{
	"#version", "#define", "in", "out", "uniform", "layout",
	"return", "if", "else", "for", "while",
}

// DefaultTypes are the words classified as Type by default.
var DefaultTypes = []string{
	"void", "int", "float", "vec2", "vec3", "vec4", "sampler1D", "sampler2D",
}

type byteSet [256]bool

func makeSet(chars string) (s byteSet) {
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = true
	}
	return s
}

var (
	isDelimiter = makeSet(delimiters)
	isOperator  = makeSet(operators)
)

// Option configures a Lexer.
type Option func(*config)

type config struct {
	keywords []string
	types    []string
}

// WithKeywords replaces the keyword list.
func WithKeywords(words ...string) Option {
	return func(c *config) { c.keywords = words }
}

// WithTypes replaces the type name list.
func WithTypes(words ...string) Option {
	return func(c *config) { c.types = words }
}

// Lexer classifies text. It is immutable after New and safe for concurrent use.
type Lexer struct {
	keywords *trie.Trie
	types    *trie.Trie
}

// New creates a Lexer with the default word lists unless overridden.
func New(opts ...Option) *Lexer {
	c := config{keywords: DefaultKeywords, types: DefaultTypes}
	for _, opt := range opts {
		opt(&c)
	}
	return &Lexer{
		keywords: wordTrie(c.keywords, Keyword),
		types:    wordTrie(c.types, Type),
	}
}

func wordTrie(words []string, class Class) *trie.Trie {
	t := trie.New()
	for _, w := range words {
		if w != "" {
			t.Add(w, class)
		}
	}
	return t
}

var defaultLexer = sync.OnceValue(func() *Lexer { return New() })

// Tokens splits text into tokens using the default word lists.
func Tokens(text string) []Token { return defaultLexer().Tokens(text) }

// Tokenize returns the color class of every byte of text using the default
// word lists.
func Tokenize(text string) []byte { return defaultLexer().Tokenize(text) }

// Tokens splits text into classified tokens in source order. Tokens never
// overlap; the bytes between them are delimiters.
func (l *Lexer) Tokens(text string) []Token {
	var tokens []Token
	n := len(text)
	for i := 0; i < n; {
		c := text[i]
		if isDelimiter[c] {
			i++
			continue
		}

		start := i
		switch {
		case c == '/' && i+1 < n && text[i+1] == '/':
			stop := n
			if j := strings.IndexByte(text[i:], '\n'); j >= 0 {
				stop = i + j
			}
			tokens = append(tokens, Token{Start: start, Stop: stop, Class: Comment})
			i = stop

		case c == '/' && i+1 < n && text[i+1] == '*':
			stop := n
			if j := strings.Index(text[i+2:], "*/"); j >= 0 {
				stop = i + 2 + j + 2
			}
			tokens = append(tokens, Token{Start: start, Stop: stop, Class: Comment})
			i = stop

		case isOperator[c]:
			tokens = append(tokens, Token{Start: start, Stop: start + 1, Class: Operator})
			i++

		default:
			for i < n && !isDelimiter[text[i]] && !isOperator[text[i]] {
				i++
			}
			tokens = append(tokens, Token{Start: start, Stop: i, Class: Unset})
		}
	}

	for k := range tokens {
		if tokens[k].Class == Unset {
			tokens[k].Class = l.classify(text, tokens[k])
		}
	}
	return tokens
}

// Tokenize returns a slice of len(text) color classes. Delimiters get class 0.
func (l *Lexer) Tokenize(text string) []byte {
	colors := make([]byte, len(text))
	for _, t := range l.Tokens(text) {
		for i := t.Start; i < t.Stop; i++ {
			colors[i] = byte(t.Class)
		}
	}
	return colors
}

func (l *Lexer) classify(text string, t Token) Class {
	if t.Stop < len(text) && text[t.Stop] == '(' {
		return Function
	}
	word := t.Text(text)
	if isNumeric(word) {
		return Numeric
	}
	if _, ok := l.keywords.Find(word); ok {
		return Keyword
	}
	if _, ok := l.types.Find(word); ok {
		return Type
	}
	return Other
}

// isNumeric reports whether s starts with a decimal number: an optional sign,
// digits, and an optional fraction, with at least one digit overall.
func isNumeric(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	return digits > 0
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
