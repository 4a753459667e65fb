package lexer

// Class is the lexical class of a token. Its value doubles as the palette
// index the token is drawn with.
type Class uint8

// Token classes. Other is 0 and therefore shares the foreground color with
// skipped delimiters.
const (
	Other Class = iota
	Operator
	Numeric
	Function
	Keyword
	Comment
	Type
	Unset
)

var classNames = [...]string{"other", "operator", "numeric", "function", "keyword", "comment", "type", "unset"}

// String returns the lower-case class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Token is a classified run of text.
type Token struct {
	// Start and Stop delimit the half-open byte range [Start, Stop).
	Start, Stop int
	Class       Class
}

// Len returns the token length in bytes.
func (t Token) Len() int { return t.Stop - t.Start }

// Text returns the token's text within src.
func (t Token) Text(src string) string { return src[t.Start:t.Stop] }
