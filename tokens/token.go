// Package tokens defines the lexical token alphabet shared by the parser and
// the evaluation engine, and the TokenList sequence the engine operates on.
package tokens

// Kind classifies a lexical token.
type Kind string

const (
	Identifier Kind = "IDENTIFIER" // CSS identifier: color, solid, my-mixin
	AtKeyword  Kind = "ATKEYWORD"  // @ + identifier: @width, @media
	Hash       Kind = "HASH"       // # + identifier or hex digits: #fff, #header
	Number     Kind = "NUMBER"     // 10, 1.5
	Percentage Kind = "PERCENTAGE" // 50%
	Dimension  Kind = "DIMENSION"  // 10px, 1.5em
	String     Kind = "STRING"     // "text" or 'text', quotes included
	URL        Kind = "URL"        // url(...) as a single token
	Whitespace Kind = "WHITESPACE"
	Comment    Kind = "COMMENT"   // /* ... */, delimiters included
	Delimiter  Kind = "DELIMITER" // ;
	Colon      Kind = "COLON"

	ParenOpen     Kind = "PAREN_OPEN"     // (
	ParenClosed   Kind = "PAREN_CLOSED"   // )
	BraceOpen     Kind = "BRACE_OPEN"     // {
	BraceClosed   Kind = "BRACE_CLOSED"   // }
	BracketOpen   Kind = "BRACKET_OPEN"   // [
	BracketClosed Kind = "BRACKET_CLOSED" // ]

	// Other catches single characters with no dedicated kind: operators,
	// commas, combinators, the & parent reference.
	Other Kind = "OTHER"
)

// Origin records where a token came from. Builtin tokens are synthesized
// during evaluation (joined media queries, computed values) and follow a
// different whitespace policy than tokens read from source.
type Origin int

const (
	OriginSource Origin = iota
	OriginBuiltin
)

// Token is a single lexical unit with its source position.
type Token struct {
	Text   string
	Kind   Kind
	Line   int
	Column int
	Source string
	Origin Origin
}

// New returns a synthesized builtin token.
func New(text string, kind Kind) Token {
	return Token{Text: text, Kind: kind, Origin: OriginBuiltin}
}

// Space is the builtin single-space token used when splicing evaluated
// values back into a token stream.
func Space() Token {
	return New(" ", Whitespace)
}

// IsWhitespace reports whether the token is whitespace.
func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}
