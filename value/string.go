package value

import (
	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/tokens"
)

// String is a textual value. Text holds the content without quotes; Quoted
// strings remember their quote character for faithful re-emission.
type String struct {
	Text      string
	Quoted    bool
	QuoteChar byte
}

// NewQuotedString builds a quoted string value from a STRING token,
// stripping the outer quotes.
func NewQuotedString(t tokens.Token) *String {
	quote := byte('"')
	if len(t.Text) > 0 && (t.Text[0] == '"' || t.Text[0] == '\'') {
		quote = t.Text[0]
	}
	return &String{Text: strings.Unquote(t.Text), Quoted: true, QuoteChar: quote}
}

// NewKeyword builds an unquoted string value.
func NewKeyword(text string) *String {
	return &String{Text: text}
}

func (s *String) Type() Type {
	return TypeString
}

// String prints the value, re-applying the quote character when quoted.
func (s *String) String() string {
	if !s.Quoted {
		return s.Text
	}
	q := string(s.QuoteChar)
	return q + s.Text + q
}

func (s *String) Tokens() *tokens.TokenList {
	kind := tokens.Identifier
	if s.Quoted {
		kind = tokens.String
	}
	return tokens.NewList(tokens.New(s.String(), kind))
}

// Add concatenates. The left operand's quoting style wins; the right
// operand contributes its bare text.
func (s *String) Add(other Value) (Value, error) {
	var text string
	switch o := other.(type) {
	case *String:
		text = o.Text
	case *Number:
		text = o.String()
	case *Color:
		text = o.String()
	default:
		return nil, typeError("+", s, other)
	}
	return &String{Text: s.Text + text, Quoted: s.Quoted, QuoteChar: s.QuoteChar}, nil
}

func (s *String) Subtract(other Value) (Value, error) {
	return nil, typeError("-", s, other)
}

func (s *String) Multiply(other Value) (Value, error) {
	return nil, typeError("*", s, other)
}

func (s *String) Divide(other Value) (Value, error) {
	return nil, typeError("/", s, other)
}

func (s *String) Equals(other Value) (Value, error) {
	o, ok := other.(*String)
	if !ok {
		return &Boolean{Value: false}, nil
	}
	return &Boolean{Value: s.Text == o.Text}, nil
}

func (s *String) compare(other Value, op string) (*String, error) {
	o, ok := other.(*String)
	if !ok {
		return nil, typeError(op, s, other)
	}
	return o, nil
}

func (s *String) Less(other Value) (Value, error) {
	o, err := s.compare(other, "<")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: s.Text < o.Text}, nil
}

func (s *String) Greater(other Value) (Value, error) {
	o, err := s.compare(other, ">")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: s.Text > o.Text}, nil
}

func (s *String) LessEq(other Value) (Value, error) {
	o, err := s.compare(other, "=<")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: s.Text <= o.Text}, nil
}

func (s *String) GreaterEq(other Value) (Value, error) {
	o, err := s.compare(other, ">=")
	if err != nil {
		return nil, err
	}
	return &Boolean{Value: s.Text >= o.Text}, nil
}

// URL is a url(...) literal. Raw keeps the full literal, Inner the decoded
// path without url( ) and quotes.
type URL struct {
	Raw   string
	Inner string
}

// NewURL builds a URL value from a URL token.
func NewURL(t tokens.Token) *URL {
	inner := t.Text
	if strings.HasPrefix(inner, "url(") && strings.HasSuffix(inner, ")") {
		inner = inner[4 : len(inner)-1]
	}
	return &URL{Raw: t.Text, Inner: strings.Unquote(strings.TrimSpace(inner))}
}

func (u *URL) Type() Type {
	return TypeURL
}

func (u *URL) Tokens() *tokens.TokenList {
	return tokens.NewList(tokens.New(u.Raw, tokens.URL))
}

func (u *URL) Add(other Value) (Value, error)      { return nil, typeError("+", u, other) }
func (u *URL) Subtract(other Value) (Value, error) { return nil, typeError("-", u, other) }
func (u *URL) Multiply(other Value) (Value, error) { return nil, typeError("*", u, other) }
func (u *URL) Divide(other Value) (Value, error)   { return nil, typeError("/", u, other) }

func (u *URL) Equals(other Value) (Value, error) {
	o, ok := other.(*URL)
	if !ok {
		return &Boolean{Value: false}, nil
	}
	return &Boolean{Value: u.Inner == o.Inner}, nil
}

func (u *URL) Less(other Value) (Value, error)      { return nil, typeError("<", u, other) }
func (u *URL) Greater(other Value) (Value, error)   { return nil, typeError(">", u, other) }
func (u *URL) LessEq(other Value) (Value, error)    { return nil, typeError("=<", u, other) }
func (u *URL) GreaterEq(other Value) (Value, error) { return nil, typeError(">=", u, other) }
