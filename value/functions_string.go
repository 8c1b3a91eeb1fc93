package value

import (
	"regexp"

	"github.com/titpetric/lessc/internal/strings"
)

// loadStringFunctions registers the string builtins: quote stripping,
// escaping, and % formatting.
func loadStringFunctions(l *Library) {
	l.Register("e", "S", func(args []Value) (Value, error) {
		return NewKeyword(args[0].(*String).Text), nil
	})

	l.Register("escape", "S", func(args []Value) (Value, error) {
		return NewKeyword(escapeURI(args[0].(*String).Text)), nil
	})

	format := func(args []Value) (Value, error) {
		pattern := args[0].(*String)
		result := formatString(pattern.Text, args[1:])
		return &String{Text: result, Quoted: pattern.Quoted, QuoteChar: pattern.QuoteChar}, nil
	}
	l.Register("%", "S", format)
	l.Register("%", "S.+", format)
	l.Register("format", "S", format)
	l.Register("format", "S.+", format)

	l.Register("replace", "SSS", func(args []Value) (Value, error) {
		return replaceString(args, "")
	})
	l.Register("replace", "SSSS", func(args []Value) (Value, error) {
		return replaceString(args[:3], args[3].(*String).Text)
	})
}

// formatString substitutes %s/%S/%d/%a placeholders in order. Uppercase
// placeholders additionally URI-escape the substitution; %a and %d accept
// any value and print its token form.
func formatString(pattern string, args []Value) string {
	var b strings.Builder
	argIdx := 0

	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch != '%' || i+1 >= len(pattern) {
			b.WriteByte(ch)
			continue
		}

		verb := pattern[i+1]
		if verb == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if argIdx >= len(args) || strings.Index("sSdDaA", string(verb)) < 0 {
			b.WriteByte(ch)
			continue
		}

		arg := args[argIdx]
		argIdx++
		i++

		var text string
		if s, ok := arg.(*String); ok && (verb == 's' || verb == 'S') {
			text = s.Text
		} else {
			text = arg.Tokens().String()
		}
		if verb >= 'A' && verb <= 'Z' {
			text = escapeURI(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// escapeURI applies the language's escape() rules, which cover a narrower
// character set than net/url percent-encoding.
func escapeURI(s string) string {
	const hex = "0123456789ABCDEF"
	const escaped = " \"#$%&'()*+,/:;<=>?@[\\]^`{|}~"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.Index(escaped, string(c)) >= 0 {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func replaceString(args []Value, flags string) (Value, error) {
	subject := args[0].(*String)
	pattern := args[1].(*String).Text
	replacement := args[2].(*String).Text

	re, err := regexp.Compile(pattern)
	if err != nil {
		// not a valid pattern: plain text replacement
		text := strings.ReplaceAll(subject.Text, pattern, replacement)
		return &String{Text: text, Quoted: subject.Quoted, QuoteChar: subject.QuoteChar}, nil
	}

	var text string
	if strings.Contains(flags, "g") {
		text = re.ReplaceAllString(subject.Text, replacement)
	} else {
		replaced := false
		text = re.ReplaceAllStringFunc(subject.Text, func(m string) string {
			if replaced {
				return m
			}
			replaced = true
			return re.ReplaceAllString(m, replacement)
		})
	}
	return &String{Text: text, Quoted: subject.Quoted, QuoteChar: subject.QuoteChar}, nil
}
