package parser

import (
	"io"

	"github.com/titpetric/lessc/internal/strings"
	"github.com/titpetric/lessc/less"
	"github.com/titpetric/lessc/lesserr"
	"github.com/titpetric/lessc/tokens"
)

// Loader resolves an import path relative to the file naming it, returning
// the resolved source name and a reader. With a nil Loader, css imports
// still pass through and optional imports are skipped; any other import
// fails.
type Loader func(path, from string) (string, io.ReadCloser, error)

// Parser builds a LESS stylesheet from a token stream, inlining imports
// through the loader as it goes.
type Parser struct {
	toks   []tokens.Token
	pos    int
	source string

	sheet  *less.Stylesheet
	loader Loader
	warn   func(msg string, line int)

	// seen tracks resolved import names for the default once semantics.
	seen map[string]bool

	// reference marks everything parsed from an (reference) import.
	reference bool
}

// Parse tokenizes and parses one source file into a fresh stylesheet.
func Parse(sourceName, input string, loader Loader, warn func(string, int)) (*less.Stylesheet, error) {
	p := &Parser{
		toks:   NewLexer(input, sourceName).Tokenize(),
		source: sourceName,
		sheet:  less.NewStylesheet(),
		loader: loader,
		warn:   warn,
		seen:   map[string]bool{},
	}
	if err := p.parseTop(); err != nil {
		return nil, err
	}
	return p.sheet, nil
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *Parser) current() tokens.Token {
	if p.eof() {
		return tokens.Token{}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() tokens.Token {
	t := p.current()
	p.pos++
	return t
}

func (p *Parser) skipSpace() {
	for !p.eof() && p.current().Kind == tokens.Whitespace {
		p.pos++
	}
}

// peekNonSpace returns the next non-whitespace token after offset tokens.
func (p *Parser) peekNonSpace(offset int) tokens.Token {
	i := p.pos + offset
	for i < len(p.toks) && p.toks[i].Kind == tokens.Whitespace {
		i++
	}
	if i >= len(p.toks) {
		return tokens.Token{}
	}
	return p.toks[i]
}

func (p *Parser) errorAt(t tokens.Token, err *lesserr.Error) error {
	return lesserr.At(err, p.source, t.Line, t.Column)
}

func (p *Parser) warnf(msg string, line int) {
	if p.warn != nil {
		p.warn(msg, line)
	}
}

// parseTop consumes top-level statements until the stream ends.
func (p *Parser) parseTop() error {
	for !p.eof() {
		t := p.current()

		switch t.Kind {
		case tokens.Whitespace, tokens.Delimiter:
			p.advance()

		case tokens.Comment:
			p.sheet.AddComment(t.Text)
			p.advance()

		case tokens.BraceClosed:
			return p.errorAt(t, lesserr.Expected("}", "a statement"))

		case tokens.AtKeyword:
			if err := p.parseAtKeyword(); err != nil {
				return err
			}

		default:
			if err := p.parseSelectorStatement(); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseAtKeyword dispatches @media, @import, variable bindings and
// passthrough at-rules.
func (p *Parser) parseAtKeyword() error {
	t := p.current()

	switch t.Text {
	case "@media", "@supports":
		p.advance()
		media, err := p.parseMedia(t.Text)
		if err != nil {
			return err
		}
		p.sheet.AddMedia(media)
		return nil

	case "@import":
		p.advance()
		return p.parseImport()
	}

	if p.peekNonSpace(1).Kind == tokens.Colon {
		name, value, err := p.parseVariable()
		if err != nil {
			return err
		}
		if p.sheet.PutVariable(name, value) {
			p.warnf("variable "+name+" defined twice in same scope", t.Line)
		}
		return nil
	}

	// block at-rules (@keyframes, @font-face) parse like rulesets or
	// media blocks; block-less ones pass through
	collected, terminator := p.collectStatement()
	switch terminator {
	case tokens.BraceOpen:
		if t.Text == "@font-face" {
			sel := less.ParseSelector(tokens.SelectorFromList(collected))
			r := p.sheet.AddRuleset(sel)
			r.SetReference(p.reference)
			return p.parseBody(r)
		}
		keyword := collected.Shift()
		collected.Trim()
		media := &less.Media{
			Keyword: keyword.Text,
			Query:   tokens.SelectorFromList(collected),
			Body:    p.sheet.NewBodyRuleset(),
		}
		p.sheet.AddMedia(media)
		return p.parseBody(media.Body)

	default:
		collected.Shift()
		collected.Trim()
		p.sheet.AddAtRule(&less.AtRule{Keyword: t.Text, Rule: collected})
		return nil
	}
}

// parseVariable reads "@name: value" up to the delimiter. The keyword is
// the current token.
func (p *Parser) parseVariable() (string, *tokens.TokenList, error) {
	keyword := p.advance()
	p.skipSpace()

	if p.current().Kind != tokens.Colon {
		return "", nil, p.errorAt(p.current(), lesserr.Expected(p.current().Text, `":"`))
	}
	p.advance()

	value := &tokens.TokenList{}
	depth := 0
	braces := 0
	for !p.eof() {
		t := p.current()
		switch t.Kind {
		case tokens.ParenOpen, tokens.BracketOpen:
			depth++
		case tokens.ParenClosed, tokens.BracketClosed:
			depth--
		case tokens.BraceOpen:
			// detached ruleset values carry a braced block
			braces++
		case tokens.BraceClosed:
			if braces > 0 {
				braces--
				value.Push(p.advance())
				continue
			}
		}
		if depth == 0 && braces == 0 && (t.Kind == tokens.Delimiter || t.Kind == tokens.BraceClosed) {
			if t.Kind == tokens.Delimiter {
				p.advance()
			}
			value.Trim()
			return keyword.Text, value, nil
		}
		value.Push(p.advance())
	}
	value.Trim()
	return keyword.Text, value, nil
}

// collectStatement gathers tokens until a top-level delimiter, an opening
// brace, a closing brace, or the end of input. The delimiter and opening
// brace are consumed; the terminator kind is returned.
func (p *Parser) collectStatement() (*tokens.TokenList, tokens.Kind) {
	out := &tokens.TokenList{}
	depth := 0

	for !p.eof() {
		t := p.current()
		switch t.Kind {
		case tokens.ParenOpen, tokens.BracketOpen:
			depth++
		case tokens.ParenClosed, tokens.BracketClosed:
			depth--
		}

		if depth == 0 {
			switch t.Kind {
			case tokens.Delimiter:
				p.advance()
				out.Trim()
				return out, tokens.Delimiter
			case tokens.BraceOpen:
				p.advance()
				out.Trim()
				return out, tokens.BraceOpen
			case tokens.BraceClosed:
				out.Trim()
				return out, tokens.BraceClosed
			}
		}
		out.Push(p.advance())
	}

	out.Trim()
	return out, tokens.Whitespace
}

// parseSelectorStatement handles a top-level selector: a ruleset when a
// block follows, a root mixin call when a delimiter does.
func (p *Parser) parseSelectorStatement() error {
	start := p.current()
	collected, terminator := p.collectStatement()

	switch terminator {
	case tokens.BraceOpen:
		sel := less.ParseSelector(tokens.SelectorFromList(collected))
		r := p.sheet.AddRuleset(sel)
		r.SetReference(p.reference)
		return p.parseBody(r)

	case tokens.Delimiter, tokens.Whitespace:
		if collected.Empty() {
			return nil
		}
		p.sheet.AddMixinCall(less.ParseMixin(collected, p.statementAt(collected, start)))
		return nil
	}

	return p.errorAt(start, lesserr.Expected(start.Text, "a declaration block following the selector"))
}

func (p *Parser) statementAt(l *tokens.TokenList, t tokens.Token) *less.Statement {
	return &less.Statement{Tokens: l, Line: t.Line, Column: t.Column, Source: p.source}
}

// parseBody consumes a ruleset body up to the closing brace.
func (p *Parser) parseBody(r *less.Ruleset) error {
	for !p.eof() {
		t := p.current()

		switch t.Kind {
		case tokens.BraceClosed:
			p.advance()
			return nil

		case tokens.Whitespace, tokens.Delimiter:
			p.advance()

		case tokens.Comment:
			r.AddComment(t.Text)
			p.advance()

		case tokens.AtKeyword:
			switch {
			case t.Text == "@media" || t.Text == "@supports":
				p.advance()
				media, err := p.parseMedia(t.Text)
				if err != nil {
					return err
				}
				r.AddMedia(media)

			case p.peekNonSpace(1).Kind == tokens.Colon:
				name, value, err := p.parseVariable()
				if err != nil {
					return err
				}
				if r.PutVariable(name, value) {
					p.warnf("variable "+name+" defined twice in same scope", t.Line)
				}

			default:
				if err := p.parseBodyStatement(r); err != nil {
					return err
				}
			}

		default:
			if err := p.parseBodyStatement(r); err != nil {
				return err
			}
		}
	}
	return p.errorAt(p.current(), lesserr.Expected("end of input", `"}"`))
}

func (p *Parser) parseBodyStatement(r *less.Ruleset) error {
	start := p.current()
	collected, terminator := p.collectStatement()

	if terminator == tokens.BraceOpen {
		sel := less.ParseSelector(tokens.SelectorFromList(collected))
		nested := r.AddNested(sel)
		return p.parseBody(nested)
	}

	if collected.Empty() {
		return nil
	}

	stmt := p.statementAt(collected, start)
	stmt.PropertyEnd = propertyEnd(collected)
	r.AddStatement(stmt)
	return nil
}

// propertyEnd finds the token count of a leading property name followed by
// a colon at nesting depth zero. Zero means the statement is not a
// declaration.
func propertyEnd(l *tokens.TokenList) int {
	depth := 0
	for i, t := range l.Tokens() {
		switch t.Kind {
		case tokens.ParenOpen, tokens.BracketOpen:
			depth++
			continue
		case tokens.ParenClosed, tokens.BracketClosed:
			depth--
			continue
		}
		if depth > 0 {
			continue
		}
		if t.Kind == tokens.Colon {
			if i == 0 {
				return 0
			}
			return i
		}
		// anything but a property-name shape rules a declaration out
		switch {
		case t.Kind == tokens.Identifier, t.Kind == tokens.Whitespace:
		case t.Kind == tokens.Other && (t.Text == "*" || t.Text == "-"):
		default:
			return 0
		}
	}
	return 0
}

// parseMedia reads "<query> { body }" after the at-keyword.
func (p *Parser) parseMedia(keyword string) (*less.Media, error) {
	query := &tokens.TokenList{}
	for !p.eof() && p.current().Kind != tokens.BraceOpen {
		query.Push(p.advance())
	}
	if p.eof() {
		return nil, p.errorAt(p.current(), lesserr.Expected("end of input", `"{"`))
	}
	p.advance()
	query.Trim()

	media := &less.Media{
		Keyword: keyword,
		Query:   tokens.SelectorFromList(query),
		Body:    p.sheet.NewBodyRuleset(),
	}
	if err := p.parseBody(media.Body); err != nil {
		return nil, err
	}
	return media, nil
}

// importOptions are the recognized @import modifiers.
type importOptions struct {
	Reference bool
	CSS       bool
	Less      bool
	Once      bool
	Multiple  bool
	Optional  bool
	Inline    bool
}

// parseImport resolves one @import statement. Plain css imports pass
// through; everything else is loaded, parsed and merged in place.
func (p *Parser) parseImport() error {
	start := p.current()
	collected, _ := p.collectStatement()

	opts, path, isURL := importParameters(collected)
	if path == "" {
		return p.errorAt(start, lesserr.New(lesserr.Import, "malformed import %q", collected.String()))
	}

	if opts.CSS || (isURL && !opts.Less) || (strings.HasSuffix(path, ".css") && !opts.Less) {
		p.sheet.AddAtRule(&less.AtRule{Keyword: "@import", Rule: collected})
		return nil
	}

	if !strings.HasSuffix(path, ".less") && !strings.Contains(lastSegment(path), ".") {
		path += ".less"
	}

	if p.loader == nil {
		if opts.Optional {
			return nil
		}
		return p.errorAt(start, lesserr.New(lesserr.Import, "no loader configured for import %q", path))
	}

	name, reader, err := p.loader(path, p.source)
	if err != nil {
		if opts.Optional {
			return nil
		}
		return p.errorAt(start, lesserr.Wrap(lesserr.Import, err, "import %q", path))
	}
	defer reader.Close()

	if p.seen[name] && !opts.Multiple {
		return nil
	}
	p.seen[name] = true

	content, err := io.ReadAll(reader)
	if err != nil {
		return p.errorAt(start, lesserr.Wrap(lesserr.Import, err, "import %q", path))
	}

	sub := &Parser{
		toks:      NewLexer(string(content), name).Tokenize(),
		source:    name,
		sheet:     p.sheet,
		loader:    p.loader,
		warn:      p.warn,
		seen:      p.seen,
		reference: p.reference || opts.Reference,
	}
	return sub.parseTop()
}

// importParameters extracts the options group, the import path, and
// whether the path was spelled as url(...).
func importParameters(l *tokens.TokenList) (importOptions, string, bool) {
	var opts importOptions
	path := ""
	isURL := false

	items := l.Tokens()
	for i := 0; i < len(items); i++ {
		t := items[i]
		switch t.Kind {
		case tokens.ParenOpen:
			for i++; i < len(items) && items[i].Kind != tokens.ParenClosed; i++ {
				switch items[i].Text {
				case "reference":
					opts.Reference = true
				case "css":
					opts.CSS = true
				case "less":
					opts.Less = true
				case "once":
					opts.Once = true
				case "multiple":
					opts.Multiple = true
				case "optional":
					opts.Optional = true
				case "inline":
					opts.Inline = true
				}
			}
		case tokens.String:
			if path == "" {
				path = strings.Unquote(t.Text)
			}
		case tokens.URL:
			if path == "" {
				inner := strings.TrimSuffix(strings.TrimPrefix(t.Text, "url("), ")")
				path = strings.Unquote(strings.TrimSpace(inner))
				isURL = true
			}
		}
	}
	return opts, path, isURL
}

func lastSegment(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		parts := strings.Split(path, "/")
		return parts[len(parts)-1]
	}
	return path
}
