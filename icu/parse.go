package icu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse and evaluation errors. All of them abort formatting; callers are
// expected to fall back to the raw message text.
var (
	ErrUnbalancedBraces = errors.New("unbalanced braces in message")
	ErrBadArgument      = errors.New("malformed argument")
	ErrMissingOther     = errors.New(`plural or select without "other" branch`)
	ErrMissingParam     = errors.New("parameter not provided")
	ErrNotANumber       = errors.New("argument value is not a number")
)

type node any

// textNode is a literal run of message text.
type textNode string

// poundNode is the '#' shorthand inside a plural branch.
type poundNode struct{}

// argNode is a plain {name} argument.
type argNode struct {
	name string
}

// numberNode is a {name, number} argument. Style words after a second comma
// are accepted and ignored.
type numberNode struct {
	name string
}

// pluralNode is a {name, plural, ...} or {name, selectordinal, ...}
// argument with exact (=N) and keyword branches.
type pluralNode struct {
	name    string
	ordinal bool
	offset  int64
	exact   map[int64][]node
	keyword map[string][]node
}

// selectNode is a {name, select, ...} argument.
type selectNode struct {
	name    string
	keyword map[string][]node
}

type parser struct {
	src []rune
	pos int
}

func parse(message string) ([]node, error) {
	p := &parser{src: []rune(message)}
	nodes, err := p.message(0, false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		// A stray '}' at depth zero.
		return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrUnbalancedBraces, "}", p.pos)
	}
	return nodes, nil
}

// message parses until the closing brace of the enclosing argument (left for
// the caller to consume) or until the end of input at depth zero.
func (p *parser) message(depth int, inPlural bool) ([]node, error) {
	var nodes []node
	var text []rune

	flush := func() {
		if len(text) > 0 {
			nodes = append(nodes, textNode(text))
			text = nil
		}
	}

	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '\'':
			text = append(text, p.quoted(inPlural)...)
		case '{':
			flush()
			arg, err := p.argument(depth, inPlural)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, arg)
		case '}':
			if depth > 0 {
				flush()
				return nodes, nil
			}
			flush()
			return nodes, nil
		case '#':
			if inPlural {
				flush()
				nodes = append(nodes, poundNode{})
				p.pos++
			} else {
				text = append(text, c)
				p.pos++
			}
		default:
			text = append(text, c)
			p.pos++
		}
	}

	if depth > 0 {
		return nil, ErrUnbalancedBraces
	}
	flush()
	return nodes, nil
}

// quoted handles ICU apostrophe quoting: '' is a literal apostrophe, and an
// apostrophe before a syntax character quotes everything up to the next
// unpaired apostrophe. A lone apostrophe before ordinary text is literal.
func (p *parser) quoted(inPlural bool) []rune {
	p.pos++ // consume '
	if p.pos >= len(p.src) {
		return []rune{'\''}
	}
	if p.src[p.pos] == '\'' {
		p.pos++
		return []rune{'\''}
	}

	next := p.src[p.pos]
	syntax := next == '{' || next == '}' || (inPlural && next == '#')
	if !syntax {
		return []rune{'\''}
	}

	var out []rune
	for p.pos < len(p.src) {
		if p.src[p.pos] == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				out = append(out, '\'')
				p.pos += 2
				continue
			}
			p.pos++
			break
		}
		out = append(out, p.src[p.pos])
		p.pos++
	}
	return out
}

// argument parses one {...} argument; pos is at the opening brace.
func (p *parser) argument(depth int, inPlural bool) (node, error) {
	p.pos++ // consume {
	p.skipSpace()

	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("%w: missing argument name", ErrBadArgument)
	}
	p.skipSpace()

	if p.consume('}') {
		return argNode{name: name}, nil
	}
	if !p.consume(',') {
		return nil, fmt.Errorf("%w: expected ',' or '}' after argument %q", ErrBadArgument, name)
	}
	p.skipSpace()

	kind := p.ident()
	p.skipSpace()

	switch kind {
	case "number":
		// Optional style after another comma, e.g. {n, number, integer}.
		if p.consume(',') {
			for p.pos < len(p.src) && p.src[p.pos] != '}' {
				p.pos++
			}
		}
		if !p.consume('}') {
			return nil, fmt.Errorf("%w: unterminated number argument %q", ErrUnbalancedBraces, name)
		}
		return numberNode{name: name}, nil

	case "plural", "selectordinal":
		if !p.consume(',') {
			return nil, fmt.Errorf("%w: expected branches for argument %q", ErrBadArgument, name)
		}
		return p.pluralBranches(name, kind == "selectordinal", depth)

	case "select":
		if !p.consume(',') {
			return nil, fmt.Errorf("%w: expected branches for argument %q", ErrBadArgument, name)
		}
		return p.selectBranches(name, depth, inPlural)

	default:
		return nil, fmt.Errorf("%w: unsupported argument type %q", ErrBadArgument, kind)
	}
}

func (p *parser) pluralBranches(name string, ordinal bool, depth int) (node, error) {
	n := pluralNode{
		name:    name,
		ordinal: ordinal,
		exact:   make(map[int64][]node),
		keyword: make(map[string][]node),
	}

	p.skipSpace()
	if strings.HasPrefix(string(p.src[p.pos:]), "offset:") {
		p.pos += len("offset:")
		p.skipSpace()
		digits := p.digits()
		if digits == "" {
			return nil, fmt.Errorf("%w: offset without a value", ErrBadArgument)
		}
		offset, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad offset %q", ErrBadArgument, digits)
		}
		n.offset = offset
	}

	for {
		p.skipSpace()
		if p.consume('}') {
			break
		}
		if p.pos >= len(p.src) {
			return nil, ErrUnbalancedBraces
		}

		if p.consume('=') {
			digits := p.digits()
			if digits == "" {
				return nil, fmt.Errorf("%w: '=' selector without a number", ErrBadArgument)
			}
			value, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad selector =%s", ErrBadArgument, digits)
			}
			body, err := p.branchBody(depth, true)
			if err != nil {
				return nil, err
			}
			n.exact[value] = body
			continue
		}

		selector := p.ident()
		if selector == "" {
			return nil, fmt.Errorf("%w: expected selector in argument %q", ErrBadArgument, name)
		}
		body, err := p.branchBody(depth, true)
		if err != nil {
			return nil, err
		}
		n.keyword[selector] = body
	}

	if _, ok := n.keyword["other"]; !ok {
		return nil, fmt.Errorf("%w: argument %q", ErrMissingOther, name)
	}
	return n, nil
}

func (p *parser) selectBranches(name string, depth int, inPlural bool) (node, error) {
	n := selectNode{
		name:    name,
		keyword: make(map[string][]node),
	}

	for {
		p.skipSpace()
		if p.consume('}') {
			break
		}
		if p.pos >= len(p.src) {
			return nil, ErrUnbalancedBraces
		}

		selector := p.ident()
		if selector == "" {
			return nil, fmt.Errorf("%w: expected selector in argument %q", ErrBadArgument, name)
		}
		body, err := p.branchBody(depth, inPlural)
		if err != nil {
			return nil, err
		}
		n.keyword[selector] = body
	}

	if _, ok := n.keyword["other"]; !ok {
		return nil, fmt.Errorf("%w: argument %q", ErrMissingOther, name)
	}
	return n, nil
}

func (p *parser) branchBody(depth int, inPlural bool) ([]node, error) {
	p.skipSpace()
	if !p.consume('{') {
		return nil, fmt.Errorf("%w: expected '{' to open a branch", ErrBadArgument)
	}
	body, err := p.message(depth+1, inPlural)
	if err != nil {
		return nil, err
	}
	if !p.consume('}') {
		return nil, ErrUnbalancedBraces
	}
	return body, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) consume(c rune) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}

func (p *parser) digits() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return string(p.src[start:p.pos])
}
