package xfile

import (
	"strconv"

	"github.com/pkg/errors"
)

// Object is a generic data object of a text .x file. Data holds the
// object's numeric and string members in file order with separators
// dropped; References holds "{ Name }" links to other objects.
type Object struct {
	Type       string
	Name       string
	Data       []string
	Children   []*Object
	References []string
}

// Child returns the first child of the given template type.
func (o *Object) Child(typ string) *Object {
	for _, c := range o.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

type parser struct {
	lex  *lexer
	tok  token
	peek []token
}

func (p *parser) advance() token {
	if len(p.peek) > 0 {
		p.tok = p.peek[0]
		p.peek = p.peek[1:]
	} else {
		p.tok = p.lex.next()
	}
	return p.tok
}

func (p *parser) lookahead(n int) token {
	for len(p.peek) <= n {
		p.peek = append(p.peek, p.lex.next())
	}
	return p.peek[n]
}

// parseObjects reads top-level objects until EOF. Templates are skipped.
func (p *parser) parseObjects() ([]*Object, error) {
	var out []*Object
	for {
		t := p.advance()
		switch t.kind {
		case tokEOF:
			return out, nil
		case tokName:
			if t.text == "template" {
				if err := p.skipBlock(); err != nil {
					return nil, err
				}
				continue
			}
			o, err := p.parseObject(t.text)
			if err != nil {
				return nil, err
			}
			out = append(out, o)
		case tokSemi, tokComma:
		default:
			return nil, errors.Errorf("line %d: unexpected %q", t.line, t.text)
		}
	}
}

// parseObject reads "[name] { ... }" after the template type.
func (p *parser) parseObject(typ string) (*Object, error) {
	o := &Object{Type: typ}
	t := p.advance()
	if t.kind == tokName || t.kind == tokNumber {
		o.Name = t.text
		t = p.advance()
	}
	if t.kind != tokOpen {
		return nil, errors.Errorf("line %d: expected { after %s", t.line, typ)
	}

	for {
		t := p.advance()
		switch t.kind {
		case tokEOF:
			return nil, errors.Errorf("unterminated %s", typ)
		case tokClose:
			return o, nil
		case tokSemi, tokComma, tokGUID:
		case tokNumber, tokString:
			o.Data = append(o.Data, t.text)
		case tokOpen:
			ref := p.advance()
			if ref.kind == tokName {
				o.References = append(o.References, ref.text)
				ref = p.advance()
			}
			if ref.kind != tokClose {
				return nil, errors.Errorf("line %d: malformed reference", ref.line)
			}
		case tokName:
			next := p.lookahead(0)
			if next.kind == tokOpen || (next.kind == tokName && p.lookahead(1).kind == tokOpen) {
				c, err := p.parseObject(t.text)
				if err != nil {
					return nil, err
				}
				o.Children = append(o.Children, c)
				continue
			}
			// bare identifiers inside data lists are enum-like values
			o.Data = append(o.Data, t.text)
		}
	}
}

func (p *parser) skipBlock() error {
	depth := 0
	for {
		t := p.advance()
		switch t.kind {
		case tokEOF:
			return errors.New("unterminated template")
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

// cursor walks an object's Data list.
type cursor struct {
	obj *Object
	pos int
	err error
}

// remaining is the number of unread data values.
func (c *cursor) remaining() int {
	return len(c.obj.Data) - c.pos
}

func (c *cursor) int() int {
	if c.err != nil {
		return 0
	}
	if c.pos >= len(c.obj.Data) {
		c.err = errors.Errorf("%s %s: data ends early", c.obj.Type, c.obj.Name)
		return 0
	}
	v, err := strconv.Atoi(c.obj.Data[c.pos])
	if err != nil {
		c.err = errors.Wrapf(err, "%s %s", c.obj.Type, c.obj.Name)
	}
	c.pos++
	return v
}

func (c *cursor) float() float64 {
	if c.err != nil {
		return 0
	}
	if c.pos >= len(c.obj.Data) {
		c.err = errors.Errorf("%s %s: data ends early", c.obj.Type, c.obj.Name)
		return 0
	}
	v, err := strconv.ParseFloat(c.obj.Data[c.pos], 64)
	if err != nil {
		c.err = errors.Wrapf(err, "%s %s", c.obj.Type, c.obj.Name)
	}
	c.pos++
	return v
}
