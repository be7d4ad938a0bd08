package expr

import "fmt"

// parser is a recursive-descent parser over the token stream of a lexer.
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary | power }      (juxtaposition multiplies)
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | name | name "(" args ")" | "(" sum ")"
type parser struct {
	l     lexer
	cur   token
	slots map[string]int
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) errorf(tok token, format string, args ...any) *ParseError {
	near := tok.text
	if tok.kind == tokEOF {
		near = ""
	}
	return &ParseError{
		Input: p.l.s,
		Pos:   tok.pos,
		Near:  near,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *parser) parse() (node, error) {
	p.next()
	if p.cur.kind == tokEOF {
		return nil, p.errorf(p.cur, "empty expression")
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	switch p.cur.kind {
	case tokEOF:
		return n, nil
	case tokRParen:
		return nil, p.errorf(p.cur, "unbalanced parentheses")
	}
	return nil, p.errorf(p.cur, "unexpected %q", p.cur.text)
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := byte('+')
		if p.cur.kind == tokMinus {
			op = '-'
		}
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokStar, tokSlash:
			op := byte('*')
			if p.cur.kind == tokSlash {
				op = '/'
			}
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: op, left: left, right: right}
		case tokIdent, tokLParen:
			// 2pi, 3x, 2(x+1), (x+1)(x-1)
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '*', left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := byte('+')
		if p.cur.kind == tokMinus {
			op = '-'
		}
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokCaret {
		p.next()
		exp, err := p.parseUnary() // right-associative, 2^-x allowed
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.cur
	switch tok.kind {
	case tokNumber:
		p.next()
		return numberNode{v: tok.num}, nil
	case tokIdent:
		p.next()
		return p.parseName(tok)
	case tokLParen:
		p.next()
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, p.errorf(p.cur, "expected ')' to close '(' at offset %d", tok.pos)
		}
		p.next()
		return n, nil
	case tokEOF:
		return nil, p.errorf(tok, "unexpected end of expression")
	case tokInvalid:
		return nil, p.errorf(tok, "invalid token")
	}
	return nil, p.errorf(tok, "unexpected %q", tok.text)
}

func (p *parser) parseName(tok token) (node, error) {
	name := tok.text
	if slot, ok := p.slots[name]; ok {
		return varNode{name: name, slot: slot}, nil
	}
	if v, ok := constants[name]; ok {
		return constNode{name: name, v: v}, nil
	}
	fn, ok := builtins[name]
	if !ok {
		return nil, p.errorf(tok, "unknown identifier")
	}
	if p.cur.kind != tokLParen {
		return nil, p.errorf(tok, "function %s needs an argument list", name)
	}
	open := p.cur
	p.next()
	var args []node
	if p.cur.kind != tokRParen {
		for {
			a, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur.kind != tokComma {
				break
			}
			p.next()
		}
	}
	if p.cur.kind != tokRParen {
		return nil, p.errorf(p.cur, "expected ')' to close '(' at offset %d", open.pos)
	}
	p.next()
	if len(args) != fn.arity {
		return nil, p.errorf(tok, "%s takes %d argument(s), got %d", name, fn.arity, len(args))
	}
	return callNode{fn: fn, args: args}, nil
}
