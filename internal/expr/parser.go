package expr

// parser is a recursive-descent parser over a pre-lexed token slice.
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary | factor-start unary }
//	unary   = ("-" | "+") unary | power
//	power   = postfix [ "**" unary ]
//	postfix = primary { "." name }
//	primary = number | name | name "(" [ expr { "," expr } ] ")" | "(" expr ")"
type parser struct {
	toks []token
	i    int
}

// Parse parses src into a Node without evaluating it.
func Parse(src string) (Node, error) {
	lx := &lexer{src: src}
	toks, err := lx.all()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxError(t.pos, "unexpected %s", describeToken(t))
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.peek()
	if t.kind != k {
		return t, syntaxError(t.pos, "expected %s, found %s", k, describeToken(t))
	}
	return p.advance(), nil
}

func (p *parser) expr() (Node, error) {
	l, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return l, nil
		}
		p.advance()
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{pos: t.pos, op: t.kind, l: l, r: r}
	}
}

func (p *parser) term() (Node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op := t.kind
		switch t.kind {
		case tokStar, tokSlash:
			p.advance()
		case tokNumber, tokIdent, tokLParen:
			// juxtaposition: "3 meter"
			op = tokStar
		default:
			return l, nil
		}
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{pos: t.pos, op: op, l: l, r: r}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if t.kind == tokMinus || t.kind == tokPlus {
		p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.kind == tokPlus {
			return x, nil
		}
		return &unaryNode{pos: t.pos, op: tokMinus, x: x}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokPow {
		return base, nil
	}
	p.advance()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{pos: t.pos, op: tokPow, l: base, r: exp}, nil
}

func (p *parser) postfix() (Node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokDot {
		dot := p.advance()
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		switch name.text {
		case "x", "y", "z":
		default:
			return nil, syntaxError(name.pos, "unknown component %q", name.text)
		}
		x = &componentNode{pos: dot.pos, x: x, axis: name.text}
	}
	return x, nil
}

func (p *parser) primary() (Node, error) {
	t := p.advance()
	switch t.kind {
	case tokNumber:
		return &numberNode{pos: t.pos, val: t.num}, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return &nameNode{pos: t.pos, name: t.text}, nil
		}
		p.advance()
		call := &callNode{pos: t.pos, name: t.text}
		if p.peek().kind == tokRParen {
			p.advance()
			return call, nil
		}
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			call.args = append(call.args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.advance()
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return call, nil
	case tokLParen:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, syntaxError(t.pos, "unexpected %s", describeToken(t))
}

func describeToken(t token) string {
	switch t.kind {
	case tokNumber, tokIdent:
		return t.kind.String() + " " + t.text
	}
	return t.kind.String()
}
