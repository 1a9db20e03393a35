package template

import "strings"

// DefaultMaxDepth bounds block nesting.
const DefaultMaxDepth = 16

type parser struct {
	name     string
	tokens   []token
	pos      int
	maxDepth int
}

func parse(name, src string, maxDepth int) ([]Node, error) {
	tokens, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	p := &parser{name: name, tokens: tokens, maxDepth: maxDepth}

	nodes, end, err := p.parseList(0)
	if err != nil {
		return nil, err
	}
	if end != nil {
		return nil, malformed(name, end.line, "unexpected {%% %s %%}", end.val)
	}
	return nodes, nil
}

// parseList consumes tokens until the input ends or a closing tag (endfor,
// endif, else) is reached. The closing tag is returned to the caller.
func (p *parser) parseList(depth int) ([]Node, *token, error) {
	var nodes []Node
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.typ {
		case tokenText:
			if tok.val != "" {
				nodes = append(nodes, &TextNode{Text: tok.val, Line: tok.line})
			}
		case tokenComment:
		case tokenVar:
			if !isIdentifier(tok.val) {
				return nil, nil, malformed(p.name, tok.line, "invalid placeholder %q", tok.val)
			}
			nodes = append(nodes, &PlaceholderNode{Name: tok.val, Line: tok.line})
		case tokenTag:
			fields := strings.Fields(tok.val)
			if len(fields) == 0 {
				return nil, nil, malformed(p.name, tok.line, "empty tag")
			}
			switch fields[0] {
			case "for":
				node, err := p.parseFor(tok, fields, depth+1)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, node)
			case "if":
				node, err := p.parseIf(tok, fields, depth+1)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, node)
			case "endfor", "endif", "else":
				if len(fields) != 1 {
					return nil, nil, malformed(p.name, tok.line, "%s takes no arguments", fields[0])
				}
				closing := tok
				closing.val = fields[0]
				return nodes, &closing, nil
			default:
				return nil, nil, malformed(p.name, tok.line, "unknown tag %q", fields[0])
			}
		}
	}
	return nodes, nil, nil
}

func (p *parser) parseFor(open token, fields []string, depth int) (Node, error) {
	if depth > p.maxDepth {
		return nil, malformed(p.name, open.line, "blocks nested deeper than %d", p.maxDepth)
	}
	if len(fields) != 4 || fields[2] != "in" || !isIdentifier(fields[1]) || !isIdentifier(fields[3]) {
		return nil, malformed(p.name, open.line, "invalid tag {%% %s %%}, want {%% for <item> in <sequence> %%}", open.val)
	}

	body, end, err := p.parseList(depth)
	if err != nil {
		return nil, err
	}
	if end == nil {
		return nil, malformed(p.name, open.line, "unterminated for block")
	}
	if end.val != "endfor" {
		return nil, malformed(p.name, end.line, "unexpected {%% %s %%} in for block opened at line %d", end.val, open.line)
	}

	return &ForNode{Var: fields[1], Seq: fields[3], Body: body, Line: open.line}, nil
}

func (p *parser) parseIf(open token, fields []string, depth int) (Node, error) {
	if depth > p.maxDepth {
		return nil, malformed(p.name, open.line, "blocks nested deeper than %d", p.maxDepth)
	}
	if len(fields) != 2 || !isIdentifier(fields[1]) {
		return nil, malformed(p.name, open.line, "invalid tag {%% %s %%}, want {%% if <name> %%}", open.val)
	}

	node := &IfNode{Cond: fields[1], Line: open.line}

	then, end, err := p.parseList(depth)
	if err != nil {
		return nil, err
	}
	if end == nil {
		return nil, malformed(p.name, open.line, "unterminated if block")
	}
	node.Then = then

	if end.val == "else" {
		alt, elseEnd, err := p.parseList(depth)
		if err != nil {
			return nil, err
		}
		if elseEnd == nil {
			return nil, malformed(p.name, open.line, "unterminated if block")
		}
		if elseEnd.val != "endif" {
			return nil, malformed(p.name, elseEnd.line, "unexpected {%% %s %%} in if block opened at line %d", elseEnd.val, open.line)
		}
		node.Else = alt
		return node, nil
	}
	if end.val != "endif" {
		return nil, malformed(p.name, end.line, "unexpected {%% %s %%} in if block opened at line %d", end.val, open.line)
	}
	return node, nil
}
