// Package sexp implements a small s-expression reader for the GOAL-style
// definition files (text tables, subtitle scenes, project manifests).
package sexp

import (
	"fmt"
	"strconv"
)

// Kind discriminates node variants.
type Kind int

const (
	KindList Kind = iota
	KindSymbol
	KindString
	KindInt
)

// Node is one datum in a parsed document.
type Node struct {
	Kind Kind
	Sym  string
	Str  string
	Int  int
	List []Node
	// Line is the 1-based source line the node started on.
	Line int
}

// IsSymbol reports whether the node is the given symbol.
func (n Node) IsSymbol(name string) bool {
	return n.Kind == KindSymbol && n.Sym == name
}

// IsKeyword reports whether the node is a :keyword symbol.
func (n Node) IsKeyword() bool {
	return n.Kind == KindSymbol && len(n.Sym) > 0 && n.Sym[0] == ':'
}

// Head returns the first element of a list node, if any.
func (n Node) Head() (Node, bool) {
	if n.Kind != KindList || len(n.List) == 0 {
		return Node{}, false
	}
	return n.List[0], true
}

// Read parses a document into its top-level forms.
func Read(src []byte) ([]Node, error) {
	r := &reader{src: src, line: 1}
	var forms []Node
	for {
		r.skipSpace()
		if r.eof() {
			return forms, nil
		}
		node, err := r.readNode()
		if err != nil {
			return nil, err
		}
		forms = append(forms, node)
	}
}

type reader struct {
	src  []byte
	pos  int
	line int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() byte { return r.src[r.pos] }

func (r *reader) next() byte {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
	}
	return c
}

func (r *reader) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", r.line, fmt.Sprintf(format, args...))
}

// skipSpace consumes whitespace and ; comments.
func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			r.next()
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		default:
			return
		}
	}
}

func (r *reader) readNode() (Node, error) {
	c := r.peek()
	switch {
	case c == '(':
		return r.readList()
	case c == ')':
		return Node{}, r.errf("unexpected ')'")
	case c == '"':
		return r.readString()
	default:
		return r.readAtom()
	}
}

func (r *reader) readList() (Node, error) {
	node := Node{Kind: KindList, Line: r.line}
	r.next() // consume '('
	for {
		r.skipSpace()
		if r.eof() {
			return Node{}, r.errf("unterminated list")
		}
		if r.peek() == ')' {
			r.next()
			return node, nil
		}
		child, err := r.readNode()
		if err != nil {
			return Node{}, err
		}
		node.List = append(node.List, child)
	}
}

func (r *reader) readString() (Node, error) {
	node := Node{Kind: KindString, Line: r.line}
	r.next() // consume '"'
	var buf []byte
	for {
		if r.eof() {
			return Node{}, r.errf("unterminated string")
		}
		c := r.next()
		if c == '"' {
			node.Str = string(buf)
			return node, nil
		}
		if c == '\\' {
			if r.eof() {
				return Node{}, r.errf("unterminated escape")
			}
			switch e := r.next(); e {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '"', '\\':
				buf = append(buf, e)
			default:
				return Node{}, r.errf("unknown escape \\%c", e)
			}
			continue
		}
		buf = append(buf, c)
	}
}

func isDelimiter(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '(' || c == ')' || c == '"' || c == ';'
}

func (r *reader) readAtom() (Node, error) {
	startLine := r.line
	start := r.pos
	for !r.eof() && !isDelimiter(r.peek()) {
		r.next()
	}
	tok := string(r.src[start:r.pos])

	// #x introduces a hex integer, matching the GOAL notation.
	if len(tok) > 2 && (tok[:2] == "#x" || tok[:2] == "#X") {
		v, err := strconv.ParseInt(tok[2:], 16, 64)
		if err != nil {
			return Node{}, r.errf("bad hex literal %q", tok)
		}
		return Node{Kind: KindInt, Int: int(v), Line: startLine}, nil
	}

	if v, err := strconv.Atoi(tok); err == nil {
		return Node{Kind: KindInt, Int: v, Line: startLine}, nil
	}

	return Node{Kind: KindSymbol, Sym: tok, Line: startLine}, nil
}
