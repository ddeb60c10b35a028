// Package parser turns a token stream into an instruction-word
// stream (with unresolved label/variable references left as
// sentinels) plus the label and variable tables the linker needs to
// resolve them.
package parser

import (
	"fmt"

	"comp16/isa"
	"comp16/token"
	"comp16/word"
)

// Error reports a parse-time failure: an unexpected token, an arity
// mismatch, a constant used as a write target, a literal-to-literal
// instruction, or a duplicate/undeclared name.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %s at line %d", e.Message, e.Line)
}

// Item is one element of the parser's output stream: either a
// resolved 16-bit word, or a sentinel standing in for a label or
// variable reference the linker must resolve.
type Item struct {
	Value      word.Word
	Unresolved string
	Line       int
}

// IsWord reports whether this Item is already a resolved word.
func (i Item) IsWord() bool { return i.Unresolved == "" }

func wordItem(v word.Word) Item { return Item{Value: v} }
func sentinelItem(name string, line int) Item { return Item{Unresolved: name, Line: line} }

// Variable is one `alloc` declaration: a name and its word count.
type Variable struct {
	Name string
	Size int
}

// Result is everything the linker needs.
type Result struct {
	Code      []Item
	Labels    map[string]int
	Variables []Variable
}

type parser struct {
	toks      []token.Token
	pos       int
	code      []Item
	labels    map[string]int
	variables []Variable
	declared  map[string]bool // labels ∪ variables ∪ builtins, for duplicate detection
}

// Parse consumes an entire token stream (as produced by the lexer,
// terminated by token.EOF) and returns the parsed program.
func Parse(toks []token.Token) (*Result, error) {
	p := &parser{
		toks:     toks,
		labels:   map[string]int{},
		declared: map[string]bool{},
	}
	for name := range isa.BuiltinNames {
		p.declared[name] = true
	}

	for p.peek().Kind != token.EOF {
		if err := p.statement(); err != nil {
			return nil, err
		}
	}

	if err := p.checkUnresolved(); err != nil {
		return nil, err
	}

	return &Result{Code: p.code, Labels: p.labels, Variables: p.variables}, nil
}

func (p *parser) peek() token.Token { return p.toks[p.pos] }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) checkUnresolved() error {
	for _, item := range p.code {
		if item.IsWord() {
			continue
		}
		if _, ok := p.labels[item.Unresolved]; ok {
			continue
		}
		if p.variableExists(item.Unresolved) {
			continue
		}
		return &Error{Message: fmt.Sprintf("undeclared name %q", item.Unresolved), Line: item.Line}
	}
	return nil
}

func (p *parser) variableExists(name string) bool {
	for _, v := range p.variables {
		if v.Name == name {
			return true
		}
	}
	return false
}

func (p *parser) declare(name string, line int) error {
	if p.declared[name] {
		return &Error{Message: fmt.Sprintf("duplicate declaration of %q", name), Line: line}
	}
	p.declared[name] = true
	return nil
}

func (p *parser) statement() error {
	t := p.peek()

	switch {
	case t.Kind == token.Delimiter && t.Lexeme == token.Colon:
		return p.labelDecl()
	case t.Kind == token.Keyword && t.Lexeme == "alloc":
		return p.allocDecl()
	case t.Kind == token.Keyword:
		return p.instruction()
	default:
		return &Error{Message: fmt.Sprintf("unexpected token %s", t), Line: t.Line}
	}
}

func (p *parser) labelDecl() error {
	colon := p.advance()
	name := p.peek()
	if name.Kind != token.Name {
		return &Error{Message: "expected a name after ':'", Line: colon.Line}
	}
	p.advance()
	if err := p.declare(name.Lexeme, name.Line); err != nil {
		return err
	}
	p.labels[name.Lexeme] = len(p.code)
	return nil
}

func (p *parser) allocDecl() error {
	kw := p.advance()
	name := p.peek()
	if name.Kind != token.Name {
		return &Error{Message: "expected a name after 'alloc'", Line: kw.Line}
	}
	p.advance()
	size := p.peek()
	if size.Kind != token.Integer {
		return &Error{Message: "expected an integer size after 'alloc " + name.Lexeme + "'", Line: name.Line}
	}
	p.advance()
	if err := p.declare(name.Lexeme, name.Line); err != nil {
		return err
	}
	p.variables = append(p.variables, Variable{Name: name.Lexeme, Size: size.Value})
	return nil
}

func (p *parser) instruction() error {
	mnemonicTok := p.advance()
	mn, ok := isa.Table[mnemonicTok.Lexeme]
	if !ok {
		return &Error{Message: fmt.Sprintf("unknown mnemonic %q", mnemonicTok.Lexeme), Line: mnemonicTok.Line}
	}

	target := isa.Specifier{Selector: isa.SelA, Pointer: false}
	source := isa.Specifier{Selector: isa.SelA, Pointer: false}
	var trailing []Item

	switch mn.Arity {
	case isa.ZeroAddress:
		// no operands

	case isa.TwoAddress:
		t, tTrail, err := p.operand(mnemonicTok.Line)
		if err != nil {
			return err
		}
		s, sTrail, err := p.operand(mnemonicTok.Line)
		if err != nil {
			return err
		}
		if t.Selector == isa.SelConst && !t.Pointer && s.Selector == isa.SelConst && !s.Pointer {
			return &Error{Message: "both operands are constants", Line: mnemonicTok.Line}
		}
		target, source = t, s
		trailing = appendTrailing(tTrail, sTrail)

	case isa.OneTarget:
		t, tTrail, err := p.operand(mnemonicTok.Line)
		if err != nil {
			return err
		}
		if t.Selector == isa.SelConst && !t.Pointer {
			return &Error{Message: "a constant is not a legal target", Line: mnemonicTok.Line}
		}
		target = t
		trailing = appendTrailing(tTrail, nil)

	case isa.OneSource:
		s, sTrail, err := p.operand(mnemonicTok.Line)
		if err != nil {
			return err
		}
		source = s
		trailing = appendTrailing(sTrail, nil)
	}

	p.code = append(p.code, wordItem(isa.Encode(mn.Class, mn.Sub, target, source)))
	p.code = append(p.code, trailing...)
	return nil
}

func appendTrailing(a, b *Item) []Item {
	var out []Item
	if a != nil {
		out = append(out, *a)
	}
	if b != nil {
		out = append(out, *b)
	}
	return out
}

// operand parses one REG | INT | NAME | '[' ... ']' specifier. It
// returns the encoded specifier and, for a constant operand, the
// trailing word (or sentinel) that must follow the instruction word.
func (p *parser) operand(line int) (isa.Specifier, *Item, error) {
	pointer := false
	if p.peek().Kind == token.Delimiter && p.peek().Lexeme == token.LeftBracket {
		p.advance()
		pointer = true
	}

	t := p.advance()
	var spec isa.Specifier
	var trailing *Item

	switch t.Kind {
	case token.Register:
		sel, ok := registerSelector(t.Lexeme)
		if !ok {
			return spec, nil, &Error{Message: fmt.Sprintf("unknown register %q", t.Lexeme), Line: t.Line}
		}
		spec = isa.Specifier{Selector: sel, Pointer: pointer}

	case token.Integer:
		spec = isa.Specifier{Selector: isa.SelConst, Pointer: pointer}
		v := wordItem(word.Word(t.Value))
		trailing = &v

	case token.Name:
		spec = isa.Specifier{Selector: isa.SelConst, Pointer: pointer}
		if addr, ok := isa.BuiltinNames[t.Lexeme]; ok {
			v := wordItem(addr)
			trailing = &v
		} else {
			v := sentinelItem(t.Lexeme, t.Line)
			trailing = &v
		}

	default:
		return spec, nil, &Error{Message: fmt.Sprintf("expected an operand, found %s", t), Line: t.Line}
	}

	if pointer {
		close := p.peek()
		if close.Kind != token.Delimiter || close.Lexeme != token.RightBracket {
			return spec, nil, &Error{Message: "expected ']'", Line: close.Line}
		}
		p.advance()
	}

	return spec, trailing, nil
}

func registerSelector(name string) (isa.Selector, bool) {
	sel, ok := isa.Registers[name]
	return sel, ok
}
