package lang

import (
	"strconv"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/value"
)

// Parse parses a pipeline source string against an engine state.
//
// The state is consulted during parsing: command names (including
// two-word subcommands like "str replace") must resolve, block literals
// are registered into the block registry, and block parameters get
// variable IDs allocated from the state. Variable references resolve to
// IDs at parse time; an unknown variable is a parse error.
func Parse(state *engine.EngineState, src string) (*Pipeline, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		state:  state,
		toks:   toks,
		scopes: []map[string]value.VarID{{}},
	}
	pipe, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, parseErrorf(p.cur().span, "unexpected %q after pipeline", p.cur().text)
	}
	return pipe, nil
}

type parser struct {
	state  *engine.EngineState
	toks   []token
	pos    int
	scopes []map[string]value.VarID
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

func (p *parser) peek() token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.cur().kind != kind {
		return token{}, parseErrorf(p.cur().span, "expected %s", what)
	}
	return p.advance(), nil
}

// parsePipeline parses elements joined by pipes until a terminator
// (EOF, '}', ')') is reached. The terminator is left for the caller.
func (p *parser) parsePipeline() (*Pipeline, error) {
	start := p.cur().span

	first, err := p.parsePipelineElement()
	if err != nil {
		return nil, err
	}
	elements := []Expr{first}

	for p.cur().kind == tokPipe {
		p.advance()
		elem, err := p.parsePipelineElement()
		if err != nil {
			return nil, err
		}
		if _, ok := elem.(*CallExpr); !ok {
			return nil, parseErrorf(elem.Span(), "expected a command after |")
		}
		elements = append(elements, elem)
	}

	end := elements[len(elements)-1].Span().End
	return &Pipeline{
		Elements: elements,
		Sp:       value.NewSpan(start.Start, end),
	}, nil
}

// parsePipelineElement parses one pipeline stage: a command call when
// it starts with a (non-keyword) identifier, otherwise an expression.
func (p *parser) parsePipelineElement() (Expr, error) {
	t := p.cur()
	if t.kind == tokIdent {
		switch t.text {
		case "if":
			return p.parseIf()
		case "true", "false":
			return p.parseExpr(false)
		default:
			return p.parseCall()
		}
	}
	return p.parseExpr(false)
}

// parseCall parses a command call. Two-word names are resolved greedily
// against the registry, so "str replace -a ..." binds to the "str
// replace" command rather than a "str" command with arguments.
func (p *parser) parseCall() (Expr, error) {
	nameTok := p.advance()
	name := nameTok.text
	nameSpan := nameTok.span

	if p.cur().kind == tokIdent {
		joined := name + " " + p.cur().text
		if p.state.HasCommand(joined) {
			next := p.advance()
			name = joined
			nameSpan = value.NewSpan(nameSpan.Start, next.span.End)
		}
	}

	if !p.state.HasCommand(name) {
		return nil, parseErrorf(nameSpan, "unknown command %q", name)
	}

	var args []CallArg
	end := nameSpan.End
	for {
		switch p.cur().kind {
		case tokPipe, tokRBrace, tokRParen, tokRBracket, tokEOF:
			return &CallExpr{
				Name:     name,
				NameSpan: nameSpan,
				Args:     args,
				Sp:       value.NewSpan(nameSpan.Start, end),
			}, nil
		case tokFlag:
			t := p.advance()
			args = append(args, CallArg{FlagName: t.text, FlagSpan: t.span})
			end = t.span.End
		default:
			expr, err := p.parseExpr(true)
			if err != nil {
				return nil, err
			}
			args = append(args, CallArg{Expr: expr})
			end = expr.Span().End
		}
	}
}

// parseExpr parses a comparison-level expression. barewordOK controls
// whether a bare identifier is read as a string literal (argument and
// list position) or rejected.
func (p *parser) parseExpr(barewordOK bool) (Expr, error) {
	left, err := p.parseAdditive(barewordOK)
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokGt {
		p.advance()
		right, err := p.parseAdditive(barewordOK)
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{
			Op:    OpGt,
			Left:  left,
			Right: right,
			Sp:    value.NewSpan(left.Span().Start, right.Span().End),
		}
	}
	return left, nil
}

func (p *parser) parseAdditive(barewordOK bool) (Expr, error) {
	left, err := p.parsePostfix(barewordOK)
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokPlus {
		p.advance()
		right, err := p.parsePostfix(barewordOK)
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{
			Op:    OpPlus,
			Left:  left,
			Right: right,
			Sp:    value.NewSpan(left.Span().Start, right.Span().End),
		}
	}
	return left, nil
}

func (p *parser) parsePostfix(barewordOK bool) (Expr, error) {
	expr, err := p.parseAtom(barewordOK)
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokDot {
		p.advance()
		field, err := p.expect(tokIdent, "field name after .")
		if err != nil {
			return nil, err
		}
		expr = &FieldAccess{
			Target: expr,
			Field:  field.text,
			Sp:     value.NewSpan(expr.Span().Start, field.span.End),
		}
	}
	return expr, nil
}

func (p *parser) parseAtom(barewordOK bool) (Expr, error) {
	t := p.cur()
	switch t.kind {
	case tokInt:
		p.advance()
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, parseErrorf(t.span, "integer out of range: %s", t.text)
		}
		return &IntLit{Val: n, Sp: t.span}, nil

	case tokString:
		p.advance()
		return &StrLit{Val: t.text, Sp: t.span}, nil

	case tokVar:
		p.advance()
		id, ok := p.lookupVar(t.text)
		if !ok {
			return nil, parseErrorf(t.span, "variable $%s not found", t.text)
		}
		return &VarRef{Name: t.text, ID: id, Sp: t.span}, nil

	case tokLBracket:
		return p.parseList()

	case tokLParen:
		open := p.advance()
		pipe, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		closing, err := p.expect(tokRParen, ")")
		if err != nil {
			return nil, err
		}
		return &SubPipeline{
			Pipe: pipe,
			Sp:   value.NewSpan(open.span.Start, closing.span.End),
		}, nil

	case tokLBrace:
		return p.parseBlock()

	case tokIdent:
		switch t.text {
		case "true":
			p.advance()
			return &BoolLit{Val: true, Sp: t.span}, nil
		case "false":
			p.advance()
			return &BoolLit{Val: false, Sp: t.span}, nil
		case "if":
			return p.parseIf()
		}
		if barewordOK {
			p.advance()
			return &StrLit{Val: t.text, Sp: t.span}, nil
		}
		return nil, parseErrorf(t.span, "unexpected identifier %q", t.text)

	default:
		return nil, parseErrorf(t.span, "expected an expression")
	}
}

func (p *parser) parseList() (Expr, error) {
	open := p.advance()
	var elems []Expr
	for {
		if p.cur().kind == tokComma {
			p.advance()
			continue
		}
		if p.cur().kind == tokRBracket {
			closing := p.advance()
			return &ListLit{
				Elems: elems,
				Sp:    value.NewSpan(open.span.Start, closing.span.End),
			}, nil
		}
		if p.cur().kind == tokEOF {
			return nil, parseErrorf(p.cur().span, "unclosed list literal")
		}
		elem, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

// parseBlock parses a block literal {|params| body}, registers the
// block with the engine state, and yields a reference to it.
//
// Parameters get fresh variable IDs and are visible only inside the
// body. The signature records the IDs so operators binding positional
// parameters (like reduce) can look them up.
func (p *parser) parseBlock() (Expr, error) {
	open := p.advance()

	sig := engine.NewSignature("block")
	scope := map[string]value.VarID{}

	if p.cur().kind == tokPipe {
		p.advance()
		for p.cur().kind != tokPipe {
			if p.cur().kind == tokComma {
				p.advance()
				continue
			}
			param, err := p.expect(tokIdent, "parameter name")
			if err != nil {
				return nil, err
			}
			if _, dup := scope[param.text]; dup {
				return nil, parseErrorf(param.span, "duplicate parameter %q", param.text)
			}
			id := p.state.AllocVarID()
			scope[param.text] = id
			sig.Positional = append(sig.Positional, engine.PositionalArg{
				Name:  param.text,
				Shape: engine.ShapeAny,
				VarID: id,
			})
		}
		p.advance() // closing |
	}

	p.scopes = append(p.scopes, scope)
	body, err := p.parsePipeline()
	p.scopes = p.scopes[:len(p.scopes)-1]
	if err != nil {
		return nil, err
	}

	closing, err := p.expect(tokRBrace, "}")
	if err != nil {
		return nil, err
	}

	id := p.state.AddBlock(&engine.Block{
		Signature: sig,
		Body:      &parsedBody{pipeline: body},
	})
	return &BlockLit{
		ID: id,
		Sp: value.NewSpan(open.span.Start, closing.span.End),
	}, nil
}

// parseIf parses if cond { then } [else { else }] with inline branch
// pipelines sharing the enclosing scope.
func (p *parser) parseIf() (Expr, error) {
	ifTok := p.advance()

	cond, err := p.parseExpr(false)
	if err != nil {
		return nil, err
	}

	thenPipe, end, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	var elsePipe *Pipeline
	if p.cur().kind == tokIdent && p.cur().text == "else" {
		p.advance()
		if p.cur().kind == tokIdent && p.cur().text == "if" {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elsePipe = &Pipeline{Elements: []Expr{nested}, Sp: nested.Span()}
			end = nested.Span().End
		} else {
			elsePipe, end, err = p.parseBranch()
			if err != nil {
				return nil, err
			}
		}
	}

	return &IfExpr{
		Cond: cond,
		Then: thenPipe,
		Else: elsePipe,
		Sp:   value.NewSpan(ifTok.span.Start, end),
	}, nil
}

func (p *parser) parseBranch() (*Pipeline, int, error) {
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, 0, err
	}
	pipe, err := p.parsePipeline()
	if err != nil {
		return nil, 0, err
	}
	closing, err := p.expect(tokRBrace, "}")
	if err != nil {
		return nil, 0, err
	}
	return pipe, closing.span.End, nil
}

func (p *parser) lookupVar(name string) (value.VarID, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if id, ok := p.scopes[i][name]; ok {
			return id, true
		}
	}
	return 0, false
}
