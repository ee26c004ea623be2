package mython

import "fmt"

// moduleSingleton is the closure key the implicit module-level receiver is
// bound under (see SPEC_FULL.md §4, "top-level def"). The angle brackets
// make it unshadowable by any identifier the lexer can produce.
const moduleSingleton = "<module>"

// Tokenize drains a Lexer into a token slice, EOF included. The slice is
// always well-balanced per spec.md §8's invariant 1: every INDENT emitted
// has a matching later DEDENT before EOF, because the lexer itself
// maintains that invariant as it runs.
func Tokenize(source string) ([]Token, error) {
	lex, err := NewLexer(source)
	if err != nil {
		return nil, err
	}
	tokens := []Token{lex.Current()}
	for tokens[len(tokens)-1].Type != EOF {
		tok, err := lex.Advance()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Parser is a recursive-descent parser turning a Mython token stream into
// the Node tree the evaluator walks. The parser is an external
// collaborator per spec.md §1 ("treated as a black box producing an
// executable root statement"); it is included here so the core is
// exercisable end to end (see DESIGN.md).
type Parser struct {
	tokens      []Token
	pos         int
	classes     map[string]*Class
	funcs       map[string]bool
	module      *Class
	moduleBound bool
	enclosing   Stack[string]
}

// NewParser builds a parser over tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		classes: make(map[string]*Class),
		funcs:   make(map[string]bool),
		module:  NewClass(moduleSingleton, nil, nil),
	}
}

// ParseProgram parses the whole token stream into a single executable
// root statement (a Compound), recovering from a ParseError panic the
// same way the teacher's Parser does.
func (p *Parser) ParseProgram() (root Node, err error) {
	return p.parseChunk()
}

// ParseChunk parses one more slice of tokens with the same Parser,
// preserving its accumulated class/function tables and its module
// singleton binding across calls. This is what the REPL uses so a class
// or top-level def declared in one chunk resolves in a later one; a
// fresh Parser per chunk (as ParseProgram would otherwise imply for a
// one-shot file run) would lose that state.
func (p *Parser) ParseChunk(tokens []Token) (root Node, err error) {
	p.tokens = tokens
	p.pos = 0
	return p.parseChunk()
}

func (p *Parser) parseChunk() (root Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	var stmts []Node
	if !p.moduleBound {
		// Bind the module singleton first so top-level `def`/bare calls
		// can resolve against it regardless of where in the source it
		// occurs.
		stmts = append(stmts, Assignment{
			Name: moduleSingleton,
			Expr: moduleConstructor{class: p.module},
		})
		p.moduleBound = true
	}

	for !p.check(EOF) {
		for p.tryConsume(NEWLINE) {
		}
		if p.check(EOF) {
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return Compound{Stmts: stmts}, nil
}

// moduleConstructor is a tiny Node, local to the parser package, that
// materializes the module singleton instance without running any
// __init__ (the module class never declares one).
type moduleConstructor struct{ class *Class }

func (m moduleConstructor) Execute(Closure, *Context) (ObjectHandle, error) {
	return Share(NewInstance(m.class)), nil
}

// --- token cursor helpers -------------------------------------------------

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) checkChar(c byte) bool {
	tok := p.peek()
	return tok.Type == CHAR && tok.CharVal == c
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) tryConsume(t TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) tryConsumeChar(c byte) bool {
	if p.checkChar(c) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t TokenType, msg string) Token {
	if !p.check(t) {
		panic(&ParseError{Tok: p.peek(), Msg: msg})
	}
	return p.advance()
}

func (p *Parser) expectChar(c byte, msg string) Token {
	if !p.checkChar(c) {
		panic(&ParseError{Tok: p.peek(), Msg: msg})
	}
	return p.advance()
}

func (p *Parser) expectIdent(msg string) Token {
	return p.expect(IDENT, msg)
}

// --- statements ------------------------------------------------------

func (p *Parser) parseStatement() Node {
	switch {
	case p.check(CLASS):
		return p.parseClassDef()
	case p.check(DEF):
		p.parseTopLevelDef()
		return nil
	case p.check(IF):
		return p.parseIfElse()
	default:
		stmt := p.parseSimpleStatement()
		p.expect(NEWLINE, "expected end of line")
		return stmt
	}
}

// suite ::= NEWLINE INDENT statement+ DEDENT
func (p *Parser) parseSuite() Node {
	p.expect(NEWLINE, "expected newline before indented block")
	p.expect(INDENT, "expected an indented block")
	var stmts []Node
	for !p.check(DEDENT) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(DEDENT, "expected dedent")
	return Compound{Stmts: stmts}
}

func (p *Parser) parseClassDef() Node {
	p.advance() // 'class'
	name := p.expectIdent("expected class name").Lexeme

	var parent *Class
	if p.tryConsumeChar('(') {
		parentName := p.expectIdent("expected parent class name").Lexeme
		pc, ok := p.classes[parentName]
		if !ok {
			panic(&ParseError{Tok: p.peek(), Msg: "unknown parent class " + parentName})
		}
		parent = pc
		p.expectChar(')', "expected ')' after parent class name")
	}
	p.expectChar(':', "expected ':' after class header")
	p.expect(NEWLINE, "expected newline after class header")
	p.expect(INDENT, "expected indented class body")

	cls := NewClass(name, nil, parent)
	p.classes[name] = cls

	for !p.check(DEDENT) {
		method := p.parseMethodDef()
		cls.Methods = append(cls.Methods, method)
	}
	p.expect(DEDENT, "expected dedent after class body")

	return ClassDefinition{Class: cls}
}

func (p *Parser) parseMethodDef() *Method {
	p.expect(DEF, "expected 'def' inside class body")
	name := p.expectIdent("expected method name").Lexeme
	params := p.parseParamList()
	// "self" is bound by Instance.Call, so it is not a formal parameter
	// and does not count toward the method's arity.
	if len(params) > 0 && params[0] == "self" {
		params = params[1:]
	}
	p.expectChar(':', "expected ':' after method signature")
	p.enclosing.Push(name)
	body := p.parseSuite()
	p.enclosing.Pop()
	return &Method{Name: name, FormalParams: params, Body: MethodBody{Body: body}}
}

func (p *Parser) parseTopLevelDef() {
	p.advance() // 'def'
	name := p.expectIdent("expected function name").Lexeme
	params := p.parseParamList()
	p.expectChar(':', "expected ':' after function signature")
	p.enclosing.Push(name)
	body := p.parseSuite()
	p.enclosing.Pop()

	p.funcs[name] = true
	p.module.Methods = append(p.module.Methods, &Method{
		Name:         name,
		FormalParams: params,
		Body:         MethodBody{Body: body},
	})
}

func (p *Parser) parseParamList() []string {
	p.expectChar('(', "expected '(' in parameter list")
	var params []string
	if !p.checkChar(')') {
		params = append(params, p.expectIdent("expected parameter name").Lexeme)
		for p.tryConsumeChar(',') {
			params = append(params, p.expectIdent("expected parameter name").Lexeme)
		}
	}
	p.expectChar(')', "expected ')' to close parameter list")
	return params
}

func (p *Parser) parseIfElse() Node {
	p.advance() // 'if'
	cond := p.parseExpr()
	p.expectChar(':', "expected ':' after if condition")
	thenBranch := p.parseSuite()

	var elseBranch Node
	if p.check(ELSE) {
		p.advance()
		p.expectChar(':', "expected ':' after else")
		elseBranch = p.parseSuite()
	}
	return IfElse{Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) parseSimpleStatement() Node {
	switch {
	case p.check(PRINT):
		return p.parsePrint()
	case p.check(RETURN):
		return p.parseReturn()
	default:
		return p.parseAssignOrExpr()
	}
}

func (p *Parser) parsePrint() Node {
	p.advance() // 'print'
	var args []Node
	if !p.check(NEWLINE) && !p.check(EOF) {
		args = append(args, p.parseExpr())
		for p.tryConsumeChar(',') {
			args = append(args, p.parseExpr())
		}
	}
	return Print{Args: args}
}

func (p *Parser) parseReturn() Node {
	tok := p.advance() // 'return'
	if p.enclosing.Empty() {
		panic(&ParseError{Tok: tok, Msg: "'return' outside a function or method body"})
	}
	if p.check(NEWLINE) || p.check(EOF) {
		return Return{Expr: NoneLiteral{}}
	}
	return Return{Expr: p.parseExpr()}
}

// parseAssignOrExpr handles plain variable assignment (`name = expr`),
// dotted field assignment (`a.b.c = expr`), and bare expression
// statements, deciding which by how far the parsed primary can be
// reinterpreted as an lvalue.
func (p *Parser) parseAssignOrExpr() Node {
	line := p.peek().Line
	expr, path := p.parseExprTrackingPath()

	if p.checkChar('=') {
		p.advance()
		rhs := p.parseExpr()
		if len(path) == 1 {
			return Assignment{Name: path[0], Expr: rhs}
		}
		if len(path) > 1 {
			return FieldAssignment{
				Target: VariableValue{DottedIDs: path[:len(path)-1], Line: line},
				Field:  path[len(path)-1],
				Expr:   rhs,
				Line:   line,
			}
		}
		panic(&ParseError{Tok: p.peek(), Msg: "left-hand side of '=' is not assignable"})
	}
	return expr
}

// --- expressions (precedence climbing) --------------------------------

func (p *Parser) parseExpr() Node {
	expr, _ := p.parseExprTrackingPath()
	return expr
}

// parseExprTrackingPath parses a full expression and, when that
// expression turns out to be a bare dotted-name chain (no calls, no
// operators), also returns its dotted path so the caller can reinterpret
// it as an assignment target.
func (p *Parser) parseExprTrackingPath() (Node, []string) {
	node, path := p.parseOr()
	return node, path
}

func (p *Parser) parseOr() (Node, []string) {
	lhs, path := p.parseAnd()
	for p.check(OR) {
		p.advance()
		rhs, _ := p.parseAnd()
		lhs, path = Or{L: lhs, R: rhs}, nil
	}
	return lhs, path
}

func (p *Parser) parseAnd() (Node, []string) {
	lhs, path := p.parseNot()
	for p.check(AND) {
		p.advance()
		rhs, _ := p.parseNot()
		lhs, path = And{L: lhs, R: rhs}, nil
	}
	return lhs, path
}

func (p *Parser) parseNot() (Node, []string) {
	if p.check(NOT) {
		p.advance()
		operand, _ := p.parseNot()
		return Not{Arg: operand}, nil
	}
	return p.parseComparison()
}

var comparisonCmp = map[TokenType]CompareFunc{
	EQ:         Equal,
	NOT_EQ:     NotEqual,
	LESS_EQ:    LessOrEqual,
	GREATER_EQ: GreaterOrEqual,
}

func (p *Parser) parseComparison() (Node, []string) {
	lhs, path := p.parseAdditive()
	for {
		switch {
		case p.check(EQ), p.check(NOT_EQ), p.check(LESS_EQ), p.check(GREATER_EQ):
			cmp := comparisonCmp[p.peek().Type]
			p.advance()
			rhs, _ := p.parseAdditive()
			lhs, path = Comparison{Cmp: cmp, L: lhs, R: rhs}, nil
		case p.checkChar('<'):
			p.advance()
			rhs, _ := p.parseAdditive()
			lhs, path = Comparison{Cmp: Less, L: lhs, R: rhs}, nil
		case p.checkChar('>'):
			p.advance()
			rhs, _ := p.parseAdditive()
			lhs, path = Comparison{Cmp: Greater, L: lhs, R: rhs}, nil
		default:
			return lhs, path
		}
	}
}

func (p *Parser) parseAdditive() (Node, []string) {
	lhs, path := p.parseMultiplicative()
	for {
		line := p.peek().Line
		switch {
		case p.checkChar('+'):
			p.advance()
			rhs, _ := p.parseMultiplicative()
			lhs, path = Add{L: lhs, R: rhs, Line: line}, nil
		case p.checkChar('-'):
			p.advance()
			rhs, _ := p.parseMultiplicative()
			lhs, path = Sub{L: lhs, R: rhs, Line: line}, nil
		default:
			return lhs, path
		}
	}
}

func (p *Parser) parseMultiplicative() (Node, []string) {
	lhs, path := p.parseUnary()
	for {
		line := p.peek().Line
		switch {
		case p.checkChar('*'):
			p.advance()
			rhs, _ := p.parseUnary()
			lhs, path = Mult{L: lhs, R: rhs, Line: line}, nil
		case p.checkChar('/'):
			p.advance()
			rhs, _ := p.parseUnary()
			lhs, path = Div{L: lhs, R: rhs, Line: line}, nil
		default:
			return lhs, path
		}
	}
}

func (p *Parser) parseUnary() (Node, []string) {
	if p.checkChar('-') {
		line := p.peek().Line
		p.advance()
		operand, _ := p.parseUnary()
		return Sub{L: NumberLiteral{Value: 0}, R: operand, Line: line}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles call, field access, and method-call chains
// following a primary expression: `recv.field`, `recv.method(args)`,
// `Class(args)`, `func(args)`.
func (p *Parser) parsePostfix() (Node, []string) {
	line := p.peek().Line
	primary, path := p.parsePrimary()

	for {
		switch {
		case p.checkChar('.'):
			p.advance()
			name := p.expectIdent("expected name after '.'").Lexeme
			if p.checkChar('(') {
				args := p.parseArgList()
				primary, path = MethodCall{Receiver: primary, Method: name, Args: args, Line: line}, nil
				continue
			}
			if path == nil {
				panic(&ParseError{Tok: p.peek(), Msg: "field access requires a named receiver"})
			}
			path = append(path, name)
			primary = VariableValue{DottedIDs: path, Line: line}
			continue
		case p.checkChar('(') && path != nil && len(path) == 1:
			args := p.parseArgList()
			name := path[0]
			if cls, ok := p.classes[name]; ok {
				primary, path = NewInstanceNode{Class: cls, Args: args, Line: line}, nil
				continue
			}
			if p.funcs[name] {
				primary = MethodCall{
					Receiver: VariableValue{DottedIDs: []string{moduleSingleton}, Line: line},
					Method:   name,
					Args:     args,
					Line:     line,
				}
				path = nil
				continue
			}
			panic(&ParseError{Tok: p.peek(), Msg: "unknown callable " + name})
		default:
			return primary, path
		}
	}
}

func (p *Parser) parseArgList() []Node {
	p.expectChar('(', "expected '(' to start argument list")
	var args []Node
	if !p.checkChar(')') {
		args = append(args, p.parseExpr())
		for p.tryConsumeChar(',') {
			args = append(args, p.parseExpr())
		}
	}
	p.expectChar(')', "expected ')' to close argument list")
	return args
}

func (p *Parser) parsePrimary() (Node, []string) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return NumberLiteral{Value: tok.NumberVal}, nil
	case STRING:
		p.advance()
		return StringLiteral{Value: tok.Lexeme}, nil
	case TRUE:
		p.advance()
		return BoolLiteral{Value: true}, nil
	case FALSE:
		p.advance()
		return BoolLiteral{Value: false}, nil
	case NONE:
		p.advance()
		return NoneLiteral{}, nil
	case IDENT:
		p.advance()
		return VariableValue{DottedIDs: []string{tok.Lexeme}, Line: tok.Line}, []string{tok.Lexeme}
	default:
		if tok.Type == CHAR && tok.CharVal == '(' {
			p.advance()
			expr := p.parseExpr()
			p.expectChar(')', "expected ')' to close grouping")
			return expr, nil
		}
		panic(&ParseError{Tok: tok, Msg: fmt.Sprintf("unexpected token %s", tok.Type)})
	}
}
