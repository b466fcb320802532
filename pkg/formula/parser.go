package formula

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
)

type parser struct {
	s     scanner.Scanner
	pool  *IDPool
	tok   rune   // Last token read
	token string // Text of the last token read
}

// Parse parses a formula from r, binding its variables to pool (the DefaultPool if nil).
// Operators, from lowest to highest priority:
//
//   - "==" (equivalence) and "!=" (exclusive or), left associative,
//   - ">" or "->" (implication), right associative,
//   - "|" (disjunction),
//   - "&" (conjunction),
//   - "~" or "!" (negation).
//
// Parentheses group subformulas. "True" and "False" are the constants; "x3" or "3" is the variable numbered 3,
// "x_a", "a" and "\"a\"" are all the variable named "a", the quoted form allowing any name.
// A numbered variable whose identifier the pool already gave to a named or auxiliary variable is an error.
// The output of Formula.String is accepted back.
func Parse(r io.Reader, pool *IDPool) (Formula, error) {
	if pool == nil {
		pool = DefaultPool
	}
	p := &parser{pool: pool}
	p.s.Init(r)
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings
	p.s.Error = func(*scanner.Scanner, string) {} // Invalid characters are reported by the parser itself
	p.scan()

	f, err := p.parseEquiv()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
	return f, nil
}

func ParseString(text string, pool *IDPool) (Formula, error) {
	return Parse(strings.NewReader(text), pool)
}

func (p *parser) scan() {
	p.tok = p.s.Scan()
	p.token = p.s.TokenText()
}

func (p *parser) expect(r rune) error {
	if p.tok != r {
		return p.unexpected()
	}
	p.scan()
	return nil
}

func (p *parser) unexpected() error {
	if p.tok == scanner.EOF {
		return fmt.Errorf("at position %s, expected expression, found EOF", p.s.Position)
	}
	return fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
}

func (p *parser) parseEquiv() (Formula, error) {
	f, err := p.parseImplies()
	if err != nil {
		return nil, err
	}

	for p.tok == '=' || p.tok == '!' {
		inequality := p.tok == '!'
		p.scan()
		if err := p.expect('='); err != nil {
			return nil, err
		}
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		if inequality {
			f = Xor(f, right)
		} else {
			f = Equivalence(f, right)
		}
	}
	return f, nil
}

func (p *parser) parseImplies() (Formula, error) {
	f, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	switch p.tok {
	case '-':
		p.scan()
		if err := p.expect('>'); err != nil {
			return nil, err
		}
	case '>':
		p.scan()
	default:
		return f, nil
	}

	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return Implication(f, right), nil
}

func (p *parser) parseOr() (Formula, error) {
	f, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.tok != '|' {
		return f, nil
	}

	disjunction := Disjunction(f)
	for p.tok == '|' {
		p.scan()
		f, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		disjunction.Children = append(disjunction.Children, f)
	}
	return disjunction, nil
}

func (p *parser) parseAnd() (Formula, error) {
	f, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if p.tok != '&' {
		return f, nil
	}

	conjunction := Conjunction(f)
	for p.tok == '&' {
		p.scan()
		f, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		conjunction.Children = append(conjunction.Children, f)
	}
	return conjunction, nil
}

func (p *parser) parseNot() (Formula, error) {
	if p.tok == '~' || p.tok == '!' {
		p.scan()
		f, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Negate(f), nil
	}
	return p.parseBasic()
}

func (p *parser) parseBasic() (Formula, error) {
	switch p.tok {
	case '(':
		p.scan()
		f, err := p.parseEquiv()
		if err != nil {
			return nil, err
		}
		if p.tok != ')' {
			if p.tok == scanner.EOF {
				return nil, fmt.Errorf("expected closing parenthesis, found EOF at %s", p.s.Position)
			}
			return nil, fmt.Errorf("expected closing parenthesis, found %q at %s", p.token, p.s.Position)
		}
		p.scan()
		return f, nil

	case scanner.Ident:
		f, err := p.variable(p.token)
		if err != nil {
			return nil, err
		}
		p.scan()
		return f, nil

	case scanner.Int:
		number, err := strconv.Atoi(p.token)
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("invalid variable number %q at %s", p.token, p.s.Position)
		}
		f, err := p.numbered(number)
		if err != nil {
			return nil, err
		}
		p.scan()
		return f, nil

	case scanner.String:
		name, err := strconv.Unquote(p.token)
		if err != nil {
			return nil, fmt.Errorf("invalid variable name %s at %s", p.token, p.s.Position)
		}
		p.scan()
		return p.pool.Var(name), nil
	}

	return nil, p.unexpected()
}

func (p *parser) variable(ident string) (Formula, error) {
	switch ident {
	case "True":
		return True, nil
	case "False":
		return False, nil
	}

	if name, ok := strings.CutPrefix(ident, "x_"); ok && name != "" {
		return p.pool.Var(name), nil
	}
	if digits, ok := strings.CutPrefix(ident, "x"); ok {
		if number, err := strconv.Atoi(digits); err == nil && number > 0 {
			return p.numbered(number)
		}
	}
	return p.pool.Var(ident), nil
}

// numbered refuses identifiers the pool already gave to a named or auxiliary variable
func (p *parser) numbered(number int) (Formula, error) {
	if err := p.pool.Claim(number); err != nil {
		return nil, fmt.Errorf("variable %q at %s: %w", p.token, p.s.Position, err)
	}
	return &Var{id: number}, nil
}
