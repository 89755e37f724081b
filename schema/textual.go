package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// This file implements the minimal textual type-expression DSL of spec.md
// §4.A: `Ident` or `Ident(arg, ...)`, where an arg is an ident, a quoted
// string, or a nested call. `Some(x)`/`None` denote option arguments.
//
// Nested kinds (List, LargeList, Struct, Map, Dictionary, Union,
// FixedSizeList) print/parse only their scalar parameters here; their
// Children/Child/Entry/IndexType/ValueType are supplied out of band from the
// Field's `children` slot (see schema.go), matching spec.md §4.A's
// `children` requirement for those types.

type token struct {
	kind byte // 'i' ident, 's' string, '(' ')' ',' or 0 for EOF
	text string
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(' || c == ')' || c == ',':
			toks = append(toks, token{kind: c})
			i++
		case c == '"':
			j := i + 1
			var sb strings.Builder
			closed := false
			for j < len(s) {
				if s[j] == '\\' && j+1 < len(s) {
					sb.WriteByte(s[j+1])
					j += 2
					continue
				}
				if s[j] == '"' {
					closed = true
					j++
					break
				}
				sb.WriteByte(s[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated string in %q", ErrInvalidType, s)
			}
			toks = append(toks, token{kind: 's', text: sb.String()})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			toks = append(toks, token{kind: 'i', text: s[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidType, c, s)
		}
	}
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || c == '+' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentPart(c byte) bool { return isIdentStart(c) }

// expr is the parsed AST node: either a string leaf or an ident(args...) call.
type expr struct {
	isString bool
	str      string
	ident    string
	args     []expr
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) parseExpr() (expr, error) {
	t := p.next()
	switch t.kind {
	case 'i':
		e := expr{ident: t.text}
		if p.peek().kind == '(' {
			p.next()
			for {
				if p.peek().kind == ')' {
					p.next()
					break
				}
				if len(e.args) > 0 {
					if p.peek().kind != ',' {
						return expr{}, fmt.Errorf("%w: expected ',' or ')'", ErrInvalidType)
					}
					p.next()
				}
				arg, err := p.parseArg()
				if err != nil {
					return expr{}, err
				}
				e.args = append(e.args, arg)
			}
		}
		return e, nil
	case 's':
		return expr{isString: true, str: t.text}, nil
	default:
		return expr{}, fmt.Errorf("%w: expected identifier or string", ErrInvalidType)
	}
}

func (p *parser) parseArg() (expr, error) { return p.parseExpr() }

// parseTypeExpr parses a full textual type expression and ensures no
// trailing tokens remain.
func parseTypeExpr(s string) (expr, error) {
	toks, err := lex(strings.TrimSpace(s))
	if err != nil {
		return expr{}, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return expr{}, err
	}
	if p.pos != len(p.toks) {
		return expr{}, fmt.Errorf("%w: trailing input in %q", ErrInvalidType, s)
	}
	return e, nil
}

func (e expr) asInt32() (int32, error) {
	if e.isString {
		return 0, fmt.Errorf("%w: expected integer argument", ErrInvalidType)
	}
	n, err := strconv.ParseInt(e.ident, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidType, err)
	}
	return int32(n), nil
}

// asOptionString parses a `None` or `Some("...")` argument.
func (e expr) asOptionString() (*string, error) {
	if e.isString {
		return nil, fmt.Errorf("%w: expected None or Some(...)", ErrInvalidType)
	}
	switch e.ident {
	case "None":
		if len(e.args) != 0 {
			return nil, fmt.Errorf("%w: None takes no arguments", ErrInvalidType)
		}
		return nil, nil
	case "Some":
		if len(e.args) != 1 {
			return nil, fmt.Errorf("%w: Some takes exactly one argument", ErrInvalidType)
		}
		if !e.args[0].isString {
			return nil, fmt.Errorf("%w: Some(...) expects a string", ErrInvalidType)
		}
		v := e.args[0].str
		return &v, nil
	default:
		return nil, fmt.Errorf("%w: expected None or Some(...)", ErrInvalidType)
	}
}

func (e expr) asTimeUnit() (TimeUnit, error) {
	if e.isString {
		return 0, fmt.Errorf("%w: expected a time unit identifier", ErrInvalidType)
	}
	u, ok := parseTimeUnit(e.ident)
	if !ok {
		return 0, fmt.Errorf("%w: unknown time unit %q", ErrInvalidType, e.ident)
	}
	return u, nil
}

// ParseDataType parses the short textual form of a DataType (spec.md §4.A).
// For nested kinds the returned DataType carries no children: callers must
// attach Child/Children/Entry/IndexType/ValueType out of band.
func ParseDataType(s string) (DataType, error) {
	e, err := parseTypeExpr(s)
	if err != nil {
		return DataType{}, err
	}
	if e.isString {
		return DataType{}, fmt.Errorf("%w: a data type cannot be a bare string", ErrInvalidType)
	}
	k, ok := identToKind[e.ident]
	if !ok {
		return DataType{}, fmt.Errorf("%w: unknown type identifier %q", ErrInvalidType, e.ident)
	}
	switch k {
	case Null, Boolean, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64,
		Float16, Float32, Float64, Utf8, LargeUtf8, Utf8View, Binary, LargeBinary, BinaryView,
		Date32, Date64, List, LargeList, Struct, Map, Dictionary, Union:
		if len(e.args) != 0 {
			return DataType{}, fmt.Errorf("%w: %s takes no arguments", ErrInvalidType, e.ident)
		}
		return scalar(k), nil
	case FixedSizeBinary:
		if len(e.args) != 1 {
			return DataType{}, fmt.Errorf("%w: FixedSizeBinary takes exactly one argument", ErrInvalidType)
		}
		n, err := e.args[0].asInt32()
		if err != nil {
			return DataType{}, err
		}
		return FixedSizeBinaryOf(n), nil
	case FixedSizeList:
		if len(e.args) != 1 {
			return DataType{}, fmt.Errorf("%w: FixedSizeList takes exactly one argument", ErrInvalidType)
		}
		n, err := e.args[0].asInt32()
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: FixedSizeList, FixedSize: n}, nil
	case Time32:
		if len(e.args) != 1 {
			return DataType{}, fmt.Errorf("%w: Time32 takes exactly one argument", ErrInvalidType)
		}
		u, err := e.args[0].asTimeUnit()
		if err != nil {
			return DataType{}, err
		}
		return Time32Of(u), nil
	case Time64:
		if len(e.args) != 1 {
			return DataType{}, fmt.Errorf("%w: Time64 takes exactly one argument", ErrInvalidType)
		}
		u, err := e.args[0].asTimeUnit()
		if err != nil {
			return DataType{}, err
		}
		return Time64Of(u), nil
	case Duration:
		if len(e.args) != 1 {
			return DataType{}, fmt.Errorf("%w: Duration takes exactly one argument", ErrInvalidType)
		}
		u, err := e.args[0].asTimeUnit()
		if err != nil {
			return DataType{}, err
		}
		return DurationOf(u), nil
	case Timestamp:
		if len(e.args) != 2 {
			return DataType{}, fmt.Errorf("%w: Timestamp takes exactly two arguments", ErrInvalidType)
		}
		u, err := e.args[0].asTimeUnit()
		if err != nil {
			return DataType{}, err
		}
		tz, err := e.args[1].asOptionString()
		if err != nil {
			return DataType{}, err
		}
		return TimestampOf(u, tz), nil
	case Decimal128:
		if len(e.args) != 2 {
			return DataType{}, fmt.Errorf("%w: Decimal128 takes exactly two arguments", ErrInvalidType)
		}
		p, err := e.args[0].asInt32()
		if err != nil {
			return DataType{}, err
		}
		sc, err := e.args[1].asInt32()
		if err != nil {
			return DataType{}, err
		}
		return Decimal128Of(uint8(p), int8(sc)), nil
	default:
		return DataType{}, fmt.Errorf("%w: unhandled kind %s", ErrInvalidType, k)
	}
}

// String renders the canonical short textual form of d (spec.md §4.A). For
// nested kinds this omits children -- use the Schema JSON shape to carry them.
func (d DataType) String() string {
	switch d.Kind {
	case FixedSizeBinary:
		return fmt.Sprintf("FixedSizeBinary(%d)", d.FixedSize)
	case FixedSizeList:
		return fmt.Sprintf("FixedSizeList(%d)", d.FixedSize)
	case Time32:
		return fmt.Sprintf("Time32(%s)", d.Unit)
	case Time64:
		return fmt.Sprintf("Time64(%s)", d.Unit)
	case Duration:
		return fmt.Sprintf("Duration(%s)", d.Unit)
	case Timestamp:
		if d.Timezone == nil {
			return fmt.Sprintf("Timestamp(%s, None)", d.Unit)
		}
		return fmt.Sprintf("Timestamp(%s, Some(%q))", d.Unit, *d.Timezone)
	case Decimal128:
		return fmt.Sprintf("Decimal128(%d, %d)", d.Precision, d.Scale)
	default:
		return kindNames[d.Kind]
	}
}
