package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidExpression is returned when an expression cannot be built.
var ErrInvalidExpression = errors.New("invalid filter expression")

// Operator is the relation between a field and its value.
type Operator string

const (
	// Equal matches field=value.
	Equal Operator = "eq"
	// GreaterOrEqual matches field=greaterOrEqual::value.
	GreaterOrEqual Operator = "greaterOrEqual"
	// LessOrEqual matches field=lessOrEqual::value.
	LessOrEqual Operator = "lessOrEqual"
	// InList matches field=inList::v1,v2,...
	InList Operator = "inList"
)

// Expression is a single validated record source filter.
type Expression struct {
	field    string
	operator Operator
	values   []string
}

// Eq builds field=value.
func Eq(field, value string) (Expression, error) {
	return newExpression(field, Equal, value)
}

// Gte builds field=greaterOrEqual::value.
func Gte(field, value string) (Expression, error) {
	return newExpression(field, GreaterOrEqual, value)
}

// Lte builds field=lessOrEqual::value.
func Lte(field, value string) (Expression, error) {
	return newExpression(field, LessOrEqual, value)
}

// SinceTime builds field=greaterOrEqual::<RFC3339 instant>.
func SinceTime(field string, since time.Time) (Expression, error) {
	return Gte(field, since.Format(time.RFC3339))
}

// In builds field=inList::v1,v2,... The list must not be empty.
func In(field string, values ...string) (Expression, error) {
	return newExpression(field, InList, values...)
}

// Parse reads the wire form of an expression, e.g. "department.functionCode=060"
// or "jobCodeLastUpdated=greaterOrEqual::2024-01-01T00:00:00Z".
func Parse(raw string) (Expression, error) {
	field, rest, ok := strings.Cut(raw, "=")
	if !ok {
		return Expression{}, fmt.Errorf("%w: %q has no '='", ErrInvalidExpression, raw)
	}
	op, value, hasRelation := strings.Cut(rest, "::")
	if !hasRelation {
		return Eq(field, rest)
	}
	switch Operator(op) {
	case GreaterOrEqual, LessOrEqual:
		return newExpression(field, Operator(op), value)
	case InList:
		return In(field, strings.Split(value, ",")...)
	default:
		return Expression{}, fmt.Errorf("%w: unknown relation %q", ErrInvalidExpression, op)
	}
}

// ParseAll parses a list of wire expressions.
func ParseAll(raws []string) ([]Expression, error) {
	exprs := make([]Expression, 0, len(raws))
	for _, raw := range raws {
		expr, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(raw string) Expression {
	expr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return expr
}

func newExpression(field string, op Operator, values ...string) (Expression, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Expression{}, fmt.Errorf("%w: empty field", ErrInvalidExpression)
	}
	if strings.ContainsAny(field, "=&") {
		return Expression{}, fmt.Errorf("%w: field %q contains a reserved character", ErrInvalidExpression, field)
	}
	if len(values) == 0 {
		return Expression{}, fmt.Errorf("%w: %s on %s needs at least one value", ErrInvalidExpression, op, field)
	}
	for _, v := range values {
		if v == "" {
			return Expression{}, fmt.Errorf("%w: empty value for %s", ErrInvalidExpression, field)
		}
		if op == InList && strings.Contains(v, ",") {
			return Expression{}, fmt.Errorf("%w: list value %q contains ','", ErrInvalidExpression, v)
		}
	}
	if op != InList && len(values) != 1 {
		return Expression{}, fmt.Errorf("%w: %s takes exactly one value", ErrInvalidExpression, op)
	}

	return Expression{field: field, operator: op, values: append([]string(nil), values...)}, nil
}

// Field returns the filtered field name.
func (e Expression) Field() string { return e.field }

// Operator returns the relation.
func (e Expression) Operator() Operator { return e.operator }

// Values returns a copy of the operand values.
func (e Expression) Values() []string { return append([]string(nil), e.values...) }

// WireValue renders the right-hand side as the record source expects it.
func (e Expression) WireValue() string {
	switch e.operator {
	case Equal:
		return e.values[0]
	case InList:
		return string(InList) + "::" + strings.Join(e.values, ",")
	default:
		return string(e.operator) + "::" + e.values[0]
	}
}

// String renders field=<wire value>.
func (e Expression) String() string {
	return e.field + "=" + e.WireValue()
}

// Encode serializes expressions into a query string, preserving order.
func Encode(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, url.QueryEscape(e.field)+"="+url.QueryEscape(e.WireValue()))
	}
	return strings.Join(parts, "&")
}

// With returns a new slice holding base followed by extra.
// base is never modified, so shared scope filters can be extended safely.
func With(base []Expression, extra ...Expression) []Expression {
	out := make([]Expression, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
