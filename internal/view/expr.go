// Package view implements the in-memory record store, its derived current
// view, and the filter/sort expression language applied to it.
package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FilterOp is a comparison operator in a filter expression.
type FilterOp string

// Filter operators, in the textual form they take in expressions.
const (
	OpEqual          FilterOp = "="
	OpNotEqual       FilterOp = "!="
	OpGreater        FilterOp = ">"
	OpGreaterOrEqual FilterOp = ">="
	OpLess           FilterOp = "<"
	OpLessOrEqual    FilterOp = "<="
)

// Field names a filterable or sortable task attribute.
type Field string

// Field identifiers. Sort supports the subset without Assignee/Description.
const (
	FieldID          Field = "id"
	FieldTitle       Field = "title"
	FieldStatus      Field = "status"
	FieldPriority    Field = "priority"
	FieldCreatedDate Field = "created_date"
	FieldDueDate     Field = "due_date"
	FieldAssignee    Field = "assignee"
	FieldDescription Field = "description"
)

// SortDirection orders a sorted view.
type SortDirection int

// Sort directions. Ascending is the default everywhere.
const (
	Ascending SortDirection = iota
	Descending
)

// FilterSpec is a parsed single-predicate filter, e.g. "priority>=3".
type FilterSpec struct {
	Field Field
	Op    FilterOp
	Value string
}

// SortSpec is a parsed sort instruction, e.g. "priority desc".
type SortSpec struct {
	Field     Field
	Direction SortDirection
}

// Expression parse errors.
var (
	ErrEmptyExpression     = errors.New("empty expression")
	ErrNoOperator          = errors.New("no valid operator found")
	ErrUnknownField        = errors.New("unknown field")
	ErrUnsupportedOperator = errors.New("operator not supported for field")
	ErrValueNotNumeric     = errors.New("value must be numeric")
)

// operatorOrder is the search priority for operators. Two-character operators
// come first so "priority>=3" is not mis-split as ">" followed by "=3".
var operatorOrder = []FilterOp{OpGreaterOrEqual, OpLessOrEqual, OpNotEqual, OpEqual, OpGreater, OpLess}

// filterFields is the filter field vocabulary (exact lowercase match).
var filterFields = []Field{
	FieldID, FieldTitle, FieldStatus, FieldPriority,
	FieldCreatedDate, FieldDueDate, FieldAssignee, FieldDescription,
}

// sortFields is the sort field vocabulary.
var sortFields = []Field{
	FieldID, FieldTitle, FieldStatus, FieldPriority, FieldCreatedDate, FieldDueDate,
}

// ParseFilter parses a filter expression like "status=todo" or "priority>=3"
// into a FilterSpec.
//
// The first matching operator in priority order (>=, <=, !=, =, >, <) splits
// the expression; field and value are trimmed of surrounding spaces/tabs, so
// "status = todo" parses the same as "status=todo".
//
// Unsupported field/operator combinations are rejected here rather than left
// to evaluate as no-ops: relational operators require a numeric field (id,
// priority) or a date field (created_date, due_date); text fields accept only
// = and !=. Numeric fields additionally require an integer value.
func ParseFilter(expr string) (FilterSpec, error) {
	if expr == "" {
		return FilterSpec{}, ErrEmptyExpression
	}

	op, pos, found := findOperator(expr)
	if !found {
		return FilterSpec{}, fmt.Errorf("%w in %q", ErrNoOperator, expr)
	}

	fieldStr := strings.Trim(expr[:pos], " \t")
	valueStr := strings.Trim(expr[pos+len(op):], " \t")

	field, ok := lookupField(fieldStr, filterFields)
	if !ok {
		return FilterSpec{}, fmt.Errorf("%w: %q", ErrUnknownField, fieldStr)
	}

	if err := checkFieldOp(field, op, valueStr); err != nil {
		return FilterSpec{}, err
	}

	return FilterSpec{Field: field, Op: op, Value: valueStr}, nil
}

// ParseSort parses a sort expression like "priority desc" into a SortSpec.
//
// The field is everything before the first space and must match the sort
// vocabulary exactly. The direction token accepts desc/descending and
// asc/ascending; any other token falls back to ascending and is reported in
// the returned warning rather than failing the parse.
func ParseSort(expr string) (SortSpec, string, error) {
	if expr == "" {
		return SortSpec{}, "", ErrEmptyExpression
	}

	fieldStr, directionStr, hasDirection := strings.Cut(expr, " ")

	field, ok := lookupField(fieldStr, sortFields)
	if !ok {
		return SortSpec{}, "", fmt.Errorf("%w: %q", ErrUnknownField, fieldStr)
	}

	spec := SortSpec{Field: field, Direction: Ascending}

	if !hasDirection {
		return spec, "", nil
	}

	var warning string

	switch directionStr {
	case "desc", "descending":
		spec.Direction = Descending
	case "asc", "ascending":
		// already ascending
	default:
		warning = fmt.Sprintf("unknown direction %q, using ascending", directionStr)
	}

	return spec, warning, nil
}

// findOperator locates the operator splitting a filter expression. It tries
// each operator in priority order and returns the first one present, with the
// byte offset of its first occurrence.
func findOperator(expr string) (FilterOp, int, bool) {
	for _, op := range operatorOrder {
		if pos := strings.Index(expr, string(op)); pos >= 0 {
			return op, pos, true
		}
	}

	return "", 0, false
}

func lookupField(name string, vocabulary []Field) (Field, bool) {
	for _, field := range vocabulary {
		if name == string(field) {
			return field, true
		}
	}

	return "", false
}

// checkFieldOp validates the field/operator/value combination at parse time.
func checkFieldOp(field Field, op FilterOp, value string) error {
	switch field {
	case FieldID, FieldPriority:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %s %s %q", ErrValueNotNumeric, field, op, value)
		}

		return nil
	case FieldCreatedDate, FieldDueDate:
		// ISO dates order lexically, so every operator is meaningful.
		return nil
	default:
		if op == OpEqual || op == OpNotEqual {
			return nil
		}

		return fmt.Errorf("%w: %s %s", ErrUnsupportedOperator, field, op)
	}
}
