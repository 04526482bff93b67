// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"strings"

	"mayabundle/pkg/pyident"
)

// ErrMalformedExpression is the sentinel error wrapped by
// MalformedExpressionError.
var ErrMalformedExpression = errors.New("malformed launch expression")

type (
	// Expression is a parsed launch expression. ModulePath is the dotted
	// prefix up to and excluding the class name: the module that must be
	// imported to construct the class.
	Expression struct {
		// ModulePath is the class's containing module path, e.g.
		// "maya_tools.utilities.boxy.boxy_tool".
		ModulePath pyident.DottedPath
		// ClassName is the tool class, e.g. "BoxyTool".
		ClassName pyident.Identifier
		// MethodName is the method invoked on the fresh instance, e.g. "show".
		MethodName pyident.Identifier
		// Raw is the original input string.
		Raw string
	}

	// MalformedExpressionError is returned when a launch expression does not
	// parse into module, class, and method components.
	MalformedExpressionError struct {
		Raw    string
		Reason string
	}
)

// Error implements the error interface for MalformedExpressionError.
func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed launch expression %q: %s", e.Raw, e.Reason)
}

// Unwrap returns ErrMalformedExpression for errors.Is() compatibility.
func (e *MalformedExpressionError) Unwrap() error { return ErrMalformedExpression }

// String reassembles the canonical form of the expression.
func (e Expression) String() string {
	return fmt.Sprintf("%s.%s().%s()", e.ModulePath, e.ClassName, e.MethodName)
}

// ParseExpression parses a launch expression of the form
// "<dotted.module.path>.<ClassName>().<methodName>()". The constructor and
// method calls must both have empty argument lists; the call-site parentheses
// are what mark where the identifier chain ends and the invocation begins.
func ParseExpression(raw string) (Expression, error) {
	malformed := func(reason string) (Expression, error) {
		return Expression{}, &MalformedExpressionError{Raw: raw, Reason: reason}
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return malformed("expression is empty")
	}

	// Peel the trailing method call.
	if !strings.HasSuffix(s, "()") {
		return malformed("expected trailing method call '()'")
	}
	s = strings.TrimSuffix(s, "()")

	dot := strings.LastIndex(s, ".")
	if dot < 0 {
		return malformed("expected '<Class>().<method>()', found a single call")
	}
	method := pyident.Identifier(s[dot+1:])
	if ok, _ := method.IsValid(); !ok {
		return malformed(fmt.Sprintf("method name %q is not a valid identifier", method))
	}
	s = s[:dot]

	// Peel the constructor call.
	if !strings.HasSuffix(s, "()") {
		return malformed("expected constructor call '()' before the method")
	}
	s = strings.TrimSuffix(s, "()")

	dot = strings.LastIndex(s, ".")
	if dot < 0 {
		return malformed("expected a module path before the class name")
	}
	class := pyident.Identifier(s[dot+1:])
	if ok, _ := class.IsValid(); !ok {
		return malformed(fmt.Sprintf("class name %q is not a valid identifier", class))
	}

	// Segment validation also rejects stray parentheses in the prefix, i.e.
	// extra call sites or constructor arguments.
	modulePath := pyident.DottedPath(s[:dot])
	if ok, errs := modulePath.IsValid(); !ok {
		return malformed(errs[0].Error())
	}

	return Expression{
		ModulePath: modulePath,
		ClassName:  class,
		MethodName: method,
		Raw:        raw,
	}, nil
}
