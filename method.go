// method.go: Invocable method schema and parameter coercion
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"strconv"
	"strings"
)

// ParamType identifies the declared type of a method parameter. Textual
// values supplied for the primitive-like types are parsed before invocation;
// every other type is passed through unchanged and the caller must already
// supply a compatible value (for example raw []byte for ParamBytes).
type ParamType string

const (
	ParamString ParamType = "string"
	ParamInt    ParamType = "int"
	ParamInt64  ParamType = "int64"
	ParamFloat  ParamType = "float64"
	ParamBool   ParamType = "bool"
	ParamBytes  ParamType = "[]byte"
	ParamAny    ParamType = "any"
)

// Param is a single named, typed formal parameter of an invocable method.
type Param struct {
	Name string    `json:"name"`
	Type ParamType `json:"type"`
}

// MethodFunc is the adapter closure behind an invocable method. The gateway
// calls it with arguments ordered exactly as the Params declaration.
type MethodFunc func(args []any) (any, error)

// Method describes one invocable method of a plugin: its name, ordered named
// parameters, declared result type and the adapter that executes it. Several
// methods may share a name (overloads); the gateway selects among them by
// parameter-name set. When more than one overload matches the same name set,
// the first declared wins.
type Method struct {
	Name   string
	Params []Param
	Result string
	Call   MethodFunc
}

// Signature renders the method as "result name(type name, ...)", the format
// listed by Manager.MethodSignatures and embedded in mismatch errors.
func (m Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.Result)
	b.WriteString(" ")
	b.WriteString(m.Name)
	b.WriteString("(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(p.Type))
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	b.WriteString(")")
	return b.String()
}

// matchesParams reports whether the supplied parameter map covers exactly the
// formal parameters of the method: equal count and every formal name present.
// Order is irrelevant.
func (m Method) matchesParams(params map[string]any) bool {
	if len(m.Params) != len(params) {
		return false
	}
	for _, p := range m.Params {
		if _, ok := params[p.Name]; !ok {
			return false
		}
	}
	return true
}

// coerceParam converts a supplied value to the parameter's declared type.
// Only textual values targeting the primitive-like types are parsed; any
// other combination passes through unchanged.
func coerceParam(p Param, value any) (any, error) {
	text, isText := value.(string)
	if !isText {
		return value, nil
	}

	switch p.Type {
	case ParamInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, NewCoercionError(p.Name, string(p.Type), value)
		}
		return n, nil
	case ParamInt64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, NewCoercionError(p.Name, string(p.Type), value)
		}
		return n, nil
	case ParamFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, NewCoercionError(p.Name, string(p.Type), value)
		}
		return f, nil
	case ParamBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, NewCoercionError(p.Name, string(p.Type), value)
		}
		return v, nil
	default:
		return value, nil
	}
}

// orderArguments maps the named parameter values onto the method's positional
// argument list, coercing each value on the way.
func orderArguments(m Method, params map[string]any) ([]any, error) {
	args := make([]any, len(m.Params))
	for i, p := range m.Params {
		coerced, err := coerceParam(p, params[p.Name])
		if err != nil {
			return nil, err
		}
		args[i] = coerced
	}
	return args, nil
}

// signaturesNamed collects the signatures of every method with the given
// name, used to enumerate candidates in parameter-mismatch errors.
func signaturesNamed(methods []Method, name string) []string {
	var sigs []string
	for _, m := range methods {
		if m.Name == name {
			sigs = append(sigs, m.Signature())
		}
	}
	return sigs
}
