// Package formula checks the user formulas stored in a case: a list of
// "name = expression;" statements evaluated by the solver at run time.
package formula

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

// Symbol is a name a formula may read or must assign.
type Symbol struct {
	Name        string
	Description string
}

// Spec describes what a formula editor offers for one kind of formula.
type Spec struct {
	Default  string
	Required []Symbol
	Symbols  []Symbol
	Examples string
}

// Statement is one parsed assignment.
type Statement struct {
	Name       string
	Expression string
	Vars       []string
}

// Error collects every problem found in a formula.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "invalid formula: " + strings.Join(e.Problems, "; ")
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"min": func(args ...interface{}) (interface{}, error) {
		return reduce(math.Min, args)
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return reduce(math.Max, args)
	},
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("argument %v is not a number", args[0])
		}
		return f(x), nil
	}
}

func reduce(f func(a, b float64) float64, args []interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least 1 argument")
	}
	acc, ok := args[0].(float64)
	if !ok {
		return nil, fmt.Errorf("argument %v is not a number", args[0])
	}
	for _, a := range args[1:] {
		x, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %v is not a number", a)
		}
		acc = f(acc, x)
	}
	return acc, nil
}

// Parse splits text into statements. It only checks the syntax.
func Parse(text string) (stmts []Statement, err error) {
	var problems []string
	for _, raw := range strings.Split(text, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		eq := strings.Index(raw, "=")
		if eq < 0 {
			problems = append(problems, fmt.Sprintf("%q is not an assignment", raw))
			continue
		}
		st := Statement{
			Name:       strings.TrimSpace(raw[:eq]),
			Expression: strings.TrimSpace(raw[eq+1:]),
		}
		if !isIdentifier(st.Name) {
			problems = append(problems, fmt.Sprintf("%q is not a valid name", st.Name))
			continue
		}
		if st.Expression == "" {
			problems = append(problems, fmt.Sprintf("missing expression for %s", st.Name))
			continue
		}
		expr, perr := govaluate.NewEvaluableExpressionWithFunctions(st.Expression, functions)
		if perr != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", st.Name, perr))
			continue
		}
		st.Vars = expr.Vars()
		stmts = append(stmts, st)
	}
	if len(problems) != 0 {
		return stmts, &Error{Problems: problems}
	}
	return stmts, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Check parses text and verifies it against spec: every required name is
// assigned and expressions only read declared symbols or names assigned
// by an earlier statement.
func Check(text string, spec Spec) error {
	stmts, err := Parse(text)
	var problems []string
	if err != nil {
		problems = append(problems, err.(*Error).Problems...)
	}
	known := make(map[string]bool)
	for _, s := range spec.Symbols {
		known[s.Name] = true
	}
	assigned := make(map[string]bool)
	for _, st := range stmts {
		for _, v := range st.Vars {
			if !known[v] && !assigned[v] {
				problems = append(problems, fmt.Sprintf("%s: unknown symbol %s", st.Name, v))
			}
		}
		assigned[st.Name] = true
	}
	for _, r := range spec.Required {
		if !assigned[r.Name] {
			problems = append(problems, fmt.Sprintf("required %s (%s) is not assigned", r.Name, r.Description))
		}
	}
	if len(problems) != 0 {
		return &Error{Problems: problems}
	}
	return nil
}
