package query

import (
	"fmt"
	"slices"
	"sort"

	"github.com/expr-lang/expr"

	"github.com/pez-cli/pez/pkg/expression"
	"github.com/pez-cli/pez/pkg/regex"
)

type evalContext struct {
	Name        string
	Group       string
	Source      string
	Example     string
	NamedGroups []string
	Links       []string

	evaluated *expression.Evaluated
}

func newEvalContext(ev *expression.Evaluated) *evalContext {
	return &evalContext{
		Name:        ev.Name,
		Group:       ev.Group,
		Source:      ev.Source(),
		Example:     ev.Example,
		NamedGroups: ev.NamedGroups,
		Links:       ev.Links(),
		evaluated:   ev,
	}
}

func (e *evalContext) HasGroup(name string) bool {
	return slices.Contains(e.NamedGroups, name)
}

func (e *evalContext) LinksTo(name string) bool {
	return slices.Contains(e.Links, name)
}

// Matches reports whether the expression matches text.
func (e *evalContext) Matches(text string) bool {
	if e.evaluated == nil {
		return false
	}
	match, err := regex.Check(text, e.evaluated.Pattern)
	return err == nil && match
}

func Compile(text string) (*CompiledQuery, error) {
	program, err := expr.Compile(text, expr.Env(&evalContext{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query: %q: %w", text, err)
	}

	return &CompiledQuery{Program: program, Text: text}, nil
}

func Check(q *CompiledQuery, ev *expression.Evaluated) (bool, error) {
	result, err := expr.Run(q.Program, newEvalContext(ev))
	if err != nil {
		return false, fmt.Errorf("check query: %w", err)
	}

	match, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("type assert query result: %T", result)
	}
	return match, nil
}

// Filter returns the names of the evaluated expressions satisfying every
// query, sorted. No queries selects everything.
func Filter(queries []*CompiledQuery, evaluated map[string]*expression.Evaluated) ([]string, error) {
	var names []string

	for name, ev := range evaluated {
		selected := true
		for _, q := range queries {
			match, err := Check(q, ev)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if !match {
				selected = false
				break
			}
		}
		if selected {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}
