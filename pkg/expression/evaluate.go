package expression

import (
	"slices"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/pez-cli/pez/pkg/cfgerr"
	"github.com/pez-cli/pez/pkg/logger"
	"github.com/pez-cli/pez/pkg/regex"
)

// Evaluator composes expressions from one Map. Results are cached per name
// for the lifetime of the Evaluator, so a fresh Evaluator is needed for every
// independently built Map.
type Evaluator struct {
	expressions Map
	opts        Options
	cache       map[string]*Evaluated
	log         *logrus.Entry
}

func NewEvaluator(expressions Map, opts Options) *Evaluator {
	return &Evaluator{
		expressions: expressions,
		opts:        opts,
		cache:       make(map[string]*Evaluated),
		log:         logger.GetLogger("evaluate"),
	}
}

// Evaluate resolves a single expression with a fresh cache.
func Evaluate(name string, expressions Map, opts Options) (*Evaluated, error) {
	return NewEvaluator(expressions, opts).Evaluate(name)
}

// EvaluateAll resolves every expression in the map in name order, sharing one
// cache across the pass.
func EvaluateAll(expressions Map, opts Options) (map[string]*Evaluated, error) {
	names := make([]string, 0, len(expressions))
	for name := range expressions {
		names = append(names, name)
	}
	sort.Strings(names)

	e := NewEvaluator(expressions, opts)
	result := make(map[string]*Evaluated, len(names))
	for _, name := range names {
		ev, err := e.Evaluate(name)
		if err != nil {
			return nil, err
		}
		result[name] = ev
	}

	return result, nil
}

func (e *Evaluator) Evaluate(name string) (*Evaluated, error) {
	return e.evaluate(name, nil)
}

// evaluate composes name; previouslySeen is the chain of expressions whose
// links led here and is never shared between sibling links.
func (e *Evaluator) evaluate(name string, previouslySeen []string) (*Evaluated, error) {
	if name == "" {
		return nil, cfgerr.New(ElementExpression, "missing expression name")
	}

	if cached, ok := e.cache[name]; ok {
		e.log.Tracef("Cache hit: %s", name)
		return cached, nil
	}

	exp, ok := e.expressions[name]
	if !ok {
		return nil, cfgerr.New(e.subject(name), "not found")
	}

	if err := e.checkPatterns(exp); err != nil {
		return nil, err
	}

	seen := append(slices.Clone(previouslySeen), name)

	var source strings.Builder
	for _, p := range exp.Patterns {
		if p.Text != "" {
			source.WriteString(p.Text)
			continue
		}

		if slices.Contains(seen, p.Link) {
			return nil, cfgerr.New(e.subject(name), "circular reference detected via %s %s %s=%q (%s)",
				humanize.Ordinal(p.Position), ElementPattern, AttrLink, p.Link,
				strings.Join(append(seen, p.Link), " -> "))
		}

		e.log.Tracef("Resolving link %s -> %s", name, p.Link)
		linked, err := e.evaluate(p.Link, seen)
		if err != nil {
			return nil, cfgerr.Wrap(err, e.subject(name), "%s %s %s=%q",
				humanize.Ordinal(p.Position), ElementPattern, AttrLink, p.Link)
		}
		source.WriteString(linked.Source())
	}

	text := source.String()
	pattern, err := regex.Compile(text, e.opts.Regex)
	if err != nil {
		return nil, cfgerr.Wrap(err, e.subject(name), "invalid regular expression %q", text)
	}

	namedGroups, err := regex.NamedGroups(text)
	if err != nil {
		return nil, cfgerr.Wrap(err, e.subject(name), "invalid regular expression %q", text)
	}
	dups, err := regex.DuplicateGroups(text)
	if err != nil {
		return nil, cfgerr.Wrap(err, e.subject(name), "invalid regular expression %q", text)
	}
	if len(dups) > 0 {
		return nil, cfgerr.New(e.subject(name), "named capture groups declared more than once: %s in %q",
			strings.Join(dups, ", "), text)
	}

	evaluated := &Evaluated{
		Expression:  exp,
		Pattern:     pattern,
		NamedGroups: namedGroups,
		Example:     example(exp),
	}
	e.cache[name] = evaluated

	e.log.Debugf("Evaluated %s: %s", name, text)
	return evaluated, nil
}

// example returns the Expression's own eg when declared, otherwise the eg of
// each Pattern that declares one, concatenated in order.
func example(exp *Expression) string {
	if exp.HasEg {
		return exp.Eg
	}

	var sb strings.Builder
	for _, p := range exp.Patterns {
		if p.HasEg {
			sb.WriteString(p.Eg)
		}
	}
	return sb.String()
}
