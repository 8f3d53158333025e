package expression

import (
	"github.com/pez-cli/pez/pkg/regex"
	"github.com/pez-cli/pez/pkg/xmltree"
)

const (
	ElementExpressions = "Expressions"
	ElementExpression  = "Expression"
	ElementPattern     = "Pattern"

	AttrEg   = "eg"
	AttrLink = "link"
)

type Options struct {
	// ID is the identifying attribute of Expression and Expressions elements.
	ID    string
	Regex regex.Options
}

// Pattern is one positional fragment of an Expression: literal regex text or
// a link to another Expression. Shape is checked when the owner is evaluated.
type Pattern struct {
	Text     string
	Link     string
	Eg       string
	HasEg    bool
	Position int
}

type Expression struct {
	Name     string
	Group    string
	Eg       string
	HasEg    bool
	Patterns []Pattern
	Element  *xmltree.Element
}

// Map is the flat expression name to definition mapping produced by Normalise.
type Map map[string]*Expression

// Evaluated is an Expression augmented with its composed regular expression,
// the named capture groups it declares and its example text.
type Evaluated struct {
	*Expression
	Pattern     *regex.Pattern
	NamedGroups []string
	Example     string
}

func (e *Evaluated) Source() string {
	return e.Pattern.Source()
}

// Links returns the names of the expressions e links to directly, in pattern
// order.
func (e *Expression) Links() []string {
	var links []string
	for _, p := range e.Patterns {
		if p.Link != "" {
			links = append(links, p.Link)
		}
	}
	return links
}
