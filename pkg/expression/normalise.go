package expression

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/pez-cli/pez/pkg/cfgerr"
	"github.com/pez-cli/pez/pkg/xmltree"
)

// Normalise flattens the built groups into one map from expression name to
// definition. A name defined twice, in one group or across groups, is fatal.
func (b *Builder) Normalise(groups map[string]*xmltree.Element) (Map, error) {
	id := b.OptionsFor(ElementExpression).ID
	if id == "" {
		return nil, cfgerr.New(ElementExpression, "no id attribute configured")
	}

	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	result := make(Map)
	defined := strset.New()

	for _, groupName := range groupNames {
		local := strset.New()
		var expressions []*Expression

		for _, el := range groups[groupName].ChildrenNamed(ElementExpression) {
			name, ok := el.Attr(id)
			if !ok || name == "" {
				return nil, cfgerr.New(fmt.Sprintf("%s %q", ElementExpressions, groupName),
					"found %s without %s attribute", ElementExpression, id)
			}
			if local.Has(name) {
				return nil, cfgerr.New(fmt.Sprintf("%s %q", ElementExpressions, groupName),
					"%s(@%s) %q already defined", ElementExpression, id, name)
			}
			local.Add(name)
			expressions = append(expressions, newExpression(groupName, name, el))
		}

		if already := strset.Intersection(defined, local); !already.IsEmpty() {
			names := already.List()
			sort.Strings(names)
			return nil, cfgerr.New(fmt.Sprintf("%s %q", ElementExpressions, groupName),
				"these expressions have already been defined: %q", strings.Join(names, ", "))
		}

		for _, exp := range expressions {
			result[exp.Name] = exp
		}
		defined.Merge(local)
	}

	return result, nil
}

func newExpression(group, name string, el *xmltree.Element) *Expression {
	exp := &Expression{
		Name:    name,
		Group:   group,
		Element: el,
	}
	exp.Eg, exp.HasEg = el.Attr(AttrEg)

	for i, child := range el.ChildrenNamed(ElementPattern) {
		p := Pattern{
			Text:     child.Text,
			Link:     child.Attributes[AttrLink],
			Position: i + 1,
		}
		p.Eg, p.HasEg = child.Attr(AttrEg)
		exp.Patterns = append(exp.Patterns, p)
	}

	return exp
}
