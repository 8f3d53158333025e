package expression

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/pez-cli/pez/pkg/cfgerr"
	"github.com/pez-cli/pez/pkg/logger"
	"github.com/pez-cli/pez/pkg/selection"
	"github.com/pez-cli/pez/pkg/xmltree"
)

type Builder struct {
	opts Options
	log  *logrus.Entry
}

func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts: opts,
		log:  logger.GetLogger("expressions"),
	}
}

// OptionsFor is the element build policy: Expression and Expressions are
// identified by the configured id, everything else is built with defaults.
func (b *Builder) OptionsFor(el string) xmltree.Options {
	switch el {
	case ElementExpression, ElementExpressions:
		return xmltree.Options{ID: b.opts.ID}
	}
	return xmltree.Options{}
}

// BuildExpressions builds every Expression of every Expressions group under
// root into a single map keyed by expression name.
func (b *Builder) BuildExpressions(root *xmlquery.Node) (Map, error) {
	groups, err := b.BuildGroups(root)
	if err != nil {
		return nil, err
	}

	return b.Normalise(groups)
}

// BuildGroups builds each Expressions group under root, keyed by group name.
func (b *Builder) BuildGroups(root *xmlquery.Node) (map[string]*xmltree.Element, error) {
	id := b.OptionsFor(ElementExpressions).ID
	if id == "" {
		return nil, cfgerr.New(ElementExpressions, "no id attribute configured")
	}

	if err := b.ValidateIDs(root, ElementExpression, ElementExpressions); err != nil {
		return nil, err
	}

	groupNodes, err := selection.SelectAll(fmt.Sprintf(".//%s[@%s]", ElementExpressions, id), root)
	if err != nil {
		return nil, err
	}
	if len(groupNodes) == 0 {
		return nil, cfgerr.New("", "no <%s>s found", ElementExpressions)
	}

	seen := strset.New()
	groups := make(map[string]*xmltree.Element, len(groupNodes))

	for _, groupNode := range groupNodes {
		groupName := groupNode.SelectAttr(id)
		if seen.Has(groupName) {
			return nil, cfgerr.New(ElementExpressions, "%s with %s=%q already defined", ElementExpressions, id, groupName)
		}
		seen.Add(groupName)

		group, err := b.BuildExpressionGroup(root, groupName)
		if err != nil {
			return nil, err
		}
		groups[groupName] = group

		b.log.Tracef("Built %s %q (%d children)", ElementExpressions, groupName, group.Children.Len())
	}

	b.log.Debugf("Built %d expression groups", len(groups))
	return groups, nil
}

// BuildExpressionGroup builds the Expressions group under parentNode whose id
// attribute is groupName.
func (b *Builder) BuildExpressionGroup(parentNode *xmlquery.Node, groupName string) (*xmltree.Element, error) {
	id := b.OptionsFor(ElementExpressions).ID
	if id == "" {
		return nil, cfgerr.New(ElementExpressions, "no id attribute configured")
	}

	groupNode, err := selection.SelectElementNodeByID(ElementExpressions, id, groupName, parentNode)
	if err != nil {
		return nil, err
	}
	if groupNode == nil {
		return nil, cfgerr.New("", "no <%s %s=%q> found", ElementExpressions, id, groupName)
	}

	return xmltree.Build(groupNode, groupNode.Parent, b.OptionsFor)
}

// ValidateIDs checks that every element of the given kinds under root carries
// a non-empty id attribute.
func (b *Builder) ValidateIDs(root *xmlquery.Node, elementNames ...string) error {
	for _, elementName := range elementNames {
		id := b.OptionsFor(elementName).ID
		if id == "" {
			return cfgerr.New(elementName, "no id attribute configured")
		}

		missing, err := selection.SelectFirst(fmt.Sprintf(".//%s[not(@%s)]", elementName, id), root)
		if err != nil {
			return err
		}
		if missing != nil {
			return cfgerr.New(elementName, "found at least 1 %s without %s attribute, first: %s",
				elementName, id, selection.Describe(missing))
		}

		empty, err := selection.SelectFirst(fmt.Sprintf(`.//%s[@%s=""]`, elementName, id), root)
		if err != nil {
			return err
		}
		if empty != nil {
			return cfgerr.New(elementName, "found at least 1 %s with empty %s attribute, first: %s",
				elementName, id, selection.Describe(empty))
		}
	}

	return nil
}
