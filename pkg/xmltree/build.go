package xmltree

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"

	"github.com/pez-cli/pez/pkg/cfgerr"
	"github.com/pez-cli/pez/pkg/selection"
)

func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse xml")
	}
	return doc, nil
}

type builder struct {
	getOptions OptionsFunc
}

// Build converts node, a child of parent, into an Element using the build
// policy returned by getOptions for each element kind. A nil getOptions
// builds every kind with the zero Options.
func Build(node, parent *xmlquery.Node, getOptions OptionsFunc) (*Element, error) {
	if getOptions == nil {
		getOptions = func(string) Options { return Options{} }
	}

	b := &builder{getOptions: getOptions}
	return b.build(node, parent, nil)
}

func (b *builder) build(node, parent *xmlquery.Node, chain []string) (*Element, error) {
	if node == nil || node.Type != xmlquery.ElementNode {
		return nil, fmt.Errorf("build element: not an element node")
	}

	opts := b.getOptions(node.Data)
	el := &Element{
		Name:       node.Data,
		Attributes: make(map[string]string, len(node.Attr)),
	}

	var children []*Element
	var local []*Element

	inherited, err := b.inherit(node, parent, opts, chain)
	if err != nil {
		return nil, err
	}
	for _, base := range inherited {
		for k, v := range base.Attributes {
			if !slices.Contains(opts.Discards, k) {
				el.Attributes[k] = v
			}
		}
		if base.Text != "" {
			el.Text = base.Text
		}
		children = append(children, base.Children.All()...)
	}

	for k, v := range selection.CollectLocalAttributes(node) {
		el.Attributes[k] = v
	}

	var text strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode:
			// indentation between elements
			if strings.TrimSpace(child.Data) == "" {
				continue
			}
			text.WriteString(child.Data)
		case xmlquery.CharDataNode:
			text.WriteString(child.Data)
		case xmlquery.ElementNode:
			built, err := b.build(child, node, nil)
			if err != nil {
				return nil, err
			}
			local = append(local, built)
		}
	}
	if t := text.String(); t != "" {
		el.Text = t
	}

	if len(children)+len(local) == 0 {
		return el, nil
	}

	if opts.Descendants != nil && opts.Descendants.By == IndexBy {
		el.Children, err = index(el.Name, opts, children, local)
		if err != nil {
			return nil, err
		}
		return el, nil
	}

	el.Children = &Children{List: append(children, local...)}
	return el, nil
}

// inherit builds every element named by node's recurse attribute. Inherited
// elements are siblings of the same kind under parent.
func (b *builder) inherit(node, parent *xmlquery.Node, opts Options, chain []string) ([]*Element, error) {
	if opts.Recurse == "" {
		return nil, nil
	}
	value := node.SelectAttr(opts.Recurse)
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	subject := node.Data
	if opts.ID == "" {
		return nil, cfgerr.New(subject, "%q requires an id option to resolve inheritance", opts.Recurse)
	}
	id := node.SelectAttr(opts.ID)
	if id == "" {
		return nil, cfgerr.New(subject, "element with %s=%q has no %s attribute", opts.Recurse, value, opts.ID)
	}
	if parent == nil {
		parent = node.Parent
	}

	chain = append(slices.Clone(chain), id)

	var inherited []*Element
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if slices.Contains(chain, name) {
			return nil, cfgerr.New(fmt.Sprintf("%s(@%s) %q", subject, opts.ID, id),
				"circular inheritance via %q (%s)", name, strings.Join(append(chain, name), " -> "))
		}

		baseNode, err := selection.SelectElementNodeByID(node.Data, opts.ID, name, parent)
		if err != nil {
			return nil, err
		}
		if baseNode == nil {
			return nil, cfgerr.New(fmt.Sprintf("%s(@%s) %q", subject, opts.ID, id),
				"inherits from unknown %s %q", subject, name)
		}

		base, err := b.build(baseNode, parent, chain)
		if err != nil {
			return nil, err
		}
		inherited = append(inherited, base)
	}

	return inherited, nil
}

// index keys children by opts.ID. Local children replace inherited ones with
// the same key; collisions between local children are errors when requested.
func index(subject string, opts Options, inherited, local []*Element) (*Children, error) {
	c := &Children{Index: make(map[string]*Element)}

	add := func(child *Element, isLocal bool, seen map[string]bool) error {
		key, ok := child.Attributes[opts.ID]
		if !ok || key == "" {
			if opts.Descendants.ThrowIfMissing {
				return cfgerr.New(subject, "child %s has no %s attribute", child.Name, opts.ID)
			}
			return nil
		}
		if isLocal && seen[key] && opts.Descendants.ThrowIfCollision {
			return cfgerr.New(subject, "%s(@%s) %q already defined", child.Name, opts.ID, key)
		}
		if _, exists := c.Index[key]; !exists {
			c.Keys = append(c.Keys, key)
		}
		c.Index[key] = child
		seen[key] = true
		return nil
	}

	inheritedSeen := make(map[string]bool)
	for _, child := range inherited {
		if err := add(child, false, inheritedSeen); err != nil {
			return nil, err
		}
	}
	localSeen := make(map[string]bool)
	for _, child := range local {
		if err := add(child, true, localSeen); err != nil {
			return nil, err
		}
	}

	return c, nil
}
