package selection

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// SelectFirst returns the first node matched by query, or nil.
func SelectFirst(query string, contextNode *xmlquery.Node) (*xmlquery.Node, error) {
	node, err := xmlquery.Query(contextNode, query)
	if err != nil {
		return nil, fmt.Errorf("select %q: %w", query, err)
	}
	return node, nil
}

func SelectAll(query string, contextNode *xmlquery.Node) ([]*xmlquery.Node, error) {
	nodes, err := xmlquery.QueryAll(contextNode, query)
	if err != nil {
		return nil, fmt.Errorf("select %q: %w", query, err)
	}
	return nodes, nil
}

// SelectElementNodeByID finds the first descendant elementName of parentNode
// whose id attribute equals name.
func SelectElementNodeByID(elementName, id, name string, parentNode *xmlquery.Node) (*xmlquery.Node, error) {
	return SelectFirst(fmt.Sprintf(".//%s[@%s=%s]", elementName, id, Literal(name)), parentNode)
}

// CollectLocalAttributes returns the attributes declared directly on node.
func CollectLocalAttributes(node *xmlquery.Node) map[string]string {
	bag := make(map[string]string, len(node.Attr))
	for _, attr := range node.Attr {
		bag[attr.Name.Local] = attr.Value
	}
	return bag
}

// Literal quotes s as an XPath string literal. XPath 1.0 has no escape
// sequences, so values holding both quote kinds are built with concat().
func Literal(s string) string {
	switch {
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	case !strings.Contains(s, `'`):
		return `'` + s + `'`
	}

	parts := strings.Split(s, `"`)
	args := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			args = append(args, `'"'`)
		}
		if part != "" {
			args = append(args, `"`+part+`"`)
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}

// Describe renders node as a short opening tag for error messages.
func Describe(node *xmlquery.Node) string {
	if node == nil {
		return "<nil>"
	}

	var sb strings.Builder
	sb.WriteString("<" + node.Data)
	for _, attr := range node.Attr {
		fmt.Fprintf(&sb, " %s=%q", attr.Name.Local, attr.Value)
	}
	sb.WriteString(">")
	return sb.String()
}
