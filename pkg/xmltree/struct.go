package xmltree

// IndexBy is the only supported Descendants.By value: children are keyed by
// the parent's ID attribute.
const IndexBy = "index"

// Element is the typed form of an XML element. A leaf carries Text only; a
// node carries Children, which are either listed in source order or indexed
// by identifier.
type Element struct {
	Name       string
	Attributes map[string]string
	Text       string
	Children   *Children
}

type Children struct {
	List  []*Element
	Index map[string]*Element
	// Keys holds the Index keys in source order.
	Keys []string
}

type Descendants struct {
	By               string
	ThrowIfCollision bool
	ThrowIfMissing   bool
}

// Options is the per element kind build policy.
type Options struct {
	// ID names the attribute identifying elements of this kind.
	ID string
	// Recurse names the attribute listing elements to inherit from.
	Recurse string
	// Discards are attributes never passed down through inheritance.
	Discards    []string
	Descendants *Descendants
}

type OptionsFunc func(elementName string) Options

func (e *Element) IsLeaf() bool {
	return e.Children == nil
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attributes[name]
	return v, ok
}

// All returns the children in source order regardless of how they are held.
func (c *Children) All() []*Element {
	if c == nil {
		return nil
	}
	if c.Index == nil {
		return c.List
	}

	all := make([]*Element, 0, len(c.Keys))
	for _, key := range c.Keys {
		all = append(all, c.Index[key])
	}
	return all
}

func (c *Children) Len() int {
	if c == nil {
		return 0
	}
	if c.Index != nil {
		return len(c.Keys)
	}
	return len(c.List)
}

// ChildrenNamed returns the children of kind name, preserving order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, child := range e.Children.All() {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}
