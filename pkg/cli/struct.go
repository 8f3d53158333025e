package cli

import "github.com/pez-cli/pez/pkg/xmltree"

const (
	ElementCli            = "Cli"
	ElementArguments      = "Arguments"
	ElementArgument       = "Argument"
	ElementArgumentRef    = "ArgumentRef"
	ElementArgumentGroups = "ArgumentGroups"
	ElementCommands       = "Commands"
	ElementCommand        = "Command"

	AttrAbstract = "abstract"
	AttrDescribe = "describe"
	AttrAlias    = "alias"
	AttrOptional = "optional"
	AttrType     = "type"
	AttrSource   = "source"
)

type Options struct {
	ID       string
	Recurse  string
	Discards []string
}

type Argument struct {
	Name       string
	Alias      string
	Type       string
	Describe   string
	Optional   bool
	Attributes map[string]string
}

// Arguments are the argument definitions available to every command, in
// source order.
type Arguments struct {
	Names  []string
	ByName map[string]*Argument
}

// ArgumentGroup relates arguments of a command, e.g. Conflicts.
type ArgumentGroup struct {
	Kind  string
	Names []string
}

type Command struct {
	Name     string
	Source   string
	Describe string
	Abstract bool
	Inherits []string

	// ArgumentRefs are the argument names referenced by the command and its
	// ancestors, in order and without repeats.
	ArgumentRefs   []string
	ArgumentGroups []ArgumentGroup

	// Arguments is populated by Normalise.
	Arguments map[string]*Argument

	Element *xmltree.Element
}

func (a *Arguments) Get(name string) (*Argument, bool) {
	arg, ok := a.ByName[name]
	return arg, ok
}
