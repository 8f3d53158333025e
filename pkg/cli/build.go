package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
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
		log:  logger.GetLogger("cli"),
	}
}

func (b *Builder) OptionsFor(el string) xmltree.Options {
	switch el {
	case ElementArguments:
		return xmltree.Options{
			ID: b.opts.ID,
			Descendants: &xmltree.Descendants{
				By:               xmltree.IndexBy,
				ThrowIfCollision: true,
				ThrowIfMissing:   true,
			},
		}
	case ElementArgument:
		return xmltree.Options{ID: b.opts.ID}
	case ElementCommand:
		return xmltree.Options{ID: b.opts.ID, Recurse: b.opts.Recurse, Discards: b.opts.Discards}
	}
	return xmltree.Options{}
}

// commandOptions builds Arguments inside a Command as plain lists of
// ArgumentRefs.
func (b *Builder) commandOptions(el string) xmltree.Options {
	if el == ElementArguments {
		return xmltree.Options{}
	}
	return b.OptionsFor(el)
}

// BuildArguments builds the Argument definitions under argumentsNode, keyed by
// name. Duplicate and unnamed definitions are fatal.
func (b *Builder) BuildArguments(argumentsNode *xmlquery.Node) (*Arguments, error) {
	el, err := xmltree.Build(argumentsNode, argumentsNode.Parent, b.OptionsFor)
	if err != nil {
		return nil, err
	}

	args := &Arguments{ByName: make(map[string]*Argument)}
	for _, child := range el.Children.All() {
		if child.Name != ElementArgument {
			continue
		}
		arg, err := newArgument(b.opts.ID, child.Attributes)
		if err != nil {
			return nil, err
		}
		args.Names = append(args.Names, arg.Name)
		args.ByName[arg.Name] = arg
	}

	b.log.Debugf("Built %d argument definitions", len(args.Names))
	return args, nil
}

// BuildCommands builds every concrete (non abstract) Command under
// commandsNode, resolving inheritance.
func (b *Builder) BuildCommands(commandsNode *xmlquery.Node) ([]*Command, error) {
	nodes, err := selection.SelectAll(fmt.Sprintf(".//%s[not(@%s)]", ElementCommand, AttrAbstract), commandsNode)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, cfgerr.New("", "no %ss found", ElementCommand)
	}

	commands := make([]*Command, 0, len(nodes))
	for _, node := range nodes {
		el, err := xmltree.Build(node, commandsNode, b.commandOptions)
		if err != nil {
			return nil, err
		}
		command, err := b.postBuild(el)
		if err != nil {
			return nil, err
		}
		commands = append(commands, command)
	}

	return commands, nil
}

func (b *Builder) BuildNamedCommand(commandName string, commandsNode *xmlquery.Node) (*Command, error) {
	node, err := selection.SelectElementNodeByID(ElementCommand, b.opts.ID, commandName, commandsNode)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, cfgerr.New("", "failed to find %s with %s: %q", ElementCommand, b.opts.ID, commandName)
	}

	el, err := xmltree.Build(node, commandsNode, b.commandOptions)
	if err != nil {
		return nil, err
	}
	return b.postBuild(el)
}

func (b *Builder) postBuild(el *xmltree.Element) (*Command, error) {
	name := el.Attributes[b.opts.ID]
	subject := fmt.Sprintf("%s(@%s) %q", ElementCommand, b.opts.ID, name)

	_, abstract := el.Attr(AttrAbstract)
	describe, hasDescribe := el.Attr(AttrDescribe)
	if abstract && hasDescribe {
		return nil, cfgerr.New(subject, "abstract commands can't have a %s attribute", AttrDescribe)
	}

	command := &Command{
		Name:     name,
		Source:   el.Attributes[AttrSource],
		Describe: describe,
		Abstract: abstract,
		Element:  el,
	}

	if b.opts.Recurse != "" {
		for _, base := range strings.Split(el.Attributes[b.opts.Recurse], ",") {
			if base = strings.TrimSpace(base); base != "" {
				command.Inherits = append(command.Inherits, base)
			}
		}
	}

	for _, args := range el.ChildrenNamed(ElementArguments) {
		for _, ref := range args.ChildrenNamed(ElementArgumentRef) {
			refName := ref.Attributes[b.opts.ID]
			if refName == "" {
				return nil, cfgerr.New(subject, "%s without %s attribute", ElementArgumentRef, b.opts.ID)
			}
			if !slices.Contains(command.ArgumentRefs, refName) {
				command.ArgumentRefs = append(command.ArgumentRefs, refName)
			}
		}
	}

	for _, groups := range el.ChildrenNamed(ElementArgumentGroups) {
		for _, group := range groups.Children.All() {
			g := ArgumentGroup{Kind: group.Name}
			for _, ref := range group.ChildrenNamed(ElementArgumentRef) {
				g.Names = append(g.Names, ref.Attributes[b.opts.ID])
			}
			command.ArgumentGroups = append(command.ArgumentGroups, g)
		}
	}

	return command, nil
}

// Normalise resolves the command's ArgumentRefs and ArgumentGroup members
// against the argument definitions. Definitions win over attributes declared
// on the reference.
func (b *Builder) Normalise(command *Command, definitions *Arguments) error {
	subject := fmt.Sprintf("%s(@%s) %q", ElementCommand, b.opts.ID, command.Name)
	refs := argumentRefAttributes(command.Element, b.opts.ID)

	command.Arguments = make(map[string]*Argument, len(command.ArgumentRefs))
	for _, name := range command.ArgumentRefs {
		def, ok := definitions.Get(name)
		if !ok {
			return cfgerr.New(subject, "no definition available for argument: %q", name)
		}

		merged := make(map[string]string, len(def.Attributes))
		for k, v := range refs[name] {
			merged[k] = v
		}
		for k, v := range def.Attributes {
			merged[k] = v
		}

		arg, err := newArgument(b.opts.ID, merged)
		if err != nil {
			return err
		}
		command.Arguments[name] = arg
	}

	for _, group := range command.ArgumentGroups {
		for _, name := range group.Names {
			if _, ok := definitions.Get(name); !ok {
				return cfgerr.New(subject, "%s refers to undefined argument: %q", group.Kind, name)
			}
		}
	}

	return nil
}

func argumentRefAttributes(el *xmltree.Element, id string) map[string]map[string]string {
	refs := make(map[string]map[string]string)
	if el == nil {
		return refs
	}
	for _, args := range el.ChildrenNamed(ElementArguments) {
		for _, ref := range args.ChildrenNamed(ElementArgumentRef) {
			refs[ref.Attributes[id]] = ref.Attributes
		}
	}
	return refs
}

func newArgument(id string, attrs map[string]string) (*Argument, error) {
	arg := &Argument{
		Name:       attrs[id],
		Alias:      attrs[AttrAlias],
		Type:       attrs[AttrType],
		Describe:   attrs[AttrDescribe],
		Attributes: attrs,
	}

	if v, ok := attrs[AttrOptional]; ok {
		optional, err := strconv.ParseBool(v)
		if err != nil {
			return nil, cfgerr.Wrap(err, fmt.Sprintf("%s(@%s) %q", ElementArgument, id, arg.Name),
				"invalid %s attribute %q", AttrOptional, v)
		}
		arg.Optional = optional
	}

	return arg, nil
}
