package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pez-cli/pez/pkg/cli"
	"github.com/pez-cli/pez/pkg/config"
	"github.com/pez-cli/pez/pkg/descriptor"
	"github.com/pez-cli/pez/pkg/expression"
	"github.com/pez-cli/pez/pkg/regex"
)

func loadDescriptor(log *logrus.Entry, path string) *descriptor.Descriptor {
	d, err := descriptor.Load(path, config.Config)
	if err != nil {
		log.WithError(err).Fatalf("Failed loading descriptor: %q", path)
	}
	return d
}

// exampleMismatches returns the expressions whose example text is not matched
// by their own composed regular expression, sorted by name.
func exampleMismatches(evaluated map[string]*expression.Evaluated) ([]string, error) {
	var names []string
	for name, ev := range evaluated {
		if ev.Example == "" {
			continue
		}
		match, err := regex.Check(ev.Example, ev.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "check example of %q", name)
		}
		if !match {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

func writeExpression(w io.Writer, ev *expression.Evaluated) {
	fmt.Fprintf(w, "%s\n", ev.Name)
	fmt.Fprintf(w, "  group:   %s\n", ev.Group)
	fmt.Fprintf(w, "  regex:   %s\n", ev.Source())
	if len(ev.NamedGroups) > 0 {
		fmt.Fprintf(w, "  groups:  %s\n", strings.Join(ev.NamedGroups, ", "))
	}
	if ev.Example != "" {
		fmt.Fprintf(w, "  eg:      %s\n", ev.Example)
	}
}

func writeCommand(w io.Writer, c *cli.Command) {
	fmt.Fprintf(w, "%s", c.Name)
	if c.Describe != "" {
		fmt.Fprintf(w, " - %s", c.Describe)
	}
	fmt.Fprintln(w)

	if len(c.Inherits) > 0 {
		fmt.Fprintf(w, "  inherits: %s\n", strings.Join(c.Inherits, ", "))
	}
	for _, name := range c.ArgumentRefs {
		arg := c.Arguments[name]
		if arg == nil {
			continue
		}
		line := "  --" + arg.Name
		if arg.Alias != "" {
			line += ", -" + arg.Alias
		}
		if arg.Optional {
			line += " (optional)"
		}
		if arg.Describe != "" {
			line += "  " + arg.Describe
		}
		fmt.Fprintln(w, line)
	}
	for _, group := range c.ArgumentGroups {
		fmt.Fprintf(w, "  %s: %s\n", group.Kind, strings.Join(group.Names, ", "))
	}
}

func writeCaptures(w io.Writer, captures map[string]string) {
	names := make([]string, 0, len(captures))
	for name := range captures {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "%s=%q\n", name, captures[name])
	}
}
