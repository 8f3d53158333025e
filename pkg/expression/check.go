package expression

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/pez-cli/pez/pkg/cfgerr"
)

func (e *Evaluator) subject(name string) string {
	return fmt.Sprintf("%s(@%s) %q", ElementExpression, e.opts.ID, name)
}

// checkPatterns enforces that exp has Patterns and that each one holds
// exactly one of literal text or a link.
func (e *Evaluator) checkPatterns(exp *Expression) error {
	if len(exp.Patterns) == 0 {
		return cfgerr.New(e.subject(exp.Name), "does not contain any %ss", ElementPattern)
	}

	for _, p := range exp.Patterns {
		switch {
		case p.Text != "" && p.Link != "":
			return cfgerr.New(e.subject(exp.Name), "%s %s contains both local text %q and a %s attribute %q",
				humanize.Ordinal(p.Position), ElementPattern, p.Text, AttrLink, p.Link)
		case p.Text == "" && p.Link == "":
			return cfgerr.New(e.subject(exp.Name), "%s %s contains neither local text nor a %s attribute",
				humanize.Ordinal(p.Position), ElementPattern, AttrLink)
		}
	}

	return nil
}
