package regex

import "github.com/dlclark/regexp2"

type Pattern struct {
	Expression *regexp2.Regexp
}

// Source returns the text the pattern was compiled from.
func (p *Pattern) Source() string {
	return p.Expression.String()
}
