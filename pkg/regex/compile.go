package regex

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

var (
	optionNames = map[string]regexp2.RegexOptions{
		"none":                    regexp2.None,
		"ignorecase":              regexp2.IgnoreCase,
		"multiline":               regexp2.Multiline,
		"explicitcapture":         regexp2.ExplicitCapture,
		"compiled":                regexp2.Compiled,
		"singleline":              regexp2.Singleline,
		"ignorepatternwhitespace": regexp2.IgnorePatternWhitespace,
		"righttoleft":             regexp2.RightToLeft,
		"debug":                   regexp2.Debug,
		"ecmascript":              regexp2.ECMAScript,
		"re2":                     regexp2.RE2,
		"unicode":                 regexp2.Unicode,
	}

	// Matches the opening of a named capture group, (?<name>, unless the paren
	// is escaped by an odd number of backslashes.
	namedGroupPattern = regexp2.MustCompile(`(?<=(?:^|[^\\])(?:\\\\)*)\(\?<([A-Za-z_]\w*)>`, regexp2.None)
)

type Options struct {
	Flags        regexp2.RegexOptions
	MatchTimeout time.Duration
}

// ParseOptions converts option names such as "IgnoreCase" into regexp2 flags.
func ParseOptions(names []string) (regexp2.RegexOptions, error) {
	flags := regexp2.None
	for _, name := range names {
		flag, ok := optionNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return regexp2.None, fmt.Errorf("unknown regex option: %q", name)
		}
		flags |= flag
	}
	return flags, nil
}

func Compile(pattern string, opts Options) (*Pattern, error) {
	re, err := regexp2.Compile(pattern, opts.Flags)
	if err != nil {
		return nil, err
	}

	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}

	return &Pattern{
		Expression: re,
	}, nil
}

// NamedGroups scans source text for named capture groups and returns their
// names in order of first occurrence. Repeated names are reported once.
func NamedGroups(source string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	m, err := namedGroupPattern.FindStringMatch(source)
	for ; m != nil && err == nil; m, err = namedGroupPattern.FindNextMatch(m) {
		name := m.GroupByNumber(1).String()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("scan named groups: %w", err)
	}

	return names, nil
}

// DuplicateGroups returns every named capture group declared more than once in
// source, in order of first repetition.
func DuplicateGroups(source string) ([]string, error) {
	var dups []string
	counts := make(map[string]int)

	m, err := namedGroupPattern.FindStringMatch(source)
	for ; m != nil && err == nil; m, err = namedGroupPattern.FindNextMatch(m) {
		name := m.GroupByNumber(1).String()
		counts[name]++
		if counts[name] == 2 {
			dups = append(dups, name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("scan named groups: %w", err)
	}

	return dups, nil
}
