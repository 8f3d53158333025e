package query

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pez-cli/pez/pkg/expression"
	"github.com/pez-cli/pez/pkg/xmltree"
)

func evaluated(t *testing.T) map[string]*expression.Evaluated {
	t.Helper()
	doc, err := xmltree.Parse(strings.NewReader(`<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="date-expressions">
    <Expression name="day" eg="2"><Pattern><![CDATA[(?<d>\d{1,2})]]></Pattern></Expression>
    <Expression name="year" eg="2016"><Pattern><![CDATA[(?<year>20[0-2]\d)]]></Pattern></Expression>
    <Expression name="date" eg="2 2099">
      <Pattern link="day"/><Pattern><![CDATA[\s]]></Pattern><Pattern link="year"/>
    </Expression>
  </Expressions>
  <Expressions name="text-expressions">
    <Expression name="word" eg="hello"><Pattern><![CDATA[\w+]]></Pattern></Expression>
  </Expressions>
</Application>`))
	require.NoError(t, err)

	opts := expression.Options{ID: "name"}
	m, err := expression.NewBuilder(opts).BuildExpressions(xmlquery.FindOne(doc, "/Application"))
	require.NoError(t, err)
	all, err := expression.EvaluateAll(m, opts)
	require.NoError(t, err)
	return all
}

func TestFilter(t *testing.T) {
	all := evaluated(t)

	tests := []struct {
		name     string
		queries  []string
		expected []string
	}{
		{name: "no_queries", expected: []string{"date", "day", "word", "year"}},
		{name: "by_group", queries: []string{`Group == "text-expressions"`}, expected: []string{"word"}},
		{name: "has_group", queries: []string{`HasGroup("year")`}, expected: []string{"date", "year"}},
		{name: "with_captures", queries: []string{`len(NamedGroups) > 0`, `len(Links) == 0`}, expected: []string{"day", "year"}},
		{name: "links_to", queries: []string{`LinksTo("day")`}, expected: []string{"date"}},
		{name: "example_does_not_match", queries: []string{`!Matches(Example)`}, expected: []string{"date"}},
		{name: "source_contains", queries: []string{`Source contains "\\w"`}, expected: []string{"word"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var queries []*CompiledQuery
			for _, text := range tt.queries {
				q, err := Compile(text)
				require.NoError(t, err)
				queries = append(queries, q)
			}

			names, err := Filter(queries, all)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "syntax", text: `Name ==`},
		{name: "not_bool", text: `Name`},
		{name: "unknown_field", text: `Colour == "red"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.text)
			assert.Error(t, err)
		})
	}
}
