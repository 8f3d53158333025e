package regex

import (
	"testing"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		options  []string
		expected regexp2.RegexOptions
		wantErr  bool
	}{
		{name: "none", options: nil, expected: regexp2.None},
		{name: "single", options: []string{"IgnoreCase"}, expected: regexp2.IgnoreCase},
		{name: "combined_case_insensitive", options: []string{"multiline", " Singleline "}, expected: regexp2.Multiline | regexp2.Singleline},
		{name: "unknown", options: []string{"Greedy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseOptions(tt.options)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flags)
		})
	}
}

func TestCompile(t *testing.T) {
	p, err := Compile(`(?<year>20[0-2]\d)`, Options{MatchTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, `(?<year>20[0-2]\d)`, p.Source())
	assert.Equal(t, time.Second, p.Expression.MatchTimeout)

	_, err = Compile(`(?<year>20`, Options{})
	assert.Error(t, err)
}

func TestNamedGroups(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []string
	}{
		{name: "no_groups", source: `THIS IS A REG EX`, expected: nil},
		{name: "single", source: `(?<year>20[0-2]\d)`, expected: []string{"year"}},
		{
			name:     "first_occurrence_order",
			source:   `(?<year>20[0-2]\d)(?<mm>[0|1]\d)(?<dd>[1-3]|[0-3]\d?)`,
			expected: []string{"year", "mm", "dd"},
		},
		{name: "lookbehind_ignored", source: `(?<=a)(?<!b)(?<c>x)`, expected: []string{"c"}},
		{name: "repeated_reported_once", source: `(?<a>x)|(?<a>y)`, expected: []string{"a"}},
		{name: "escaped_paren_ignored", source: `\(?<x>\)?<x>`, expected: nil},
		{name: "escaped_backslash_before_group", source: `\\(?<x>a)`, expected: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := NamedGroups(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestDuplicateGroups(t *testing.T) {
	dups, err := DuplicateGroups(`(?<a>x)(?<b>y)(?<a>z)(?<a>w)(?<b>v)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dups)

	dups, err = DuplicateGroups(`(?<a>x)(?<b>y)`)
	require.NoError(t, err)
	assert.Empty(t, dups)

	dups, err = DuplicateGroups(`\(?<x>\)(?<x>y)`)
	require.NoError(t, err)
	assert.Empty(t, dups)
}

func TestCheck(t *testing.T) {
	digits, err := Compile(`^\d+$`, Options{})
	require.NoError(t, err)

	match, err := Check("123", digits)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = Check("abc", digits)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestMatch(t *testing.T) {
	p, err := Compile(`(?<d>[1-3]|[0-3]\d?)\s(?<mmm>jan|feb|jun)\s(?<year>20[0-2]\d)(?<suffix>!)?`, Options{})
	require.NoError(t, err)

	captures, ok, err := Match("on 2 jun 2016", p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"d": "2", "mmm": "jun", "year": "2016"}, captures)

	_, ok, err = Match("nothing here", p)
	require.NoError(t, err)
	assert.False(t, ok)
}
