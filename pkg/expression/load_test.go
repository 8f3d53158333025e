package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pez-cli/pez/pkg/cfgerr"
)

func TestBuildExpressions(t *testing.T) {
	expressions := buildExpressions(t, `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="field-type-expressions">
    <Expression name="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
    <Expression name="alpha-num-expression">
      <Pattern eg="a1"><![CDATA[\w+]]></Pattern>
    </Expression>
  </Expressions>
  <Expressions name="date-expressions">
    <Expression name="y2k-years-expression">
      <Pattern><![CDATA[(?<year>20[0-2]\d)]]></Pattern>
    </Expression>
  </Expressions>
</Application>`)

	require.Len(t, expressions, 3)

	person := expressions["person's-name-expression"]
	require.NotNil(t, person)
	assert.Equal(t, "field-type-expressions", person.Group)
	assert.Equal(t, "Ted O'Neill", person.Eg)
	assert.True(t, person.HasEg)
	assert.Equal(t, []Pattern{{Text: `[a-zA-Z\s']+`, Position: 1}}, person.Patterns)

	alpha := expressions["alpha-num-expression"]
	require.NotNil(t, alpha)
	assert.False(t, alpha.HasEg)
	assert.Equal(t, []Pattern{{Text: `\w+`, Eg: "a1", HasEg: true, Position: 1}}, alpha.Patterns)

	assert.Equal(t, "date-expressions", expressions["y2k-years-expression"].Group)
}

func TestBuildExpressions_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "expression_duplicated_in_group",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="field-type-expressions">
    <Expression name="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
    <Expression name="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "expression_duplicated_across_groups",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="field-type-expressions">
    <Expression name="person's-name-expression">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
  <Expressions name="other-expressions">
    <Expression name="person's-name-expression">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "expression_without_name",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="field-type-expressions">
    <Expression nametypo="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "expression_with_empty_name",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="field-type-expressions">
    <Expression name="" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "expressions_duplicated",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="field-type-expressions">
    <Expression name="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
  <Expressions name="field-type-expressions">
    <Expression name="other-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "expressions_without_name",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions nametypo="field-type-expressions">
    <Expression name="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "expressions_with_empty_name",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="">
    <Expression name="person's-name-expression" eg="Ted O'Neill">
      <Pattern><![CDATA[[a-zA-Z\s']+]]></Pattern>
    </Expression>
  </Expressions>
</Application>`,
		},
		{
			name: "no_expressions",
			data: `<?xml version="1.0"?>
<Application name="pez">
  <Cli/>
</Application>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(testOptions).BuildExpressions(applicationNode(t, tt.data))
			require.Error(t, err)
			assert.True(t, cfgerr.Is(err), "expected a configuration error, got: %v", err)
		})
	}
}

func TestValidateIDs_NamesFirstOffender(t *testing.T) {
	app := applicationNode(t, `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="g">
    <Expression name="fine"><Pattern>a</Pattern></Expression>
    <Expression label="first-bad"><Pattern>b</Pattern></Expression>
    <Expression label="second-bad"><Pattern>c</Pattern></Expression>
  </Expressions>
</Application>`)

	err := NewBuilder(testOptions).ValidateIDs(app, ElementExpression)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `label="first-bad"`)
	assert.NotContains(t, err.Error(), "second-bad")
}

func TestValidateIDs_NoIDConfigured(t *testing.T) {
	app := applicationNode(t, `<Application><Expressions name="g"/></Application>`)

	_, err := NewBuilder(Options{}).BuildExpressions(app)
	require.Error(t, err)
	assert.True(t, cfgerr.Is(err))
}

func TestBuildExpressionGroup(t *testing.T) {
	app := applicationNode(t, `<?xml version="1.0"?>
<Application name="pez">
  <Expressions name="a-expressions">
    <Expression name="a"><Pattern>A</Pattern></Expression>
  </Expressions>
  <Expressions name="b-expressions">
    <Expression name="b"><Pattern>B</Pattern></Expression>
    <Expression name="c"><Pattern>C</Pattern></Expression>
  </Expressions>
</Application>`)
	b := NewBuilder(testOptions)

	group, err := b.BuildExpressionGroup(app, "b-expressions")
	require.NoError(t, err)
	assert.Equal(t, ElementExpressions, group.Name)
	assert.Equal(t, "b-expressions", group.Attributes["name"])
	assert.Len(t, group.ChildrenNamed(ElementExpression), 2)

	_, err = b.BuildExpressionGroup(app, "missing-expressions")
	require.Error(t, err)
	assert.True(t, cfgerr.Is(err))
}

func TestBuildExpressions_CustomID(t *testing.T) {
	app := applicationNode(t, `<Application>
  <Expressions key="g">
    <Expression key="k" name="ignored"><Pattern>K</Pattern></Expression>
  </Expressions>
</Application>`)

	expressions, err := NewBuilder(Options{ID: "key"}).BuildExpressions(app)
	require.NoError(t, err)
	require.Contains(t, expressions, "k")
	assert.NotContains(t, expressions, "ignored")
}
