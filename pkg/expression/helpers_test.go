package expression

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/require"

	"github.com/pez-cli/pez/pkg/xmltree"
)

var testOptions = Options{ID: "name"}

func applicationNode(t *testing.T, data string) *xmlquery.Node {
	t.Helper()
	doc, err := xmltree.Parse(strings.NewReader(data))
	require.NoError(t, err)
	app := xmlquery.FindOne(doc, "/Application")
	require.NotNil(t, app, "Couldn't get Application node.")
	return app
}

func buildExpressions(t *testing.T, data string) Map {
	t.Helper()
	expressions, err := NewBuilder(testOptions).BuildExpressions(applicationNode(t, data))
	require.NoError(t, err)
	return expressions
}
