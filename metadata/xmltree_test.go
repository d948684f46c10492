package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `<?xml version="1.0" encoding="UTF-8"?>
<wfs:FeatureCollection
    xmlns:wfs="http://www.opengis.net/wfs"
    xmlns:gml="http://www.opengis.net/gml"
    xmlns:gsml="urn:cgi:xmlns:CGI:GeoSciML:2.0"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <gml:featureMember>
    <gsml:MappedFeature gml:id="mf.1">
      <gsml:observationMethod>
        <gsml:CGI_TermValue>
          <gsml:value codeSpace="urn:cgi">field observation</gsml:value>
        </gsml:CGI_TermValue>
      </gsml:observationMethod>
      <gsml:samplingFrame xlink:href="urn:cgi:feature:Bedrock"/>
      <gsml:shape>
        <gml:Point srsName="EPSG:4326">
          <gml:pos>-32.5 138.1</gml:pos>
        </gml:Point>
      </gsml:shape>
    </gsml:MappedFeature>
  </gml:featureMember>
</wfs:FeatureCollection>`

func parseTestTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := ParseTree(strings.NewReader(testDoc), nil)
	require.NoError(t, err)
	return tree
}

func TestParseTreeMalformed(t *testing.T) {
	_, err := ParseTree(strings.NewReader("<unclosed"), nil)
	require.Error(t, err)
}

func TestTreeQuery(t *testing.T) {
	tree := parseTestTree(t)

	nodes, err := tree.Query("//gsml:MappedFeature")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	mf := nodes[0]
	assert.Equal(t, "MappedFeature", mf.Tag())
	assert.Equal(t, "urn:cgi:xmlns:CGI:GeoSciML:2.0", mf.Namespace())
	assert.Equal(t, "gsml:MappedFeature", mf.QName())

	id, ok := mf.Attr("gml:id")
	require.True(t, ok)
	assert.Equal(t, "mf.1", id)
}

func TestTreeQueryBadExpression(t *testing.T) {
	tree := parseTestTree(t)

	_, err := tree.Query("//[")
	require.Error(t, err)
}

func TestNodeRelativeQuery(t *testing.T) {
	tree := parseTestTree(t)

	features, err := tree.Query("//gsml:MappedFeature")
	require.NoError(t, err)
	require.Len(t, features, 1)

	points, err := features[0].Query(".//gml:Point")
	require.NoError(t, err)
	require.Len(t, points, 1)

	srs, ok := points[0].Attr("srsName")
	require.True(t, ok)
	assert.Equal(t, "EPSG:4326", srs)
	assert.Equal(t, "-32.5 138.1", strings.TrimSpace(points[0].Text()))
}

func TestNodeChildren(t *testing.T) {
	tree := parseTestTree(t)

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, "wfs:FeatureCollection", root.QName())

	members := root.Children()
	require.Len(t, members, 1)
	assert.Equal(t, "gml:featureMember", members[0].QName())

	feature := members[0].Children()
	require.Len(t, feature, 1)

	var qnames []string
	for _, child := range feature[0].Children() {
		qnames = append(qnames, child.QName())
	}
	assert.Equal(t, []string{"gsml:observationMethod", "gsml:samplingFrame", "gsml:shape"}, qnames)
}

func TestNodeNamespacedAttr(t *testing.T) {
	tree := parseTestTree(t)

	frames, err := tree.Query("//gsml:samplingFrame")
	require.NoError(t, err)
	require.Len(t, frames, 1)

	href, ok := frames[0].Attr("xlink:href")
	require.True(t, ok)
	assert.Equal(t, "urn:cgi:feature:Bedrock", href)

	_, ok = frames[0].Attr("xlink:missing")
	assert.False(t, ok)
}
