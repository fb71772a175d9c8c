package cyclehighways

import (
	"context"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
	<node id="1" lat="52.50" lon="13.40" version="1"/>
	<node id="2" lat="52.50" lon="13.41" version="1"/>
	<node id="3" lat="52.50" lon="13.42" version="1"/>
	<node id="4" lat="52.50" lon="13.43" version="1"/>
	<node id="5" lat="52.51" lon="13.42" version="1"/>
	<node id="6" lat="52.52" lon="13.42" version="1"/>
	<way id="10" version="1">
		<nd ref="1"/>
		<nd ref="2"/>
		<nd ref="3"/>
		<tag k="highway" v="residential"/>
	</way>
	<way id="11" version="1">
		<nd ref="3"/>
		<nd ref="4"/>
		<tag k="highway" v="motorway"/>
	</way>
	<way id="12" version="1">
		<nd ref="5"/>
		<nd ref="3"/>
		<tag k="highway" v="cycleway"/>
		<tag k="oneway" v="-1"/>
	</way>
	<way id="13" version="1">
		<nd ref="5"/>
		<nd ref="6"/>
		<tag k="highway" v="bus_stop"/>
	</way>
</osm>
`

func TestImportFromOSMFile(t *testing.T) {
	fname := writeTestFile(t, "sample.osm", testOSM)
	net, err := ImportFromOSMFile(context.Background(), fname, WithOSMLogger(zap.NewNop()))
	require.NoError(t, err)

	// Node 2 is used by single way only, so it is not a network node
	assert.Equal(t, []NetworkNodeID{"1", "3", "4", "5"}, nodeIDs(net))
	assert.Equal(t, []NetworkLinkID{"0", "1", "2", "3"}, linkIDs(net))

	residential, _ := net.Link("0")
	assert.Equal(t, NetworkNodeID("1"), residential.SourceNodeID())
	assert.Equal(t, NetworkNodeID("3"), residential.TargetNodeID())
	assert.Equal(t, "bike,car,walk", residential.AllowedAgentTypes().String())
	assert.InDelta(t, 1355.0, residential.Length(), 5.0)
	assert.InDelta(t, 30.0/3.6, residential.FreeSpeed(), 1e-9)
	assert.InDelta(t, 1000.0, residential.Capacity(), 1e-9)
	assert.Equal(t, "10", residential.origID)

	back, _ := net.Link("1")
	assert.Equal(t, NetworkNodeID("3"), back.SourceNodeID())
	assert.Equal(t, NetworkNodeID("1"), back.TargetNodeID())

	motorway, _ := net.Link("2")
	assert.Equal(t, "car", motorway.AllowedAgentTypes().String())
	assert.InDelta(t, 4.0, motorway.Lanes(), 1e-9)

	cycleway, _ := net.Link("3")
	assert.Equal(t, NetworkNodeID("3"), cycleway.SourceNodeID(), "Reversed one-way must go against nodes order")
	assert.Equal(t, NetworkNodeID("5"), cycleway.TargetNodeID())
	assert.Equal(t, "bike", cycleway.AllowedAgentTypes().String())
}

func TestImportFromOSMFileEuclidean(t *testing.T) {
	fname := writeTestFile(t, "sample.osm", testOSM)
	net, err := ImportFromOSMFile(context.Background(), fname, WithEuclidean(true), WithStartLinkID(100))
	require.NoError(t, err)

	node, ok := net.Node("1")
	require.True(t, ok)
	x, y := epsg4326To3857(13.40, 52.50)
	assert.InDelta(t, x, node.Geom().X(), 1e-6)
	assert.InDelta(t, y, node.Geom().Y(), 1e-6)
	_, ok = net.Link("100")
	assert.True(t, ok)
}

func TestImportFromOSMFileUnsupported(t *testing.T) {
	fname := writeTestFile(t, "sample.o5m", testOSM)
	_, err := ImportFromOSMFile(context.Background(), fname)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWayAllowableAgentTypes(t *testing.T) {
	cases := []struct {
		tags     osm.Tags
		expected string
	}{
		{osm.Tags{{Key: "highway", Value: "motorway"}}, "car"},
		{osm.Tags{{Key: "highway", Value: "cycleway"}}, "bike"},
		{osm.Tags{{Key: "highway", Value: "cycleway"}, {Key: "foot", Value: "designated"}}, "bike,walk"},
		{osm.Tags{{Key: "highway", Value: "footway"}}, "walk"},
		{osm.Tags{{Key: "highway", Value: "footway"}, {Key: "bicycle", Value: "yes"}}, "bike,walk"},
		{osm.Tags{{Key: "highway", Value: "primary"}, {Key: "bicycle", Value: "no"}}, "car,walk"},
		{osm.Tags{{Key: "highway", Value: "residential"}, {Key: "access", Value: "private"}}, ""},
	}
	for _, c := range cases {
		way := wayFromOSM(&osm.Way{ID: 1, Tags: c.tags}, zap.NewNop())
		assert.Equal(t, c.expected, way.getAllowableAgentTypes().String(), "tags: %v", c.tags)
	}
}

func TestWayTags(t *testing.T) {
	way := wayFromOSM(&osm.Way{ID: 1, Tags: osm.Tags{
		{Key: "highway", Value: "primary"},
		{Key: "maxspeed", Value: "30 mph"},
		{Key: "lanes", Value: "3"},
		{Key: "oneway", Value: "-1"},
	}}, zap.NewNop())
	assert.InDelta(t, 30*mphToKmh, way.maxSpeed, 1e-9)
	assert.Equal(t, 3, way.lanes)
	assert.True(t, way.Oneway)
	assert.True(t, way.IsReversed)

	roundabout := wayFromOSM(&osm.Way{ID: 2, Tags: osm.Tags{
		{Key: "highway", Value: "tertiary"},
		{Key: "junction", Value: "roundabout"},
	}}, zap.NewNop())
	assert.True(t, roundabout.Oneway)
	assert.False(t, roundabout.IsReversed)

	reversible := wayFromOSM(&osm.Way{ID: 3, Tags: osm.Tags{
		{Key: "highway", Value: "tertiary"},
		{Key: "oneway", Value: "reversible"},
	}}, zap.NewNop())
	assert.False(t, reversible.Oneway)
}
