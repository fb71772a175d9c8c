package cyclehighways

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeConnectivity(t *testing.T) {
	net := prepareTestNetwork(t)
	report := AnalyzeConnectivity(net)
	assert.Equal(t, ConnectivityReport{Components: 1, LargestComponent: 3, SmallComponents: 0}, report)

	// Island of two nodes and a lonely node with a self-loop
	require.NoError(t, net.AddNode(NewNetworkNode("X", orb.Point{500, 500})))
	require.NoError(t, net.AddNode(NewNetworkNode("Y", orb.Point{510, 500})))
	require.NoError(t, net.AddNode(NewNetworkNode("Z", orb.Point{900, 900})))
	require.NoError(t, net.AddLink(NewNetworkLink("XY", "X", "Y", 1, 1, 10, 1, NewAgentTypes(AGENT_BIKE))))
	require.NoError(t, net.AddLink(NewNetworkLink("ZZ", "Z", "Z", 1, 1, 10, 1, NewAgentTypes(AGENT_BIKE))))

	report = AnalyzeConnectivity(net)
	assert.Equal(t, 3, report.Components)
	assert.Equal(t, 3, report.LargestComponent)
	assert.Equal(t, 2, report.SmallComponents)
}

func TestAnalyzeConnectivityEmpty(t *testing.T) {
	assert.Equal(t, ConnectivityReport{}, AnalyzeConnectivity(NewNetwork()))
}
