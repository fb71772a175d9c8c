package cyclehighways

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

const smallComponentSize = 3

// ConnectivityReport describes weakly connected components of a network
type ConnectivityReport struct {
	Components       int
	LargestComponent int
	SmallComponents  int
}

// AnalyzeConnectivity counts weakly connected components, i.e. link direction is ignored
func AnalyzeConnectivity(net *Network) ConnectivityReport {
	g := simple.NewUndirectedGraph()
	ids := make(map[NetworkNodeID]int64, net.NumNodes())
	for i, node := range net.Nodes() {
		ids[node.ID] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}
	for _, link := range net.Links() {
		from, to := ids[link.sourceNodeID], ids[link.targetNodeID]
		if from == to {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	report := ConnectivityReport{}
	for _, component := range topo.ConnectedComponents(g) {
		report.Components++
		if len(component) > report.LargestComponent {
			report.LargestComponent = len(component)
		}
		if len(component) < smallComponentSize {
			report.SmallComponents++
		}
	}
	return report
}
