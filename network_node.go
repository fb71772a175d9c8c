package cyclehighways

import (
	"github.com/paulmach/orb"
)

/* Nodes stuff */

type NetworkNodeID string

type NetworkNode struct {
	incomingLinks  []NetworkLinkID
	outcomingLinks []NetworkLinkID
	ID             NetworkNodeID
	origID         string
	kind           string
	geom           orb.Point
	attributes     []Attribute
}

// NewNetworkNode returns node placed at given point
func NewNetworkNode(id NetworkNodeID, pt orb.Point) *NetworkNode {
	return &NetworkNode{
		incomingLinks:  make([]NetworkLinkID, 0),
		outcomingLinks: make([]NetworkLinkID, 0),
		ID:             id,
		geom:           pt,
	}
}

func (node *NetworkNode) Geom() orb.Point {
	return node.geom
}

// IncomingLinks returns copy of identifiers of links ending at the node
func (node *NetworkNode) IncomingLinks() []NetworkLinkID {
	return append([]NetworkLinkID(nil), node.incomingLinks...)
}

// OutcomingLinks returns copy of identifiers of links starting at the node
func (node *NetworkNode) OutcomingLinks() []NetworkLinkID {
	return append([]NetworkLinkID(nil), node.outcomingLinks...)
}

// Degree returns number of links touching the node
func (node *NetworkNode) Degree() int {
	return len(node.incomingLinks) + len(node.outcomingLinks)
}

func (node *NetworkNode) Attributes() []Attribute {
	return node.attributes
}

// clone copies the node without its incidence lists
func (node *NetworkNode) clone() *NetworkNode {
	cloned := NewNetworkNode(node.ID, node.geom)
	cloned.origID = node.origID
	cloned.kind = node.kind
	cloned.attributes = append([]Attribute(nil), node.attributes...)
	return cloned
}

func removeLinkID(ids []NetworkLinkID, id NetworkLinkID) []NetworkLinkID {
	for i := range ids {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
