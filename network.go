package cyclehighways

import (
	"github.com/pkg/errors"
)

const (
	DEFAULT_CAPACITY_PERIOD      = "01:00:00"
	DEFAULT_EFFECTIVE_CELL_SIZE  = 7.5
	DEFAULT_EFFECTIVE_LANE_WIDTH = 3.75
)

// Attribute is a named value attached to network, node or link. Class keeps the type name used by network files
type Attribute struct {
	Name  string
	Class string
	Value string
}

// Network is a directed multi-modal graph. Nodes and links are kept in insertion order
type Network struct {
	name               string
	capacityPeriod     string
	effectiveCellSize  float64
	effectiveLaneWidth float64
	attributes         []Attribute

	nodes      map[NetworkNodeID]*NetworkNode
	nodesOrder []NetworkNodeID
	links      map[NetworkLinkID]*NetworkLink
	linksOrder []NetworkLinkID
	// Removals only mark order slices as stale, they are compacted on next read or insertion
	nodesStale bool
	linksStale bool
}

func NewNetwork() *Network {
	return &Network{
		capacityPeriod:     DEFAULT_CAPACITY_PERIOD,
		effectiveCellSize:  DEFAULT_EFFECTIVE_CELL_SIZE,
		effectiveLaneWidth: DEFAULT_EFFECTIVE_LANE_WIDTH,
		nodes:              make(map[NetworkNodeID]*NetworkNode),
		nodesOrder:         make([]NetworkNodeID, 0),
		links:              make(map[NetworkLinkID]*NetworkLink),
		linksOrder:         make([]NetworkLinkID, 0),
	}
}

func (net *Network) AddNode(node *NetworkNode) error {
	if _, ok := net.nodes[node.ID]; ok {
		return errors.Wrapf(ErrDuplicateNode, "Can't add node '%s'", node.ID)
	}
	net.compactNodes()
	net.nodes[node.ID] = node
	net.nodesOrder = append(net.nodesOrder, node.ID)
	return nil
}

// AddLink inserts link and registers it in incidence lists of its nodes. Both nodes must exist
func (net *Network) AddLink(link *NetworkLink) error {
	if _, ok := net.links[link.ID]; ok {
		return errors.Wrapf(ErrDuplicateLink, "Can't add link '%s'", link.ID)
	}
	source, ok := net.nodes[link.sourceNodeID]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "Can't add link '%s': no source node '%s'", link.ID, link.sourceNodeID)
	}
	target, ok := net.nodes[link.targetNodeID]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "Can't add link '%s': no target node '%s'", link.ID, link.targetNodeID)
	}
	net.compactLinks()
	net.links[link.ID] = link
	net.linksOrder = append(net.linksOrder, link.ID)
	source.outcomingLinks = append(source.outcomingLinks, link.ID)
	target.incomingLinks = append(target.incomingLinks, link.ID)
	return nil
}

func (net *Network) Node(id NetworkNodeID) (*NetworkNode, bool) {
	node, ok := net.nodes[id]
	return node, ok
}

func (net *Network) Link(id NetworkLinkID) (*NetworkLink, bool) {
	link, ok := net.links[id]
	return link, ok
}

// Nodes returns nodes in insertion order
func (net *Network) Nodes() []*NetworkNode {
	net.compactNodes()
	nodes := make([]*NetworkNode, 0, len(net.nodesOrder))
	for _, id := range net.nodesOrder {
		nodes = append(nodes, net.nodes[id])
	}
	return nodes
}

// Links returns links in insertion order
func (net *Network) Links() []*NetworkLink {
	net.compactLinks()
	links := make([]*NetworkLink, 0, len(net.linksOrder))
	for _, id := range net.linksOrder {
		links = append(links, net.links[id])
	}
	return links
}

func (net *Network) NumNodes() int {
	return len(net.nodes)
}

func (net *Network) NumLinks() int {
	return len(net.links)
}

func (net *Network) RemoveLink(id NetworkLinkID) error {
	link, ok := net.links[id]
	if !ok {
		return errors.Wrapf(ErrLinkNotFound, "Can't remove link '%s'", id)
	}
	if source, ok := net.nodes[link.sourceNodeID]; ok {
		source.outcomingLinks = removeLinkID(source.outcomingLinks, id)
	}
	if target, ok := net.nodes[link.targetNodeID]; ok {
		target.incomingLinks = removeLinkID(target.incomingLinks, id)
	}
	delete(net.links, id)
	net.linksStale = true
	return nil
}

// RemoveNode removes node together with every link touching it
func (net *Network) RemoveNode(id NetworkNodeID) error {
	node, ok := net.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "Can't remove node '%s'", id)
	}
	incident := make([]NetworkLinkID, 0, node.Degree())
	incident = append(incident, node.incomingLinks...)
	incident = append(incident, node.outcomingLinks...)
	for _, linkID := range incident {
		if _, ok := net.links[linkID]; !ok {
			// Self-loop has been listed twice
			continue
		}
		if err := net.RemoveLink(linkID); err != nil {
			return err
		}
	}
	delete(net.nodes, id)
	net.nodesStale = true
	return nil
}

func (net *Network) compactNodes() {
	if !net.nodesStale {
		return
	}
	kept := net.nodesOrder[:0]
	for _, id := range net.nodesOrder {
		if _, ok := net.nodes[id]; ok {
			kept = append(kept, id)
		}
	}
	net.nodesOrder = kept
	net.nodesStale = false
}

func (net *Network) compactLinks() {
	if !net.linksStale {
		return
	}
	kept := net.linksOrder[:0]
	for _, id := range net.linksOrder {
		if _, ok := net.links[id]; ok {
			kept = append(kept, id)
		}
	}
	net.linksOrder = kept
	net.linksStale = false
}

// Clone returns deep copy of the network
func (net *Network) Clone() *Network {
	cloned := NewNetwork()
	cloned.name = net.name
	cloned.capacityPeriod = net.capacityPeriod
	cloned.effectiveCellSize = net.effectiveCellSize
	cloned.effectiveLaneWidth = net.effectiveLaneWidth
	cloned.attributes = append([]Attribute(nil), net.attributes...)
	for _, node := range net.Nodes() {
		// Ids are unique in the source network
		_ = cloned.AddNode(node.clone())
	}
	for _, link := range net.Links() {
		_ = cloned.AddLink(link.clone())
	}
	return cloned
}
