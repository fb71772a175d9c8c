package cyclehighways

import (
	"github.com/paulmach/orb"
)

// NewNodeRecord is a node produced by geospatial analysis (e.g. intersection of a cycle highway with the network)
type NewNodeRecord struct {
	ID               NetworkNodeID
	SelfIntersection bool
	Point            orb.Point
}

// NewLinkRecord is a link produced by geospatial analysis.
// OriginalLinkID is set only for links splitting an existing network link
type NewLinkRecord struct {
	ID                NetworkLinkID
	FromID            NetworkNodeID
	ToID              NetworkNodeID
	OriginalLinkID    NetworkLinkID
	EuclideanDistance float64
	Line              orb.LineString
}

// IsSplit reports whether record replaces part of an existing link
func (record *NewLinkRecord) IsSplit() bool {
	return record.OriginalLinkID != ""
}
