package cyclehighways

import (
	"math"

	"github.com/pkg/errors"
)

const (
	cycleHighwayForwardSuffix  = "_1"
	cycleHighwayBackwardSuffix = "_2"
)

// insertNewLink adds links described by the record to the network.
//
// A record splitting an existing link gives a single link in the record's direction, its speed
// is capped by both the original link and the average bike speed.
// A cycle highway record gives two links, one per direction, at cycle highway speed
func (augmenter *Augmenter) insertNewLink(net *Network, record *NewLinkRecord) ([]*NetworkLink, error) {
	if record.IsSplit() {
		original, ok := net.Link(record.OriginalLinkID)
		if !ok {
			return nil, errors.Wrapf(ErrLinkNotFound, "Can't split link '%s' by '%s'", record.OriginalLinkID, record.ID)
		}
		freeSpeed := math.Min(original.freeSpeed, augmenter.cfg.AverageBikeSpeed)
		link, err := augmenter.createBikeLink(net, record.ID, record.FromID, record.ToID, freeSpeed, record.EuclideanDistance)
		if err != nil {
			return nil, err
		}
		link.bikeLinkType = BIKE_LINK_SPLIT
		if err := net.AddLink(link); err != nil {
			return nil, err
		}
		return []*NetworkLink{link}, nil
	}

	freeSpeed := augmenter.cfg.CycleHighwaySpeed
	forward, err := augmenter.createBikeLink(net, record.ID+cycleHighwayForwardSuffix, record.FromID, record.ToID, freeSpeed, record.EuclideanDistance)
	if err != nil {
		return nil, err
	}
	forward.bikeLinkType = BIKE_LINK_CYCLE_HIGHWAY
	if err := net.AddLink(forward); err != nil {
		return nil, err
	}
	backward, err := augmenter.createBikeLink(net, record.ID+cycleHighwayBackwardSuffix, record.ToID, record.FromID, freeSpeed, record.EuclideanDistance)
	if err != nil {
		return nil, err
	}
	backward.bikeLinkType = BIKE_LINK_CYCLE_HIGHWAY
	if err := net.AddLink(backward); err != nil {
		return nil, err
	}
	return []*NetworkLink{forward, backward}, nil
}
