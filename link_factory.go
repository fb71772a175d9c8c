package cyclehighways

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DuplicateLinkID returns identifier of bike-only copy for given link
func DuplicateLinkID(prefix string, id NetworkLinkID) NetworkLinkID {
	return NetworkLinkID(prefix + string(id))
}

// createBikeLink creates bike-only link. Both nodes must be present in the network.
// The link is not added to the network
func (augmenter *Augmenter) createBikeLink(net *Network, id NetworkLinkID, sourceNodeID, targetNodeID NetworkNodeID, freeSpeed, lengthMeters float64) (*NetworkLink, error) {
	if _, ok := net.Node(sourceNodeID); !ok {
		return nil, errors.Wrapf(ErrNodeNotFound, "Can't create link '%s': no source node '%s'", id, sourceNodeID)
	}
	if _, ok := net.Node(targetNodeID); !ok {
		return nil, errors.Wrapf(ErrNodeNotFound, "Can't create link '%s': no target node '%s'", id, targetNodeID)
	}
	link := NewNetworkLink(
		id,
		sourceNodeID,
		targetNodeID,
		freeSpeed,
		augmenter.cfg.Capacity,
		lengthMeters,
		augmenter.cfg.Lanes,
		NewAgentTypes(augmenter.cfg.BikeAgentType),
	)
	if lengthMeters < augmenter.cfg.MinLinkLength || math.IsNaN(lengthMeters) || math.IsInf(lengthMeters, 0) {
		augmenter.logger.Warn("Problematic link", zap.String("link_id", string(id)), zap.Float64("length", lengthMeters))
		augmenter.warnings = append(augmenter.warnings, LinkWarning{LinkID: id, Length: lengthMeters})
	}
	return link, nil
}

// copyLink creates bike-only twin of an existing link with speed capped by average bike speed
func (augmenter *Augmenter) copyLink(net *Network, link *NetworkLink) (*NetworkLink, error) {
	bikeLink, err := augmenter.createBikeLink(
		net,
		DuplicateLinkID(augmenter.cfg.DuplicatePrefix, link.ID),
		link.sourceNodeID,
		link.targetNodeID,
		math.Min(link.freeSpeed, augmenter.cfg.AverageBikeSpeed),
		link.lengthMeters,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't copy link '%s'", link.ID)
	}
	bikeLink.bikeLinkType = BIKE_LINK_UNCHANGED
	return bikeLink, nil
}
