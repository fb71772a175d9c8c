package cyclehighways

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AugmentReport summarizes a single augmentation run
type AugmentReport struct {
	NodesAdded        int
	LinksStripped     int
	LinksDuplicated   int
	LinksSuppressed   int
	SplitLinks        int
	CycleHighwayLinks int
	Warnings          []LinkWarning
}

// Augment applies new nodes, cycle highways and network intersections to the network.
//
// Every link allowing bikes loses the bike mode. Unless the link is split by some intersection record
// it gets a bike-only twin. Twins are committed only after all links have been visited, so the scan
// never sees links added in the same pass.
// On error the network is left partially modified and must be discarded.
func (augmenter *Augmenter) Augment(net *Network, nodes []NewNodeRecord, cycleHighways []NewLinkRecord, intersections []NewLinkRecord) (*AugmentReport, error) {
	if err := augmenter.cfg.Validate(); err != nil {
		return nil, err
	}
	augmenter.warnings = make([]LinkWarning, 0)
	report := &AugmentReport{}
	bike := augmenter.cfg.BikeAgentType

	st := time.Now()
	toBeRemoved := make(map[NetworkLinkID]struct{}, len(intersections))
	for i := range intersections {
		if !intersections[i].IsSplit() {
			return nil, errors.Wrapf(ErrMissingProperty, "Intersection link '%s' has no original link", intersections[i].ID)
		}
		toBeRemoved[intersections[i].OriginalLinkID] = struct{}{}
	}

	for i := range nodes {
		if err := net.AddNode(NewNetworkNode(nodes[i].ID, nodes[i].Point)); err != nil {
			return nil, errors.Wrap(err, "Can't add new node")
		}
		report.NodesAdded++
	}
	augmenter.logger.Info("New nodes added", zap.Int("nodes", report.NodesAdded), zap.Duration("elapsed", time.Since(st)))

	st = time.Now()
	newLinks := make([]*NetworkLink, 0)
	for _, link := range net.Links() {
		if !link.Allows(bike) {
			continue
		}
		link.Disallow(bike)
		report.LinksStripped++
		if _, ok := toBeRemoved[link.ID]; ok {
			report.LinksSuppressed++
			continue
		}
		bikeLink, err := augmenter.copyLink(net, link)
		if err != nil {
			return nil, err
		}
		newLinks = append(newLinks, bikeLink)
	}
	for _, link := range newLinks {
		if err := net.AddLink(link); err != nil {
			return nil, errors.Wrap(err, "Can't add bike link")
		}
		report.LinksDuplicated++
	}
	augmenter.logger.Info("Bike links separated",
		zap.Int("stripped", report.LinksStripped),
		zap.Int("duplicated", report.LinksDuplicated),
		zap.Int("suppressed", report.LinksSuppressed),
		zap.Duration("elapsed", time.Since(st)),
	)

	st = time.Now()
	for i := range cycleHighways {
		inserted, err := augmenter.insertNewLink(net, &cycleHighways[i])
		if err != nil {
			return nil, errors.Wrap(err, "Can't insert cycle highway")
		}
		report.CycleHighwayLinks += len(inserted)
	}
	for i := range intersections {
		inserted, err := augmenter.insertNewLink(net, &intersections[i])
		if err != nil {
			return nil, errors.Wrap(err, "Can't insert network intersection")
		}
		report.SplitLinks += len(inserted)
	}
	augmenter.logger.Info("New links inserted",
		zap.Int("cycle_highway_links", report.CycleHighwayLinks),
		zap.Int("split_links", report.SplitLinks),
		zap.Int("warnings", len(augmenter.warnings)),
		zap.Duration("elapsed", time.Since(st)),
	)

	report.Warnings = augmenter.warnings
	return report, nil
}
