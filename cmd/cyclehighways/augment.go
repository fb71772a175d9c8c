package main

import (
	"github.com/LdDl/cyclehighways"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type augmentOptions struct {
	network       string
	nodes         string
	highways      string
	intersections string
	out           string
}

var augmentOpts augmentOptions

var augmentCmd = &cobra.Command{
	Use:   "augment",
	Short: "Add cycle highways and bike-only links to the network",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runAugment(augmentOpts, cfg.Augment, zap.L())
		return err
	},
}

func init() {
	flags := augmentCmd.Flags()
	flags.StringVar(&augmentOpts.network, "network", "input/v6.4/berlin-v6.4-network-with-pt.xml.gz", "Base MATSim network")
	flags.StringVar(&augmentOpts.nodes, "nodes", "output/network/python/new_matsim_nodes_combined.geojson", "New nodes (GeoJSON or shapefile)")
	flags.StringVar(&augmentOpts.highways, "highways", "output/network/python/new_matsim_links_cycle_highways.geojson", "Cycle highway links (GeoJSON or shapefile)")
	flags.StringVar(&augmentOpts.intersections, "intersections", "output/network/python/new_matsim_links_network_intersections.geojson", "Links splitting network links (GeoJSON or shapefile)")
	flags.StringVar(&augmentOpts.out, "out", "input/v6.4/berlin-v6.4-network-with-pt-and-cycle-highways.xml.gz", "Augmented MATSim network")
}

// runAugment writes output network only when every step succeeded
func runAugment(opts augmentOptions, augmentCfg cyclehighways.AugmentConfiguration, logger *zap.Logger) (*cyclehighways.AugmentReport, error) {
	nodes, err := cyclehighways.ReadNewNodes(opts.nodes)
	if err != nil {
		return nil, err
	}
	highways, err := cyclehighways.ReadCycleHighways(opts.highways)
	if err != nil {
		return nil, err
	}
	intersections, err := cyclehighways.ReadNetworkIntersections(opts.intersections)
	if err != nil {
		return nil, err
	}
	logger.Info("Features loaded",
		zap.Int("nodes", len(nodes)),
		zap.Int("cycle_highways", len(highways)),
		zap.Int("intersections", len(intersections)),
	)

	net, err := cyclehighways.ReadMATSimNetwork(opts.network)
	if err != nil {
		return nil, err
	}
	logger.Info("Network loaded", zap.String("file", opts.network), zap.Int("nodes", net.NumNodes()), zap.Int("links", net.NumLinks()))

	augmenter := cyclehighways.NewAugmenter(
		cyclehighways.WithConfiguration(augmentCfg),
		cyclehighways.WithLogger(logger),
	)
	report, err := augmenter.Augment(net, nodes, highways, intersections)
	if err != nil {
		return nil, errors.Wrap(err, "Can't augment network")
	}

	if err := cyclehighways.WriteMATSimNetwork(net, opts.out); err != nil {
		return nil, err
	}
	logger.Info("Network saved",
		zap.String("file", opts.out),
		zap.Int("nodes", net.NumNodes()),
		zap.Int("links", net.NumLinks()),
		zap.Int("problematic_links", len(report.Warnings)),
	)
	return report, nil
}
