package main

import (
	"github.com/LdDl/cyclehighways"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultExtractInput              = "input/v6.4/berlin-v6.4-network-with-pt.xml.gz"
	defaultExtractOutput             = "output/network/bike-network.xml.gz"
	defaultExtractCycleHighwaysInput = "input/v6.4/berlin-v6.4-network-with-pt-and-cycle-highways.xml.gz"
	defaultExtractCycleHighwaysOut   = "output/network/cycle-highways-bike-network.xml.gz"
)

type extractOptions struct {
	network       string
	out           string
	mode          string
	cycleHighways bool
}

var extractOpts extractOptions

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Keep only links allowing given mode and nodes touched by them",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := extractOpts
		if !cmd.Flags().Changed("mode") && cfg != nil {
			opts.mode = cfg.Augment.BikeAgentType.String()
		}
		if opts.cycleHighways {
			if !cmd.Flags().Changed("network") {
				opts.network = defaultExtractCycleHighwaysInput
			}
			if !cmd.Flags().Changed("out") {
				opts.out = defaultExtractCycleHighwaysOut
			}
		}
		_, err := runExtract(opts, zap.L())
		return err
	},
}

func init() {
	flags := extractCmd.Flags()
	flags.StringVar(&extractOpts.network, "network", defaultExtractInput, "Source MATSim network")
	flags.StringVar(&extractOpts.out, "out", defaultExtractOutput, "Filtered MATSim network")
	flags.StringVar(&extractOpts.mode, "mode", cyclehighways.AGENT_BIKE.String(), "Mode links must allow (default is augment.bike_mode from configuration)")
	flags.BoolVar(&extractOpts.cycleHighways, "cycle-highways", false, "Use augmented network file names as defaults")
}

func runExtract(opts extractOptions, logger *zap.Logger) (cyclehighways.ConnectivityReport, error) {
	net, err := cyclehighways.ReadMATSimNetwork(opts.network)
	if err != nil {
		return cyclehighways.ConnectivityReport{}, err
	}
	filtered := cyclehighways.FilterByAgentType(net, cyclehighways.AgentType(opts.mode))
	connectivity := cyclehighways.AnalyzeConnectivity(filtered)
	logger.Info("Network filtered",
		zap.String("mode", opts.mode),
		zap.Int("nodes", filtered.NumNodes()),
		zap.Int("links", filtered.NumLinks()),
		zap.Int("components", connectivity.Components),
		zap.Int("largest_component", connectivity.LargestComponent),
		zap.Int("small_components", connectivity.SmallComponents),
	)
	if err := cyclehighways.WriteMATSimNetwork(filtered, opts.out); err != nil {
		return cyclehighways.ConnectivityReport{}, err
	}
	return connectivity, nil
}
