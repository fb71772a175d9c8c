package main

import (
	"github.com/LdDl/cyclehighways"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	osmFileName string
	osmOut      string
	osmProject  bool
)

var importOSMCmd = &cobra.Command{
	Use:   "import-osm",
	Short: "Build multi-modal base network from OpenStreetMap highways",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := cyclehighways.ImportFromOSMFile(
			cmd.Context(),
			osmFileName,
			cyclehighways.WithOSMLogger(zap.L()),
			cyclehighways.WithEuclidean(osmProject),
		)
		if err != nil {
			return err
		}
		return cyclehighways.WriteMATSimNetwork(net, osmOut)
	},
}

func init() {
	flags := importOSMCmd.Flags()
	flags.StringVar(&osmFileName, "osm", "my_graph.osm.pbf", "OSM extract (*.osm, *.xml or *.osm.pbf)")
	flags.StringVar(&osmOut, "out", "network.xml.gz", "MATSim network")
	flags.BoolVar(&osmProject, "project", false, "Project node coordinates to EPSG:3857")
}
