package main

import (
	"path/filepath"
	"strings"

	"github.com/LdDl/cyclehighways"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	exportNetwork string
	exportOut     string
	exportOffset  float64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export network to CSV (WKT geometry) or GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(exportNetwork, exportOut, exportOffset)
	},
}

func init() {
	flags := exportCmd.Flags()
	flags.StringVar(&exportNetwork, "network", "output/network/cycle-highways-bike-network.xml.gz", "MATSim network")
	flags.StringVar(&exportOut, "out", "network.geojson", "Output file. Format is guessed by extension: .csv, .geojson or .json")
	flags.Float64Var(&exportOffset, "offset", 0, "Shift GeoJSON links to the right by given distance in network units")
}

func runExport(networkFile, out string, offset float64) error {
	net, err := cyclehighways.ReadMATSimNetwork(networkFile)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		return cyclehighways.ExportToCSV(net, out)
	case ".geojson", ".json":
		return cyclehighways.ExportToGeoJSON(net, out, offset)
	default:
		return errors.Wrapf(cyclehighways.ErrUnsupportedFormat, "Can't export to '%s'", out)
	}
}
