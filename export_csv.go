package cyclehighways

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportToCSV writes '<name>_nodes.csv' and '<name>_links.csv' with ';' separator and WKT geometry
func ExportToCSV(net *Network, fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameLinks := fnameParts[0] + "_links.csv"

	err := exportNodesToCSV(net, fnameNodes)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = exportLinksToCSV(net, fnameLinks)
	if err != nil {
		return errors.Wrap(err, "Can't export links")
	}
	return nil
}

func exportLinksToCSV(net *Network, fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	err = writer.Write([]string{"id", "source_node", "target_node", "allowed_agent_types", "bike_link_type", "lanes", "free_speed", "capacity", "length", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, link := range net.Links() {
		err = writer.Write([]string{
			string(link.ID),
			string(link.sourceNodeID),
			string(link.targetNodeID),
			link.allowedAgentTypes.String(),
			link.bikeLinkType.String(),
			formatFloat(link.lanes),
			fmt.Sprintf("%f", link.freeSpeed),
			formatFloat(link.capacity),
			fmt.Sprintf("%f", link.lengthMeters),
			wkt.MarshalString(net.linkGeom(link)),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write link")
		}
	}
	writer.Flush()
	return writer.Error()
}

func exportNodesToCSV(net *Network, fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	err = writer.Write([]string{"id", "x", "y", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range net.Nodes() {
		err = writer.Write([]string{
			string(node.ID),
			fmt.Sprintf("%f", node.geom.X()),
			fmt.Sprintf("%f", node.geom.Y()),
			wkt.MarshalString(node.geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	writer.Flush()
	return writer.Error()
}

// linkGeom returns straight segment between link's nodes
func (net *Network) linkGeom(link *NetworkLink) orb.LineString {
	geom := make(orb.LineString, 0, 2)
	if source, ok := net.nodes[link.sourceNodeID]; ok {
		geom = append(geom, source.geom)
	}
	if target, ok := net.nodes[link.targetNodeID]; ok {
		geom = append(geom, target.geom)
	}
	return geom
}
