package cyclehighways

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONNetwork returns links of the network as LineString features.
// Non-zero offset shifts every link to the right of its direction, so opposite links do not overlap on a map
func PrepareGeoJSONNetwork(net *Network, offset float64) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for _, link := range net.Links() {
		geom := net.linkGeom(link)
		if offset != 0 {
			geom = offsetCurve(geom, -offset)
		}
		pts := make([][]float64, len(geom))
		for i := range geom {
			pts[i] = []float64{geom[i].X(), geom[i].Y()}
		}
		feature := geojson.NewLineStringFeature(pts)
		feature.ID = string(link.ID)
		feature.SetProperty("id", string(link.ID))
		feature.SetProperty("from", string(link.sourceNodeID))
		feature.SetProperty("to", string(link.targetNodeID))
		feature.SetProperty("modes", link.allowedAgentTypes.String())
		feature.SetProperty("freespeed", link.freeSpeed)
		feature.SetProperty("capacity", link.capacity)
		feature.SetProperty("permlanes", link.lanes)
		feature.SetProperty("length", link.lengthMeters)
		if link.bikeLinkType != BIKE_LINK_NONE {
			feature.SetProperty(BikeLinkTypeAttribute, link.bikeLinkType.String())
		}
		collection.AddFeature(feature)
	}
	return collection
}

// ExportToGeoJSON writes links of the network as GeoJSON feature collection
func ExportToGeoJSON(net *Network, fname string, offset float64) error {
	b, err := PrepareGeoJSONNetwork(net, offset).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert network to GeoJSON")
	}
	if err := os.WriteFile(fname, b, 0644); err != nil {
		return errors.Wrap(err, "Can't write GeoJSON file")
	}
	return nil
}
