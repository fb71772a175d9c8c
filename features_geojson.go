package cyclehighways

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

func readFeaturesGeoJSON(fname string) ([]featureRecord, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read GeoJSON file")
	}
	return decodeFeaturesGeoJSON(data)
}

func decodeFeaturesGeoJSON(data []byte) ([]featureRecord, error) {
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse GeoJSON feature collection")
	}
	features := make([]featureRecord, 0, len(collection.Features))
	for _, feature := range collection.Features {
		record := featureRecord{
			properties: mapProperties(feature.Properties),
		}
		if geom := feature.Geometry; geom != nil {
			switch {
			case geom.IsPoint():
				record.coordinates = [][]float64{geom.Point}
			case geom.IsLineString():
				record.coordinates = geom.LineString
			case geom.IsMultiLineString():
				for _, line := range geom.MultiLineString {
					record.coordinates = append(record.coordinates, line...)
				}
			}
		}
		features = append(features, record)
	}
	return features, nil
}
