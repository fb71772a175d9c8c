package cyclehighways

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/pkg/errors"
)

// dbfFieldNameLength is the longest field name a dBase table can keep
const dbfFieldNameLength = 10

func readFeaturesShapefile(fname string) ([]featureRecord, error) {
	// Attributes live in sidecar table. Reader does not report its absence
	dbfName := strings.TrimSuffix(fname, filepath.Ext(fname)) + ".dbf"
	if _, err := os.Stat(dbfName); err != nil {
		return nil, errors.Wrapf(err, "Can't find attributes table for shapefile '%s'", fname)
	}
	reader, err := shp.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open shapefile '%s'", fname)
	}
	defer reader.Close()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, field := range fields {
		name := strings.TrimRight(field.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	features := make([]featureRecord, 0)
	for reader.Next() {
		_, shape := reader.Shape()
		values := make(map[string]interface{}, len(fieldIdx))
		for name, idx := range fieldIdx {
			value := strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
			if value == "" {
				continue
			}
			values[name] = value
		}
		record := featureRecord{
			properties: shapefileProperties(values),
		}
		switch s := shape.(type) {
		case *shp.Point:
			record.coordinates = [][]float64{{s.X, s.Y}}
		case *shp.PolyLine:
			record.coordinates = make([][]float64, 0, len(s.Points))
			for _, pt := range s.Points {
				record.coordinates = append(record.coordinates, []float64{pt.X, pt.Y})
			}
		}
		features = append(features, record)
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrapf(err, "Can't read shapefile '%s'", fname)
	}
	return features, nil
}

// shapefileProperties matches names case-insensitively. Long names are looked up by their truncated form too,
// e.g. 'euclideanDistance' is stored as 'euclideanD'
func shapefileProperties(values map[string]interface{}) featureProperties {
	return func(name string) (interface{}, bool) {
		key := strings.ToLower(name)
		if value, ok := values[key]; ok {
			return value, true
		}
		if len(key) > dbfFieldNameLength {
			value, ok := values[key[:dbfFieldNameLength]]
			return value, ok
		}
		return nil, false
	}
}
