package cyclehighways

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Names of feature properties produced by the geospatial analysis
const (
	PROPERTY_ID                 = "id"
	PROPERTY_FROM_ID            = "fromID"
	PROPERTY_TO_ID              = "toID"
	PROPERTY_ORIGINAL_LINK_ID   = "originalLinkID"
	PROPERTY_EUCLIDEAN_DISTANCE = "euclideanDistance"
	PROPERTY_SELF_INTERSECTION  = "selfIntersection"
)

// featureRecord is a decoded vector feature independent of the source file format
type featureRecord struct {
	properties  featureProperties
	coordinates [][]float64
}

// featureProperties looks up a property by its name
type featureProperties func(name string) (interface{}, bool)

func mapProperties(properties map[string]interface{}) featureProperties {
	return func(name string) (interface{}, bool) {
		value, ok := properties[name]
		if !ok || value == nil {
			return nil, false
		}
		return value, true
	}
}

// readFeatures picks decoder by file extension
func readFeatures(fname string) ([]featureRecord, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	switch ext {
	case ".geojson", ".json":
		return readFeaturesGeoJSON(fname)
	case ".shp":
		return readFeaturesShapefile(fname)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "File extension '%s' for file '%s' is not handled yet", ext, fname)
	}
}

// ReadNewNodes reads nodes to be added to the network
func ReadNewNodes(fname string) ([]NewNodeRecord, error) {
	features, err := readFeatures(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read new nodes")
	}
	nodes := make([]NewNodeRecord, 0, len(features))
	for i := range features {
		node, err := newNodeFromFeature(&features[i])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad node feature #%d in '%s'", i, fname)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ReadCycleHighways reads links of new cycle highways. Property 'originalLinkID' is ignored
func ReadCycleHighways(fname string) ([]NewLinkRecord, error) {
	return readNewLinks(fname, false)
}

// ReadNetworkIntersections reads links splitting existing network links. Property 'originalLinkID' is mandatory
func ReadNetworkIntersections(fname string) ([]NewLinkRecord, error) {
	return readNewLinks(fname, true)
}

func readNewLinks(fname string, withOriginal bool) ([]NewLinkRecord, error) {
	features, err := readFeatures(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read new links")
	}
	links := make([]NewLinkRecord, 0, len(features))
	for i := range features {
		link, err := newLinkFromFeature(&features[i], withOriginal)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad link feature #%d in '%s'", i, fname)
		}
		links = append(links, link)
	}
	return links, nil
}

func newNodeFromFeature(feature *featureRecord) (NewNodeRecord, error) {
	id, err := propertyText(feature.properties, PROPERTY_ID)
	if err != nil {
		return NewNodeRecord{}, err
	}
	if len(feature.coordinates) == 0 || len(feature.coordinates[0]) < 2 {
		return NewNodeRecord{}, fmt.Errorf("Node '%s' has no point geometry", id)
	}
	// Missing flag means the point is not a self-intersection
	selfIntersection, err := propertyBool(feature.properties, PROPERTY_SELF_INTERSECTION)
	if err != nil && !errors.Is(err, ErrMissingProperty) {
		return NewNodeRecord{}, err
	}
	return NewNodeRecord{
		ID:               NetworkNodeID(id),
		SelfIntersection: selfIntersection,
		Point:            orb.Point{feature.coordinates[0][0], feature.coordinates[0][1]},
	}, nil
}

func newLinkFromFeature(feature *featureRecord, withOriginal bool) (NewLinkRecord, error) {
	id, err := propertyText(feature.properties, PROPERTY_ID)
	if err != nil {
		return NewLinkRecord{}, err
	}
	fromID, err := propertyText(feature.properties, PROPERTY_FROM_ID)
	if err != nil {
		return NewLinkRecord{}, errors.Wrapf(err, "Link '%s'", id)
	}
	toID, err := propertyText(feature.properties, PROPERTY_TO_ID)
	if err != nil {
		return NewLinkRecord{}, errors.Wrapf(err, "Link '%s'", id)
	}
	distance, err := propertyFloat(feature.properties, PROPERTY_EUCLIDEAN_DISTANCE)
	if err != nil {
		return NewLinkRecord{}, errors.Wrapf(err, "Link '%s'", id)
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return NewLinkRecord{}, fmt.Errorf("Link '%s' has non-finite '%s': %v", id, PROPERTY_EUCLIDEAN_DISTANCE, distance)
	}
	record := NewLinkRecord{
		ID:                NetworkLinkID(id),
		FromID:            NetworkNodeID(fromID),
		ToID:              NetworkNodeID(toID),
		EuclideanDistance: distance,
		Line:              make(orb.LineString, 0, len(feature.coordinates)),
	}
	for _, pair := range feature.coordinates {
		if len(pair) < 2 {
			continue
		}
		record.Line = append(record.Line, orb.Point{pair[0], pair[1]})
	}
	if withOriginal {
		originalID, err := propertyText(feature.properties, PROPERTY_ORIGINAL_LINK_ID)
		if err != nil {
			return NewLinkRecord{}, errors.Wrapf(err, "Link '%s'", id)
		}
		record.OriginalLinkID = NetworkLinkID(originalID)
	}
	return record, nil
}

// propertyText renders property as text. Integral numbers are printed without fraction
func propertyText(properties featureProperties, name string) (string, error) {
	value, ok := properties(name)
	if !ok {
		return "", errors.Wrapf(ErrMissingProperty, "'%s'", name)
	}
	var text string
	switch v := value.(type) {
	case string:
		text = strings.TrimSpace(v)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		text = strconv.Itoa(v)
	case bool:
		text = strconv.FormatBool(v)
	default:
		text = fmt.Sprintf("%v", v)
	}
	if text == "" {
		return "", errors.Wrapf(ErrMissingProperty, "'%s' is empty", name)
	}
	return text, nil
}

func propertyFloat(properties featureProperties, name string) (float64, error) {
	value, ok := properties(name)
	if !ok {
		return 0, errors.Wrapf(ErrMissingProperty, "'%s'", name)
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "Property '%s' should be a number", name)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("Property '%s' should be a number. Got '%v'", name, v)
	}
}

func propertyBool(properties featureProperties, name string) (bool, error) {
	value, ok := properties(name)
	if !ok {
		return false, errors.Wrapf(ErrMissingProperty, "'%s'", name)
	}
	switch v := value.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case string:
		// DBF logical fields hold T/F or Y/N
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "T", "Y", "TRUE", "YES", "1":
			return true, nil
		case "F", "N", "FALSE", "NO", "0", "", "?":
			return false, nil
		}
		return false, fmt.Errorf("Property '%s' should be a boolean. Got '%s'", name, v)
	default:
		return false, fmt.Errorf("Property '%s' should be a boolean. Got '%v'", name, v)
	}
}
