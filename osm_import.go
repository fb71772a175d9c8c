package cyclehighways

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const kmhToMs = 1 / 3.6

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// OSMImporter builds a multi-modal base network from OpenStreetMap highways
type OSMImporter struct {
	logger      *zap.Logger
	euclidean   bool
	startLinkID int
	procs       int
}

func NewOSMImporter(options ...func(*OSMImporter)) *OSMImporter {
	importer := &OSMImporter{
		logger:      zap.NewNop(),
		euclidean:   false,
		startLinkID: 0,
		procs:       4,
	}
	for _, option := range options {
		option(importer)
	}
	return importer
}

func WithOSMLogger(logger *zap.Logger) func(*OSMImporter) {
	return func(importer *OSMImporter) {
		if logger != nil {
			importer.logger = logger
		}
	}
}

// WithEuclidean makes importer project node coordinates to EPSG:3857
func WithEuclidean(euclidean bool) func(*OSMImporter) {
	return func(importer *OSMImporter) {
		importer.euclidean = euclidean
	}
}

func WithStartLinkID(startLinkID int) func(*OSMImporter) {
	return func(importer *OSMImporter) {
		importer.startLinkID = startLinkID
	}
}

// ImportFromOSMFile is a shorthand for NewOSMImporter(options...).Import
func ImportFromOSMFile(ctx context.Context, fname string, options ...func(*OSMImporter)) (*Network, error) {
	return NewOSMImporter(options...).Import(ctx, fname)
}

func newOSMScanner(ctx context.Context, fname string, file io.Reader, procs int) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	switch {
	case strings.HasSuffix(fname, ".osm.pbf"), filepath.Ext(fname) == ".pbf":
		return osmpbf.New(ctx, file, procs), nil
	case filepath.Ext(fname) == ".osm", filepath.Ext(fname) == ".xml":
		return osmxml.New(ctx, file), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "File extension '%s' for file '%s' is not handled yet", filepath.Ext(fname), fname)
	}
}

// Import reads the file twice: ways first, then only the nodes those ways reference
func (importer *OSMImporter) Import(ctx context.Context, fname string) (*Network, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open OSM file")
	}
	defer file.Close()

	st := time.Now()
	ways, useCount, err := importer.scanWays(ctx, fname, file)
	if err != nil {
		return nil, errors.Wrap(err, "Can't process ways")
	}
	importer.logger.Info("Ways processed", zap.Int("ways", len(ways)), zap.Duration("elapsed", time.Since(st)))

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	st = time.Now()
	points, err := importer.scanNodes(ctx, fname, file, useCount)
	if err != nil {
		return nil, errors.Wrap(err, "Can't process nodes")
	}
	importer.logger.Info("Nodes processed", zap.Int("nodes", len(points)), zap.Duration("elapsed", time.Since(st)))

	st = time.Now()
	net, err := importer.prepareNetwork(ways, useCount, points)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare network")
	}
	importer.logger.Info("Network prepared", zap.Int("nodes", net.NumNodes()), zap.Int("links", net.NumLinks()), zap.Duration("elapsed", time.Since(st)))
	return net, nil
}

func (importer *OSMImporter) scanWays(ctx context.Context, fname string, file io.Reader) ([]*wayData, map[osm.NodeID]int, error) {
	scanner, err := newOSMScanner(ctx, fname, file, importer.procs)
	if err != nil {
		return nil, nil, err
	}
	defer scanner.Close()

	ways := []*wayData{}
	useCount := make(map[osm.NodeID]int)
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := wayFromOSM(obj.(*osm.Way), importer.logger)
		if !way.isHighway() || way.isPOI() || way.isHighwayPOI() || way.isArea() || way.isHighwayNegligible() {
			continue
		}
		if getHighwayType(way.highway) == HIGHWAY_UNDEFINED {
			importer.logger.Debug("Unhandled `highway` tag value", zap.String("value", way.highway), zap.Int64("way_id", int64(way.ID)))
			continue
		}
		if len(way.Nodes) < 2 {
			importer.logger.Warn("Way with less than two nodes", zap.Int("nodes", len(way.Nodes)), zap.Int64("way_id", int64(way.ID)))
			continue
		}
		for i, nodeID := range way.Nodes {
			useCount[nodeID]++
			// Way ends are always network nodes
			if i == 0 || i == len(way.Nodes)-1 {
				useCount[nodeID]++
			}
		}
		ways = append(ways, way)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return ways, useCount, nil
}

func (importer *OSMImporter) scanNodes(ctx context.Context, fname string, file io.Reader, seen map[osm.NodeID]int) (map[osm.NodeID]orb.Point, error) {
	scanner, err := newOSMScanner(ctx, fname, file, importer.procs)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	points := make(map[osm.NodeID]orb.Point, len(seen))
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := seen[node.ID]; ok {
			points[node.ID] = node.Point()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// prepareNetwork splits ways at nodes shared by several ways and creates a link per segment and direction
func (importer *OSMImporter) prepareNetwork(ways []*wayData, useCount map[osm.NodeID]int, points map[osm.NodeID]orb.Point) (*Network, error) {
	net := NewNetwork()
	linkID := importer.startLinkID
	for _, way := range ways {
		allowed := way.getAllowableAgentTypes()
		if len(allowed) == 0 {
			continue
		}
		missing := false
		for _, nodeID := range way.Nodes {
			if _, ok := points[nodeID]; !ok {
				missing = true
				break
			}
		}
		if missing {
			importer.logger.Warn("Way references nodes out of the extract", zap.Int64("way_id", int64(way.ID)))
			continue
		}

		linkType := linkTypeByHighway[getHighwayType(way.highway)]
		freeSpeed := way.maxSpeed
		if freeSpeed <= 0 {
			freeSpeed = defaultSpeedByLinkType[linkType]
		}
		lanes := way.lanes
		if lanes > 0 && !way.Oneway {
			lanes = int(math.Ceil(float64(lanes) / 2.0))
		}
		if lanes <= 0 {
			lanes = defaultLanesByLinkType[linkType]
		}
		capacity := float64(defaultCapacityByLinkType[linkType] * lanes)

		segmentStart := 0
		for i := 1; i < len(way.Nodes); i++ {
			if useCount[way.Nodes[i]] < 2 && i != len(way.Nodes)-1 {
				continue
			}
			segment := way.Nodes[segmentStart : i+1]
			segmentStart = i
			geom := make(orb.LineString, 0, len(segment))
			for _, nodeID := range segment {
				geom = append(geom, points[nodeID])
			}
			lengthMeters := geo.LengthHaversign(geom)
			source, target := segment[0], segment[len(segment)-1]
			for _, nodeID := range []osm.NodeID{source, target} {
				if _, ok := net.Node(osmNodeID(nodeID)); ok {
					continue
				}
				pt := points[nodeID]
				if importer.euclidean {
					pt = pointToEuclidean(pt)
				}
				node := NewNetworkNode(osmNodeID(nodeID), pt)
				if err := net.AddNode(node); err != nil {
					return nil, err
				}
			}

			directions := [][2]osm.NodeID{{source, target}}
			if way.IsReversed {
				directions = [][2]osm.NodeID{{target, source}}
			} else if !way.Oneway {
				directions = append(directions, [2]osm.NodeID{target, source})
			}
			for _, direction := range directions {
				link := NewNetworkLink(
					NetworkLinkID(strconv.Itoa(linkID)),
					osmNodeID(direction[0]),
					osmNodeID(direction[1]),
					freeSpeed*kmhToMs,
					capacity,
					lengthMeters,
					float64(lanes),
					allowed,
				)
				link.origID = strconv.FormatInt(int64(way.ID), 10)
				link.kind = way.highway
				if err := net.AddLink(link); err != nil {
					return nil, err
				}
				linkID++
			}
		}
	}
	return net, nil
}

func osmNodeID(id osm.NodeID) NetworkNodeID {
	return NetworkNodeID(strconv.FormatInt(int64(id), 10))
}
