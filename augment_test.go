package cyclehighways

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAugmentDuplicatesBikeLinks(t *testing.T) {
	net := prepareTestNetwork(t)
	augmenter := NewAugmenter()

	report, err := augmenter.Augment(net, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.LinksStripped)
	assert.Equal(t, 2, report.LinksDuplicated)
	assert.Equal(t, 0, report.LinksSuppressed)
	assert.Equal(t, []NetworkLinkID{"E1", "E2", "E3", "bike_E1", "bike_E3"}, linkIDs(net))

	original, _ := net.Link("E1")
	assert.Equal(t, "car", original.AllowedAgentTypes().String())

	duplicate, ok := net.Link("bike_E1")
	require.True(t, ok)
	assert.Equal(t, NetworkNodeID("A"), duplicate.SourceNodeID())
	assert.Equal(t, NetworkNodeID("B"), duplicate.TargetNodeID())
	assert.True(t, duplicate.AllowedAgentTypes().Only(AGENT_BIKE))
	assert.InDelta(t, 2.98, duplicate.FreeSpeed(), 1e-9)
	assert.InDelta(t, 100000.0, duplicate.Capacity(), 1e-9)
	assert.InDelta(t, 10.0, duplicate.Lanes(), 1e-9)
	assert.InDelta(t, 100.0, duplicate.Length(), 1e-9)
	assert.Equal(t, BIKE_LINK_UNCHANGED, duplicate.BikeLinkType())

	// Car-only link has no twin
	_, ok = net.Link("bike_E2")
	assert.False(t, ok)

	// Slow bike-only link keeps its own speed and is left with no modes at all
	slow, _ := net.Link("E3")
	assert.Len(t, slow.AllowedAgentTypes(), 0)
	slowDuplicate, _ := net.Link("bike_E3")
	assert.InDelta(t, 2.0, slowDuplicate.FreeSpeed(), 1e-9)
}

func TestAugmentCycleHighway(t *testing.T) {
	net := prepareTestNetwork(t)
	augmenter := NewAugmenter()

	nodes := []NewNodeRecord{
		{ID: "N1", Point: orb.Point{0, 10}},
		{ID: "N2", Point: orb.Point{3, 10}, SelfIntersection: true},
	}
	highways := []NewLinkRecord{
		{ID: "H1", FromID: "N1", ToID: "N2", EuclideanDistance: 3.0},
	}
	report, err := augmenter.Augment(net, nodes, highways, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.NodesAdded)
	assert.Equal(t, 2, report.CycleHighwayLinks)
	assert.Empty(t, report.Warnings)

	forward, ok := net.Link("H1_1")
	require.True(t, ok)
	backward, ok := net.Link("H1_2")
	require.True(t, ok)
	_, ok = net.Link("H1")
	assert.False(t, ok, "Cycle highway record must not produce link with its own identifier")

	assert.Equal(t, NetworkNodeID("N1"), forward.SourceNodeID())
	assert.Equal(t, NetworkNodeID("N2"), forward.TargetNodeID())
	assert.Equal(t, NetworkNodeID("N2"), backward.SourceNodeID())
	assert.Equal(t, NetworkNodeID("N1"), backward.TargetNodeID())
	for _, link := range []*NetworkLink{forward, backward} {
		assert.InDelta(t, 6.2, link.FreeSpeed(), 1e-9)
		assert.InDelta(t, 3.0, link.Length(), 1e-9)
		assert.True(t, link.AllowedAgentTypes().Only(AGENT_BIKE))
		assert.Equal(t, BIKE_LINK_CYCLE_HIGHWAY, link.BikeLinkType())
	}

	// New links are not duplicated within the same run
	_, ok = net.Link("bike_H1_1")
	assert.False(t, ok)
}

func TestAugmentSplit(t *testing.T) {
	net := prepareTestNetwork(t)
	augmenter := NewAugmenter()

	nodes := []NewNodeRecord{
		{ID: "S", Point: orb.Point{50, 0}},
	}
	intersections := []NewLinkRecord{
		{ID: "S1", FromID: "A", ToID: "S", OriginalLinkID: "E1", EuclideanDistance: 50},
		{ID: "S2", FromID: "S", ToID: "B", OriginalLinkID: "E1", EuclideanDistance: 50},
		{ID: "S3", FromID: "C", ToID: "S", OriginalLinkID: "E3", EuclideanDistance: 150},
	}
	report, err := augmenter.Augment(net, nodes, nil, intersections)
	require.NoError(t, err)
	assert.Equal(t, 2, report.LinksSuppressed)
	assert.Equal(t, 0, report.LinksDuplicated)
	assert.Equal(t, 3, report.SplitLinks)

	_, ok := net.Link("bike_E1")
	assert.False(t, ok, "Split link must not be duplicated")
	original, _ := net.Link("E1")
	assert.Equal(t, "car", original.AllowedAgentTypes().String())

	split, ok := net.Link("S1")
	require.True(t, ok)
	assert.InDelta(t, 2.98, split.FreeSpeed(), 1e-9)
	assert.InDelta(t, 50.0, split.Length(), 1e-9)
	assert.Equal(t, BIKE_LINK_SPLIT, split.BikeLinkType())
	assert.True(t, split.AllowedAgentTypes().Only(AGENT_BIKE))

	// Slower original caps split speed
	slowSplit, _ := net.Link("S3")
	assert.InDelta(t, 2.0, slowSplit.FreeSpeed(), 1e-9)
}

func TestAugmentErrors(t *testing.T) {
	t.Run("missing node", func(t *testing.T) {
		net := prepareTestNetwork(t)
		_, err := NewAugmenter().Augment(net, nil, []NewLinkRecord{{ID: "H1", FromID: "A", ToID: "Z", EuclideanDistance: 3}}, nil)
		assert.True(t, errors.Is(err, ErrNodeNotFound), "got %v", err)
	})
	t.Run("missing original link", func(t *testing.T) {
		net := prepareTestNetwork(t)
		_, err := NewAugmenter().Augment(net, nil, nil, []NewLinkRecord{{ID: "S1", FromID: "A", ToID: "B", OriginalLinkID: "E42", EuclideanDistance: 3}})
		assert.True(t, errors.Is(err, ErrLinkNotFound), "got %v", err)
	})
	t.Run("intersection without original link", func(t *testing.T) {
		net := prepareTestNetwork(t)
		_, err := NewAugmenter().Augment(net, nil, nil, []NewLinkRecord{{ID: "S1", FromID: "A", ToID: "B", EuclideanDistance: 3}})
		assert.True(t, errors.Is(err, ErrMissingProperty), "got %v", err)
	})
	t.Run("duplicate node", func(t *testing.T) {
		net := prepareTestNetwork(t)
		_, err := NewAugmenter().Augment(net, []NewNodeRecord{{ID: "A"}}, nil, nil)
		assert.True(t, errors.Is(err, ErrDuplicateNode), "got %v", err)
	})
	t.Run("duplicate link", func(t *testing.T) {
		net := prepareTestNetwork(t)
		// Twin of E1 would collide with existing link
		require.NoError(t, net.AddLink(NewNetworkLink("bike_E1", "A", "B", 1, 1, 1, 1, NewAgentTypes(AGENT_CAR))))
		_, err := NewAugmenter().Augment(net, nil, nil, nil)
		assert.True(t, errors.Is(err, ErrDuplicateLink), "got %v", err)
	})
	t.Run("bad configuration", func(t *testing.T) {
		net := prepareTestNetwork(t)
		_, err := NewAugmenter(WithAverageBikeSpeed(0)).Augment(net, nil, nil, nil)
		assert.Error(t, err)
		link, _ := net.Link("E1")
		assert.True(t, link.Allows(AGENT_BIKE), "Network must not be touched when configuration is invalid")
	})
}

func TestAugmentShortLinkWarning(t *testing.T) {
	net := prepareTestNetwork(t)
	augmenter := NewAugmenter(WithMinLinkLength(1.0))
	highways := []NewLinkRecord{
		{ID: "H1", FromID: "A", ToID: "C", EuclideanDistance: 0.2},
	}
	report, err := augmenter.Augment(net, nil, highways, nil)
	require.NoError(t, err)

	// Short links are still created
	_, ok := net.Link("H1_1")
	assert.True(t, ok)
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, NetworkLinkID("H1_1"), report.Warnings[0].LinkID)
	assert.Equal(t, NetworkLinkID("H1_2"), report.Warnings[1].LinkID)
	assert.InDelta(t, 0.2, report.Warnings[0].Length, 1e-9)
	assert.Equal(t, report.Warnings, augmenter.Warnings())
}

func TestAugmentNonFiniteLengthWarning(t *testing.T) {
	net := prepareTestNetwork(t)
	augmenter := NewAugmenter()
	highways := []NewLinkRecord{
		{ID: "H1", FromID: "A", ToID: "C", EuclideanDistance: math.NaN()},
	}
	report, err := augmenter.Augment(net, nil, highways, nil)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, NetworkLinkID("H1_1"), report.Warnings[0].LinkID)
	assert.True(t, math.IsNaN(report.Warnings[0].Length))
}

func TestDuplicateLinkID(t *testing.T) {
	first := DuplicateLinkID(DEFAULT_DUPLICATE_PREFIX, "E1")
	second := DuplicateLinkID(DEFAULT_DUPLICATE_PREFIX, "E1")
	assert.Equal(t, first, second)
	assert.Equal(t, NetworkLinkID("bike_E1"), first)
	assert.Equal(t, NetworkLinkID("cycle_E1"), DuplicateLinkID("cycle_", "E1"))
}

func TestAugmentOptions(t *testing.T) {
	net := prepareTestNetwork(t)
	augmenter := NewAugmenter(
		WithDuplicatePrefix("cycle_"),
		WithAverageBikeSpeed(4.0),
		WithBikeLinkCapacity(500),
		WithBikeLinkLanes(2),
		WithLogger(nil),
	)
	_, err := augmenter.Augment(net, nil, nil, nil)
	require.NoError(t, err)

	duplicate, ok := net.Link("cycle_E1")
	require.True(t, ok)
	assert.InDelta(t, 4.0, duplicate.FreeSpeed(), 1e-9)
	assert.InDelta(t, 500.0, duplicate.Capacity(), 1e-9)
	assert.InDelta(t, 2.0, duplicate.Lanes(), 1e-9)
}

// prepareRandomNetwork builds network with given number of nodes and random multi-modal links between them
func prepareRandomNetwork(seed int64, nodesNum, linksNum int) *Network {
	rnd := rand.New(rand.NewSource(seed))
	modes := []AgentType{AGENT_CAR, AGENT_BIKE, AGENT_WALK, AGENT_PT}
	net := NewNetwork()
	for i := 0; i < nodesNum; i++ {
		_ = net.AddNode(NewNetworkNode(NetworkNodeID(fmt.Sprintf("n%d", i)), orb.Point{rnd.Float64() * 1000, rnd.Float64() * 1000}))
	}
	for i := 0; i < linksNum; i++ {
		agentTypes := NewAgentTypes()
		for _, mode := range modes {
			if rnd.Intn(2) == 0 {
				agentTypes.Add(mode)
			}
		}
		source := NetworkNodeID(fmt.Sprintf("n%d", rnd.Intn(nodesNum)))
		target := NetworkNodeID(fmt.Sprintf("n%d", rnd.Intn(nodesNum)))
		_ = net.AddLink(NewNetworkLink(NetworkLinkID(fmt.Sprintf("%d", i)), source, target, 1+rnd.Float64()*30, 1000, 1+rnd.Float64()*500, 1, agentTypes))
	}
	return net
}

func TestAugmentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("every bike link gets bike-only twin with capped speed", prop.ForAll(
		func(seed int64, linksNum int) bool {
			net := prepareRandomNetwork(seed, 10, linksNum)
			bikeLinks := make(map[NetworkLinkID]float64)
			for _, link := range net.Links() {
				if link.Allows(AGENT_BIKE) {
					bikeLinks[link.ID] = link.FreeSpeed()
				}
			}
			linksBefore := net.NumLinks()

			report, err := NewAugmenter().Augment(net, nil, nil, nil)
			if err != nil {
				return false
			}
			if net.NumLinks() != linksBefore+len(bikeLinks) || report.LinksDuplicated != len(bikeLinks) {
				return false
			}
			for id, speed := range bikeLinks {
				duplicate, ok := net.Link(DuplicateLinkID(DEFAULT_DUPLICATE_PREFIX, id))
				if !ok || !duplicate.AllowedAgentTypes().Only(AGENT_BIKE) {
					return false
				}
				expected := speed
				if expected > DEFAULT_AVERAGE_BIKE_SPEED {
					expected = DEFAULT_AVERAGE_BIKE_SPEED
				}
				if duplicate.FreeSpeed() != expected {
					return false
				}
			}
			// Bike is never shared with other modes after augmentation
			for _, link := range net.Links() {
				if link.Allows(AGENT_BIKE) && !link.AllowedAgentTypes().Only(AGENT_BIKE) {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 40),
	))

	properties.Property("identical inputs give identical outputs", prop.ForAll(
		func(seed int64) bool {
			first := prepareRandomNetwork(seed, 8, 20)
			second := prepareRandomNetwork(seed, 8, 20)
			if _, err := NewAugmenter().Augment(first, nil, nil, nil); err != nil {
				return false
			}
			if _, err := NewAugmenter().Augment(second, nil, nil, nil); err != nil {
				return false
			}
			var firstXML, secondXML strings.Builder
			if err := EncodeMATSimNetwork(first, &firstXML); err != nil {
				return false
			}
			if err := EncodeMATSimNetwork(second, &secondXML); err != nil {
				return false
			}
			return firstXML.String() == secondXML.String()
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
