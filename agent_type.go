package cyclehighways

import (
	"sort"
	"strings"
)

// AgentType is a transport mode tag as it is written in the network file (e.g. "car", "bike")
type AgentType string

const (
	AGENT_CAR       = AgentType("car")
	AGENT_BIKE      = AgentType("bike")
	AGENT_WALK      = AgentType("walk")
	AGENT_PT        = AgentType("pt")
	AGENT_UNDEFINED = AgentType("")
)

func (agentType AgentType) String() string {
	return string(agentType)
}

// AgentTypes is a set of allowed transport modes
type AgentTypes map[AgentType]struct{}

// NewAgentTypes returns set of given agent types
func NewAgentTypes(agentTypes ...AgentType) AgentTypes {
	set := make(AgentTypes, len(agentTypes))
	for _, agentType := range agentTypes {
		set.Add(agentType)
	}
	return set
}

// ParseAgentTypes parses comma separated list of modes. Empty entries are ignored
func ParseAgentTypes(str string) AgentTypes {
	set := make(AgentTypes)
	for _, part := range strings.Split(str, ",") {
		set.Add(AgentType(strings.TrimSpace(part)))
	}
	return set
}

func (set AgentTypes) Add(agentType AgentType) {
	if agentType == AGENT_UNDEFINED {
		return
	}
	set[agentType] = struct{}{}
}

func (set AgentTypes) Remove(agentType AgentType) {
	delete(set, agentType)
}

func (set AgentTypes) Has(agentType AgentType) bool {
	_, ok := set[agentType]
	return ok
}

// Only reports whether set contains exactly the given agent type
func (set AgentTypes) Only(agentType AgentType) bool {
	return len(set) == 1 && set.Has(agentType)
}

func (set AgentTypes) Clone() AgentTypes {
	cloned := make(AgentTypes, len(set))
	for agentType := range set {
		cloned[agentType] = struct{}{}
	}
	return cloned
}

// Sorted returns agent types in lexicographical order
func (set AgentTypes) Sorted() []AgentType {
	sorted := make([]AgentType, 0, len(set))
	for agentType := range set {
		sorted = append(sorted, agentType)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	return sorted
}

func (set AgentTypes) String() string {
	sorted := set.Sorted()
	parts := make([]string, len(sorted))
	for i, agentType := range sorted {
		parts[i] = string(agentType)
	}
	return strings.Join(parts, ",")
}

var (
	// agentTypesOSM are the agent types the OSM importer derives from way tags
	agentTypesOSM = []AgentType{AGENT_CAR, AGENT_BIKE, AGENT_WALK}

	agentsAccessIncludeValues = map[AgentType]map[AccessType]map[string]struct{}{
		AGENT_CAR: {
			ACCESS_MOTOR_VEHICLE: {
				"yes": struct{}{},
			},
			ACCESS_MOTORCAR: {
				"yes": struct{}{},
			},
		},
		AGENT_BIKE: {
			ACCESS_BICYCLE: {
				"yes":        struct{}{},
				"designated": struct{}{},
			},
		},
		AGENT_WALK: {
			ACCESS_FOOT: {
				"yes":        struct{}{},
				"designated": struct{}{},
			},
		},
	}

	agentsAccessExcludeValues = map[AgentType]map[AccessType]map[string]struct{}{
		AGENT_CAR: {
			ACCESS_HIGHWAY: {
				"cycleway":      struct{}{},
				"footway":       struct{}{},
				"pedestrian":    struct{}{},
				"steps":         struct{}{},
				"track":         struct{}{},
				"corridor":      struct{}{},
				"elevator":      struct{}{},
				"escalator":     struct{}{},
				"service":       struct{}{},
				"living_street": struct{}{},
			},
			ACCESS_MOTOR_VEHICLE: {
				"no": struct{}{},
			},
			ACCESS_MOTORCAR: {
				"no": struct{}{},
			},
			ACCESS_OSM_ACCESS: {
				"private": struct{}{},
				"no":      struct{}{},
			},
			ACCESS_SERVICE: {
				"parking":          struct{}{},
				"parking_aisle":    struct{}{},
				"driveway":         struct{}{},
				"private":          struct{}{},
				"emergency_access": struct{}{},
			},
		},
		AGENT_BIKE: {
			ACCESS_HIGHWAY: {
				"footway":       struct{}{},
				"steps":         struct{}{},
				"corridor":      struct{}{},
				"elevator":      struct{}{},
				"escalator":     struct{}{},
				"motor":         struct{}{},
				"motorway":      struct{}{},
				"motorway_link": struct{}{},
			},
			ACCESS_BICYCLE: {
				"no": struct{}{},
			},
			ACCESS_SERVICE: {
				"private": struct{}{},
			},
			ACCESS_OSM_ACCESS: {
				"private": struct{}{},
				"no":      struct{}{},
			},
		},
		AGENT_WALK: {
			ACCESS_HIGHWAY: {
				"cycleway":      struct{}{},
				"motor":         struct{}{},
				"motorway":      struct{}{},
				"motorway_link": struct{}{},
			},
			ACCESS_FOOT: {
				"no": struct{}{},
			},
			ACCESS_SERVICE: {
				"private": struct{}{},
			},
			ACCESS_OSM_ACCESS: {
				"private": struct{}{},
				"no":      struct{}{},
			},
		},
	}
)
