package cyclehighways

import (
	"regexp"
	"strconv"

	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

const mphToKmh = 1.609344

type wayData struct {
	ID           osm.WayID
	Nodes        []osm.NodeID
	highway      string
	junction     string
	area         string
	motorVehicle string
	access       string
	motorcar     string
	service      string
	foot         string
	bicycle      string
	building     string
	amenity      string
	leisure      string
	lanes        int
	maxSpeed     float64
	Oneway       bool
	IsReversed   bool
}

var (
	mphRegExp   = regexp.MustCompile(`\d+\.?\d* mph`)
	speedRegExp = regexp.MustCompile(`\d+\.?\d*`)
	lanesRegExp = regexp.MustCompile(`\d+`)
)

func wayFromOSM(way *osm.Way, logger *zap.Logger) *wayData {
	prepared := &wayData{
		ID:       way.ID,
		Nodes:    make([]osm.NodeID, 0, len(way.Nodes)),
		lanes:    -1,
		maxSpeed: -1.0,
	}
	for _, node := range way.Nodes {
		prepared.Nodes = append(prepared.Nodes, node.ID)
	}
	prepared.processTags(way.Tags, logger)
	return prepared
}

func (way *wayData) processTags(tags osm.Tags, logger *zap.Logger) {
	way.highway = tags.Find("highway")
	way.junction = tags.Find("junction")
	way.area = tags.Find("area")
	way.motorVehicle = tags.Find("motor_vehicle")
	way.access = tags.Find("access")
	way.motorcar = tags.Find("motorcar")
	way.service = tags.Find("service")
	way.foot = tags.Find("foot")
	way.bicycle = tags.Find("bicycle")
	way.building = tags.Find("building")
	way.amenity = tags.Find("amenity")
	way.leisure = tags.Find("leisure")

	if lanes := tags.Find("lanes"); lanes != "" {
		lanesNum := lanesRegExp.FindString(lanes)
		value, err := strconv.Atoi(lanesNum)
		if err != nil {
			logger.Warn("Provided `lanes` tag value should be an integer", zap.String("value", lanes), zap.Int64("way_id", int64(way.ID)))
		} else {
			way.lanes = value
		}
	}

	if maxSpeed := tags.Find("maxspeed"); maxSpeed != "" {
		multiplier := 1.0
		if mphRegExp.MatchString(maxSpeed) {
			multiplier = mphToKmh
		}
		value, err := strconv.ParseFloat(speedRegExp.FindString(maxSpeed), 64)
		if err != nil {
			logger.Debug("Provided `maxspeed` tag value is not numeric", zap.String("value", maxSpeed), zap.Int64("way_id", int64(way.ID)))
		} else {
			way.maxSpeed = value * multiplier
		}
	}

	onewayText := tags.Find("oneway")
	switch onewayText {
	case "yes", "1", "true":
		way.Oneway = true
	case "-1":
		way.Oneway = true
		way.IsReversed = true
	case "no", "0", "false":
		way.Oneway = false
	case "":
		_, isJunction := junctionTypes[way.junction]
		way.Oneway = isJunction || way.highway == "motorway"
	default:
		// Reversible or alternating depend on time conditions, treat them as two-way
		if _, found := onewayReversible[onewayText]; !found {
			logger.Warn("Unhandled `oneway` tag value", zap.String("value", onewayText), zap.Int64("way_id", int64(way.ID)))
		}
	}
}

func (way *wayData) isPOI() bool {
	return way.building != "" || way.amenity != "" || way.leisure != ""
}

func (way *wayData) isHighway() bool {
	return way.highway != ""
}

func (way *wayData) isHighwayPOI() bool {
	_, ok := poiHighwayTags[way.highway]
	return ok
}

func (way *wayData) isHighwayNegligible() bool {
	_, ok := negligibleHighwayTags[way.highway]
	return ok
}

func (way *wayData) isArea() bool {
	return way.area != "" && way.area != "no"
}

func (way *wayData) findIncludedAgent(agentType AgentType) bool {
	accessType, ok := agentsAccessIncludeValues[agentType]
	if !ok {
		return false
	}
	switch agentType {
	case AGENT_CAR:
		// Check `motor_vehicle`
		if _, ok := accessType[ACCESS_MOTOR_VEHICLE][way.motorVehicle]; ok {
			return true
		}
		// Check `motorcar`
		if _, ok := accessType[ACCESS_MOTORCAR][way.motorcar]; ok {
			return true
		}
	case AGENT_BIKE:
		// Check `bicycle`
		if _, ok := accessType[ACCESS_BICYCLE][way.bicycle]; ok {
			return true
		}
	case AGENT_WALK:
		// Check `foot`
		if _, ok := accessType[ACCESS_FOOT][way.foot]; ok {
			return true
		}
	}
	return false
}

// findExcludedAgent returns false when some tag forbids agent type on the way
func (way *wayData) findExcludedAgent(agentType AgentType) bool {
	accessType, ok := agentsAccessExcludeValues[agentType]
	if !ok {
		return true
	}
	if _, ok := accessType[ACCESS_HIGHWAY][way.highway]; ok {
		return false
	}
	if _, ok := accessType[ACCESS_OSM_ACCESS][way.access]; ok {
		return false
	}
	if _, ok := accessType[ACCESS_SERVICE][way.service]; ok {
		return false
	}
	switch agentType {
	case AGENT_CAR:
		if _, ok := accessType[ACCESS_MOTOR_VEHICLE][way.motorVehicle]; ok {
			return false
		}
		if _, ok := accessType[ACCESS_MOTORCAR][way.motorcar]; ok {
			return false
		}
	case AGENT_BIKE:
		if _, ok := accessType[ACCESS_BICYCLE][way.bicycle]; ok {
			return false
		}
	case AGENT_WALK:
		if _, ok := accessType[ACCESS_FOOT][way.foot]; ok {
			return false
		}
	}
	return true
}

func (way *wayData) getAllowableAgentTypes() AgentTypes {
	allowedAgents := make(AgentTypes)
	for _, agentType := range agentTypesOSM {
		if way.findIncludedAgent(agentType) || way.findExcludedAgent(agentType) {
			allowedAgents.Add(agentType)
		}
	}
	return allowedAgents
}
