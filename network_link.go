package cyclehighways

/* Links stuff */
type NetworkLinkID string

type NetworkLink struct {
	ID                NetworkLinkID
	sourceNodeID      NetworkNodeID
	targetNodeID      NetworkNodeID
	lengthMeters      float64
	freeSpeed         float64
	capacity          float64
	lanes             float64
	oneway            bool
	origID            string
	kind              string
	allowedAgentTypes AgentTypes
	bikeLinkType      BikeLinkType
	attributes        []Attribute
}

// NewNetworkLink returns one-way link between two nodes
func NewNetworkLink(id NetworkLinkID, sourceNodeID, targetNodeID NetworkNodeID, freeSpeed, capacity, lengthMeters, lanes float64, agentTypes AgentTypes) *NetworkLink {
	return &NetworkLink{
		ID:                id,
		sourceNodeID:      sourceNodeID,
		targetNodeID:      targetNodeID,
		lengthMeters:      lengthMeters,
		freeSpeed:         freeSpeed,
		capacity:          capacity,
		lanes:             lanes,
		oneway:            true,
		allowedAgentTypes: agentTypes.Clone(),
		bikeLinkType:      BIKE_LINK_NONE,
	}
}

func (link *NetworkLink) SourceNodeID() NetworkNodeID {
	return link.sourceNodeID
}

func (link *NetworkLink) TargetNodeID() NetworkNodeID {
	return link.targetNodeID
}

func (link *NetworkLink) Length() float64 {
	return link.lengthMeters
}

func (link *NetworkLink) FreeSpeed() float64 {
	return link.freeSpeed
}

func (link *NetworkLink) Capacity() float64 {
	return link.capacity
}

func (link *NetworkLink) Lanes() float64 {
	return link.lanes
}

// AllowedAgentTypes returns a copy of modes allowed on the link
func (link *NetworkLink) AllowedAgentTypes() AgentTypes {
	return link.allowedAgentTypes.Clone()
}

func (link *NetworkLink) Allows(agentType AgentType) bool {
	return link.allowedAgentTypes.Has(agentType)
}

// Disallow narrows allowed modes. It is the only mutation permitted on a link after insertion
func (link *NetworkLink) Disallow(agentType AgentType) {
	link.allowedAgentTypes.Remove(agentType)
}

func (link *NetworkLink) BikeLinkType() BikeLinkType {
	return link.bikeLinkType
}

func (link *NetworkLink) Attributes() []Attribute {
	return link.attributes
}

func (link *NetworkLink) clone() *NetworkLink {
	cloned := *link
	cloned.allowedAgentTypes = link.allowedAgentTypes.Clone()
	cloned.attributes = append([]Attribute(nil), link.attributes...)
	return &cloned
}
