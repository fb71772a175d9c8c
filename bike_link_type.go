package cyclehighways

// BikeLinkType records why a bike-only link has been created
type BikeLinkType uint16

const (
	BIKE_LINK_UNCHANGED = BikeLinkType(iota + 1)
	BIKE_LINK_SPLIT
	BIKE_LINK_CYCLE_HIGHWAY
	BIKE_LINK_NONE = BikeLinkType(0)
)

// BikeLinkTypeAttribute is the name of link attribute holding BikeLinkType in network files
const BikeLinkTypeAttribute = "bikeLinkType"

func (iotaIdx BikeLinkType) String() string {
	return [...]string{"", "unchanged", "split", "cycleHighway"}[iotaIdx]
}

func getBikeLinkType(str string) BikeLinkType {
	if found, ok := bikeLinkTypes[str]; ok {
		return found
	}
	return BIKE_LINK_NONE
}

var (
	bikeLinkTypes = map[string]BikeLinkType{
		"unchanged":    BIKE_LINK_UNCHANGED,
		"split":        BIKE_LINK_SPLIT,
		"cycleHighway": BIKE_LINK_CYCLE_HIGHWAY,
	}
)
