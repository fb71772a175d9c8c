package cyclehighways

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	matsimNetworkDoctype = `<!DOCTYPE network SYSTEM "http://www.matsim.org/files/dtd/network_v2.dtd">`
	matsimStringClass    = "java.lang.String"
)

type matsimAttributeXML struct {
	Name  string `xml:"name,attr"`
	Class string `xml:"class,attr"`
	Value string `xml:",chardata"`
}

type matsimAttributesXML struct {
	Attributes []matsimAttributeXML `xml:"attribute"`
}

type matsimNodeXML struct {
	ID         string               `xml:"id,attr"`
	X          string               `xml:"x,attr"`
	Y          string               `xml:"y,attr"`
	Type       string               `xml:"type,attr,omitempty"`
	OrigID     string               `xml:"origid,attr,omitempty"`
	Attributes *matsimAttributesXML `xml:"attributes,omitempty"`
}

type matsimLinkXML struct {
	ID         string               `xml:"id,attr"`
	From       string               `xml:"from,attr"`
	To         string               `xml:"to,attr"`
	Length     string               `xml:"length,attr"`
	FreeSpeed  string               `xml:"freespeed,attr"`
	Capacity   string               `xml:"capacity,attr"`
	PermLanes  string               `xml:"permlanes,attr"`
	Oneway     string               `xml:"oneway,attr"`
	Modes      string               `xml:"modes,attr"`
	OrigID     string               `xml:"origid,attr,omitempty"`
	Type       string               `xml:"type,attr,omitempty"`
	Attributes *matsimAttributesXML `xml:"attributes,omitempty"`
}

// ReadMATSimNetwork reads network in MATSim XML format. Files ending with '.gz' are gunzipped on the fly
func ReadMATSimNetwork(fname string) (*Network, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open network file")
	}
	defer file.Close()

	var reader io.Reader = bufio.NewReader(file)
	if strings.HasSuffix(fname, ".gz") {
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, errors.Wrap(err, "Can't open gzip stream")
		}
		defer gzipReader.Close()
		reader = gzipReader
	}
	net, err := DecodeMATSimNetwork(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read network '%s'", fname)
	}
	return net, nil
}

// DecodeMATSimNetwork reads network elements one by one, so the whole document is never held in memory
func DecodeMATSimNetwork(reader io.Reader) (*Network, error) {
	net := NewNetwork()
	decoder := xml.NewDecoder(reader)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Can't parse XML")
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "network":
			net.name = findXMLAttr(start.Attr, "name")
		case "attributes":
			// Node and link attributes are consumed along with their owners
			attrs := matsimAttributesXML{}
			if err := decoder.DecodeElement(&attrs, &start); err != nil {
				return nil, errors.Wrap(err, "Can't parse network attributes")
			}
			net.attributes = attributesFromXML(&attrs)
		case "links":
			if capPeriod := findXMLAttr(start.Attr, "capperiod"); capPeriod != "" {
				net.capacityPeriod = capPeriod
			}
			if cellSize := findXMLAttr(start.Attr, "effectivecellsize"); cellSize != "" {
				if net.effectiveCellSize, err = strconv.ParseFloat(cellSize, 64); err != nil {
					return nil, errors.Wrap(err, "Bad 'effectivecellsize'")
				}
			}
			if laneWidth := findXMLAttr(start.Attr, "effectivelanewidth"); laneWidth != "" {
				if net.effectiveLaneWidth, err = strconv.ParseFloat(laneWidth, 64); err != nil {
					return nil, errors.Wrap(err, "Bad 'effectivelanewidth'")
				}
			}
		case "node":
			nodeXML := matsimNodeXML{}
			if err := decoder.DecodeElement(&nodeXML, &start); err != nil {
				return nil, errors.Wrap(err, "Can't parse node")
			}
			node, err := nodeFromXML(&nodeXML)
			if err != nil {
				return nil, err
			}
			if err := net.AddNode(node); err != nil {
				return nil, err
			}
		case "link":
			linkXML := matsimLinkXML{}
			if err := decoder.DecodeElement(&linkXML, &start); err != nil {
				return nil, errors.Wrap(err, "Can't parse link")
			}
			link, err := linkFromXML(&linkXML)
			if err != nil {
				return nil, err
			}
			if err := net.AddLink(link); err != nil {
				return nil, err
			}
		}
	}
	return net, nil
}

func nodeFromXML(nodeXML *matsimNodeXML) (*NetworkNode, error) {
	x, err := strconv.ParseFloat(nodeXML.X, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad 'x' for node '%s'", nodeXML.ID)
	}
	y, err := strconv.ParseFloat(nodeXML.Y, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad 'y' for node '%s'", nodeXML.ID)
	}
	node := NewNetworkNode(NetworkNodeID(nodeXML.ID), orb.Point{x, y})
	node.kind = nodeXML.Type
	node.origID = nodeXML.OrigID
	node.attributes = attributesFromXML(nodeXML.Attributes)
	return node, nil
}

func linkFromXML(linkXML *matsimLinkXML) (*NetworkLink, error) {
	values := make([]float64, 4)
	for i, field := range []struct {
		name  string
		value string
	}{
		{"length", linkXML.Length},
		{"freespeed", linkXML.FreeSpeed},
		{"capacity", linkXML.Capacity},
		{"permlanes", linkXML.PermLanes},
	} {
		value, err := strconv.ParseFloat(field.value, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad '%s' for link '%s'", field.name, linkXML.ID)
		}
		values[i] = value
	}
	link := NewNetworkLink(
		NetworkLinkID(linkXML.ID),
		NetworkNodeID(linkXML.From),
		NetworkNodeID(linkXML.To),
		values[1],
		values[2],
		values[0],
		values[3],
		ParseAgentTypes(linkXML.Modes),
	)
	link.oneway = linkXML.Oneway != "0"
	link.origID = linkXML.OrigID
	link.kind = linkXML.Type
	for _, attr := range attributesFromXML(linkXML.Attributes) {
		if attr.Name == BikeLinkTypeAttribute {
			link.bikeLinkType = getBikeLinkType(attr.Value)
			continue
		}
		link.attributes = append(link.attributes, attr)
	}
	return link, nil
}

// WriteMATSimNetwork writes network in MATSim XML format. Files ending with '.gz' are gzipped
func WriteMATSimNetwork(net *Network, fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create network file")
	}
	defer file.Close()

	buffered := bufio.NewWriter(file)
	var writer io.Writer = buffered
	var gzipWriter *gzip.Writer
	if strings.HasSuffix(fname, ".gz") {
		gzipWriter = gzip.NewWriter(buffered)
		writer = gzipWriter
	}
	if err := EncodeMATSimNetwork(net, writer); err != nil {
		return errors.Wrapf(err, "Can't write network '%s'", fname)
	}
	if gzipWriter != nil {
		if err := gzipWriter.Close(); err != nil {
			return errors.Wrap(err, "Can't close gzip stream")
		}
	}
	if err := buffered.Flush(); err != nil {
		return errors.Wrap(err, "Can't flush network file")
	}
	return file.Close()
}

// EncodeMATSimNetwork writes nodes and links in insertion order
func EncodeMATSimNetwork(net *Network, writer io.Writer) error {
	if _, err := io.WriteString(writer, xml.Header+matsimNetworkDoctype+"\n"); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "\t")

	networkStart := xml.StartElement{Name: xml.Name{Local: "network"}}
	if net.name != "" {
		networkStart.Attr = append(networkStart.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: net.name})
	}
	if err := encoder.EncodeToken(networkStart); err != nil {
		return errors.Wrap(err, "Can't write network")
	}
	if attrs := attributesToXML(net.attributes); attrs != nil {
		if err := encoder.EncodeElement(attrs, xml.StartElement{Name: xml.Name{Local: "attributes"}}); err != nil {
			return errors.Wrap(err, "Can't write network attributes")
		}
	}

	nodesStart := xml.StartElement{Name: xml.Name{Local: "nodes"}}
	if err := encoder.EncodeToken(nodesStart); err != nil {
		return errors.Wrap(err, "Can't write nodes")
	}
	for _, node := range net.Nodes() {
		nodeXML := matsimNodeXML{
			ID:         string(node.ID),
			X:          formatFloat(node.geom.X()),
			Y:          formatFloat(node.geom.Y()),
			Type:       node.kind,
			OrigID:     node.origID,
			Attributes: attributesToXML(node.attributes),
		}
		if err := encoder.EncodeElement(nodeXML, xml.StartElement{Name: xml.Name{Local: "node"}}); err != nil {
			return errors.Wrapf(err, "Can't write node '%s'", node.ID)
		}
	}
	if err := encoder.EncodeToken(nodesStart.End()); err != nil {
		return errors.Wrap(err, "Can't write nodes")
	}

	linksStart := xml.StartElement{
		Name: xml.Name{Local: "links"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "capperiod"}, Value: net.capacityPeriod},
			{Name: xml.Name{Local: "effectivecellsize"}, Value: formatFloat(net.effectiveCellSize)},
			{Name: xml.Name{Local: "effectivelanewidth"}, Value: formatFloat(net.effectiveLaneWidth)},
		},
	}
	if err := encoder.EncodeToken(linksStart); err != nil {
		return errors.Wrap(err, "Can't write links")
	}
	for _, link := range net.Links() {
		oneway := "1"
		if !link.oneway {
			oneway = "0"
		}
		attributes := link.attributes
		if link.bikeLinkType != BIKE_LINK_NONE {
			attributes = append(append([]Attribute(nil), attributes...), Attribute{
				Name:  BikeLinkTypeAttribute,
				Class: matsimStringClass,
				Value: link.bikeLinkType.String(),
			})
		}
		linkXML := matsimLinkXML{
			ID:         string(link.ID),
			From:       string(link.sourceNodeID),
			To:         string(link.targetNodeID),
			Length:     formatFloat(link.lengthMeters),
			FreeSpeed:  formatFloat(link.freeSpeed),
			Capacity:   formatFloat(link.capacity),
			PermLanes:  formatFloat(link.lanes),
			Oneway:     oneway,
			Modes:      link.allowedAgentTypes.String(),
			OrigID:     link.origID,
			Type:       link.kind,
			Attributes: attributesToXML(attributes),
		}
		if err := encoder.EncodeElement(linkXML, xml.StartElement{Name: xml.Name{Local: "link"}}); err != nil {
			return errors.Wrapf(err, "Can't write link '%s'", link.ID)
		}
	}
	if err := encoder.EncodeToken(linksStart.End()); err != nil {
		return errors.Wrap(err, "Can't write links")
	}
	if err := encoder.EncodeToken(networkStart.End()); err != nil {
		return errors.Wrap(err, "Can't write network")
	}
	return encoder.Flush()
}

func findXMLAttr(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func attributesFromXML(attrs *matsimAttributesXML) []Attribute {
	if attrs == nil || len(attrs.Attributes) == 0 {
		return nil
	}
	result := make([]Attribute, len(attrs.Attributes))
	for i, attr := range attrs.Attributes {
		result[i] = Attribute{Name: attr.Name, Class: attr.Class, Value: attr.Value}
	}
	return result
}

func attributesToXML(attrs []Attribute) *matsimAttributesXML {
	if len(attrs) == 0 {
		return nil
	}
	result := &matsimAttributesXML{Attributes: make([]matsimAttributeXML, len(attrs))}
	for i, attr := range attrs {
		class := attr.Class
		if class == "" {
			class = matsimStringClass
		}
		result.Attributes[i] = matsimAttributeXML{Name: attr.Name, Class: class, Value: attr.Value}
	}
	return result
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
