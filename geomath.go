package cyclehighways

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// intersect returns intersection point of lines going through segments p1-p2 and p3-p4.
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}
	return orb.Point{(b2*c1 - b1*c2) / det, (a1*c2 - a2*c1) / det}, nil
}

// offsetCurve shifts line by given distance. Positive distance moves line to the left of its direction,
// negative one moves it to the right. Zero-length segments are skipped
func offsetCurve(line orb.LineString, distance float64) orb.LineString {
	segments := make([][2]orb.Point, 0, len(line))
	for i := 1; i < len(line); i++ {
		p1, p2 := line[i-1], line[i]
		dx, dy := p2[0]-p1[0], p2[1]-p1[1]
		vecLen := math.Sqrt(dx*dx + dy*dy)
		if vecLen == 0 {
			continue
		}
		// Unit normal rotated by 90 degrees counterclockwise
		offsetX, offsetY := -dy/vecLen*distance, dx/vecLen*distance
		segments = append(segments, [2]orb.Point{
			{p1[0] + offsetX, p1[1] + offsetY},
			{p2[0] + offsetX, p2[1] + offsetY},
		})
	}
	if len(segments) == 0 {
		return append(orb.LineString{}, line...)
	}

	result := orb.LineString{segments[0][0]}
	for i := 1; i < len(segments); i++ {
		joint, err := intersect(segments[i-1][0], segments[i-1][1], segments[i][0], segments[i][1])
		if err != nil {
			// Collinear segments share the offset point
			joint = segments[i][0]
		}
		result = append(result, joint)
	}
	return append(result, segments[len(segments)-1][1])
}
