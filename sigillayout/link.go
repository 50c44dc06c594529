package sigillayout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/sigilfigure"
)

func (l *layouter) link(f *sigilfigure.Link, path string) (*Link, error) {
	items, err := l.list(f.Items, path+".items")
	if err != nil {
		return nil, err
	}
	n := &Link{
		Stroke: f.Stroke,
		Items:  items,
	}
	if len(items) == 0 {
		return n, nil
	}

	radii := make([]float64, len(items))
	maxR := 0.
	for i, it := range items {
		radii[i] = Boundary(it).OuterRadius()
		maxR = math.Max(maxR, radii[i])
	}
	n.StrokeWidth = l.cfg.StrokeRatio * maxR
	if len(items) == 1 {
		return n, nil
	}

	ring := linkRingRadius(radii, l.cfg.LinkGapRatio*maxR)
	centers := make([]r2.Vec, len(items))
	for i, it := range items {
		centers[i] = geo.Polar(ring, linkAngle(i, len(items)))
		Translate(it, centers[i])
	}

	pairs := len(items)
	if pairs == 2 {
		pairs = 1
	}
	for i := 0; i < pairs; i++ {
		j := (i + 1) % len(items)
		from := linkEndpoint(items[i], centers[i], centers[j])
		to := linkEndpoint(items[j], centers[j], centers[i])
		n.Segments = append(n.Segments, geo.NewSegment(from, to))
	}
	return n, nil
}

func linkAngle(i, n int) float64 {
	return LinkBaseAngle + float64(i)*2*math.Pi/float64(n)
}

// linkRingRadius is the smallest ring on which neighbouring items, spread at
// equal angles, stay at least gap apart.
func linkRingRadius(radii []float64, gap float64) float64 {
	n := len(radii)
	chord := 2 * math.Sin(math.Pi/float64(n))
	ring := 0.
	for i := range radii {
		need := radii[i] + radii[(i+1)%n] + gap
		ring = math.Max(ring, need/chord)
	}
	return ring
}

// linkEndpoint is where the line from center toward other leaves the boundary
// of item, projected onto that line.
func linkEndpoint(item Node, center, other r2.Vec) r2.Vec {
	d := r2.Sub(other, center)
	if r2.Norm(d) == 0 {
		return center
	}
	u := r2.Unit(d)
	support := Boundary(item).OuterRadiusAt(math.Atan2(u.Y, u.X))
	return r2.Add(center, r2.Scale(support-r2.Dot(center, u), u))
}
