package sigiltarget

import (
	"fmt"
	"math"
	"strings"

	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/sigillayout"
)

// Export flattens a positioned layout tree into a Diagram. Enclosures come
// before what they enclose.
func Export(root sigillayout.Node) *Diagram {
	e := &exporter{
		diagram: &Diagram{
			Shapes: []Shape{},
		},
		xr: geo.Range{Min: math.Inf(1), Max: math.Inf(-1)},
		yr: geo.Range{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	if root != nil {
		e.export(root, string(root.Kind()))
	}
	if len(e.diagram.Shapes) > 0 {
		e.diagram.Bounds = Bounds{X: e.xr, Y: e.yr}
	}
	return e.diagram
}

type exporter struct {
	diagram *Diagram
	path    string
	xr, yr  geo.Range
}

func (e *exporter) export(n sigillayout.Node, path string) {
	prev := e.path
	e.path = path
	sigillayout.Accept(n, e)
	e.path = prev
}

func (e *exporter) child(n sigillayout.Node, suffix string) {
	e.export(n, e.path+suffix)
}

func (e *exporter) items(nodes []sigillayout.Node, field string) {
	for i, n := range nodes {
		e.child(n, fmt.Sprintf(".%s[%d]", field, i))
	}
}

// add appends s and grows the bounds by g plus half the stroke.
func (e *exporter) add(s Shape, g geo.OuterShape) {
	s.ID = e.path
	e.diagram.Shapes = append(e.diagram.Shapes, s)

	half := s.StrokeWidth / 2
	xr, yr := g.OuterCoordsRange()
	e.xr = e.xr.Union(geo.Range{Min: xr.Min - half, Max: xr.Max + half})
	e.yr = e.yr.Union(geo.Range{Min: yr.Min - half, Max: yr.Max + half})
}

func circleShape(c *geo.Circle) Shape {
	return Shape{
		Type:   ShapeCircle,
		Center: NewPoint(c.Offset),
		Radius: c.Radius,
	}
}

func polygonShape(p *geo.RegularPolygon, order []int) Shape {
	vs := p.Vertices()
	points := make([]Point, len(order))
	for i, j := range order {
		points[i] = NewPoint(vs[j])
	}
	return Shape{
		Type:     ShapePolygon,
		Center:   NewPoint(p.Offset),
		Radius:   p.Radius,
		Rotation: p.Rotation,
		Points:   points,
	}
}

func rectShape(r *geo.Rect) Shape {
	return Shape{
		Type:     ShapeRect,
		Center:   NewPoint(r.Offset),
		Width:    r.Width,
		Height:   r.Height,
		Rotation: r.Rotation,
	}
}

// sequential visits every vertex in order; pentagram visits every other one.
func sequential(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func pentagram() []int {
	return []int{0, 2, 4, 1, 3}
}

func (e *exporter) textLines(n sigillayout.Node, text string, fontSize float64, lines []*geo.Rect) {
	texts := strings.Split(text, "\n")
	for i, l := range lines {
		s := rectShape(l)
		s.Type = ShapeTextLine
		s.Kind = n.Kind()
		s.Role = RoleText
		s.FontSize = fontSize
		if i < len(texts) {
			s.Text = texts[i]
		}
		e.add(s, l)
	}
}

func (e *exporter) VisitSymbol(n *sigillayout.Symbol) {
	e.textLines(n, n.Text, n.FontSize, n.Lines)
}

func (e *exporter) VisitPhrase(n *sigillayout.Phrase) {
	e.textLines(n, n.Text, n.FontSize, n.Lines)
}

func (e *exporter) VisitPentagram(n *sigillayout.Pentagram) {
	s := polygonShape(n.Star, pentagram())
	s.Kind = n.Kind()
	s.Role = RoleStar
	s.StrokeWidth = n.StrokeWidth
	e.add(s, n.Star)
	e.child(n.Content, ".content")
}

func (e *exporter) VisitCircle(n *sigillayout.Circle) {
	rings := []*geo.Circle{n.Inner}
	roles := []string{RoleRing}
	if n.Double {
		rings = append(rings, n.Outer)
		roles = []string{RoleInner, RoleOuter}
	}
	for i, c := range rings {
		s := circleShape(c)
		s.Kind = n.Kind()
		s.Role = roles[i]
		s.StrokeWidth = n.StrokeWidth
		s.Stroke = n.Stroke
		s.Pattern = n.Pattern
		e.add(s, c)
	}
	e.child(n.Content, ".content")
	for i, r := range n.Rim {
		e.child(r.Node, fmt.Sprintf(".rim[%d]", i))
	}
}

func (e *exporter) VisitRegularPolygon(n *sigillayout.RegularPolygon) {
	s := polygonShape(n.Shape, sequential(n.Shape.Sides))
	s.Kind = n.Kind()
	s.Role = RoleBorder
	s.StrokeWidth = n.StrokeWidth
	s.Stroke = n.Stroke
	e.add(s, n.Shape)
	e.child(n.Content, ".content")
}

func (e *exporter) VisitDecorated(n *sigillayout.Decorated) {
	e.child(n.Content, ".content")
	s := rectShape(n.Marker)
	s.Kind = n.Kind()
	s.Role = RoleMarker
	s.Decoration = n.Decoration
	e.add(s, n.Marker)
}

func (e *exporter) VisitEmphasized(n *sigillayout.Emphasized) {
	s := circleShape(n.Ring)
	s.Kind = n.Kind()
	s.Role = RoleRing
	s.StrokeWidth = n.StrokeWidth
	s.Emphasis = n.Emphasis
	e.add(s, n.Ring)
	e.child(n.Content, ".content")
}

func (e *exporter) VisitLink(n *sigillayout.Link) {
	for _, seg := range n.Segments {
		e.add(Shape{
			Kind:        n.Kind(),
			Type:        ShapeSegment,
			Role:        RoleLink,
			Center:      NewPoint(seg.Midpoint()),
			Points:      []Point{NewPoint(seg.Start), NewPoint(seg.End)},
			StrokeWidth: n.StrokeWidth,
			Stroke:      n.Stroke,
		}, seg)
	}
	e.items(n.Items, "items")
}

func (e *exporter) VisitArrangement(n *sigillayout.Arrangement) {
	e.items(n.Items, "items")
}
