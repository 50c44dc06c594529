package sigillayout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
)

// Boundary returns the outer boundary of n. The result shares geometry with
// n: query it, and transform the node rather than the boundary.
func Boundary(n Node) geo.OuterShape {
	return boundary(n)
}

func boundary(n Node) geo.Shape {
	b := &boundaryVisitor{}
	n.accept(b)
	return b.shape
}

type boundaryVisitor struct {
	shape geo.Shape
}

func union(shapes []geo.Shape) geo.Shape {
	switch len(shapes) {
	case 0:
		return geo.NewCircle(r2.Vec{}, 0)
	case 1:
		return shapes[0]
	}
	return &geo.Composite{Parts: shapes}
}

func rects(lines []*geo.Rect) []geo.Shape {
	shapes := make([]geo.Shape, len(lines))
	for i, l := range lines {
		shapes[i] = l
	}
	return shapes
}

func boundaries(nodes []Node) []geo.Shape {
	shapes := make([]geo.Shape, 0, len(nodes))
	for _, n := range nodes {
		shapes = append(shapes, boundary(n))
	}
	return shapes
}

func (b *boundaryVisitor) VisitSymbol(n *Symbol) {
	b.shape = union(rects(n.Lines))
}

func (b *boundaryVisitor) VisitPhrase(n *Phrase) {
	b.shape = union(rects(n.Lines))
}

func (b *boundaryVisitor) VisitPentagram(n *Pentagram) {
	b.shape = n.Star
}

func (b *boundaryVisitor) VisitCircle(n *Circle) {
	shapes := []geo.Shape{n.Outer}
	for _, r := range n.Rim {
		shapes = append(shapes, boundary(r.Node))
	}
	b.shape = union(shapes)
}

func (b *boundaryVisitor) VisitRegularPolygon(n *RegularPolygon) {
	b.shape = n.Shape
}

func (b *boundaryVisitor) VisitDecorated(n *Decorated) {
	b.shape = union([]geo.Shape{boundary(n.Content), n.Marker})
}

func (b *boundaryVisitor) VisitEmphasized(n *Emphasized) {
	b.shape = n.Ring
}

func (b *boundaryVisitor) VisitLink(n *Link) {
	b.shape = union(boundaries(n.Items))
}

func (b *boundaryVisitor) VisitArrangement(n *Arrangement) {
	b.shape = union(boundaries(n.Items))
}
