package sigillayout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
)

// parts collects the geometry a node owns directly and its direct children.
type parts struct {
	shapes   []geo.Transformable
	children []Node
}

func (p *parts) VisitSymbol(n *Symbol) {
	for _, l := range n.Lines {
		p.shapes = append(p.shapes, l)
	}
}

func (p *parts) VisitPhrase(n *Phrase) {
	for _, l := range n.Lines {
		p.shapes = append(p.shapes, l)
	}
}

func (p *parts) VisitPentagram(n *Pentagram) {
	p.shapes = append(p.shapes, n.Star, n.Inner)
	p.children = append(p.children, n.Content)
}

func (p *parts) VisitCircle(n *Circle) {
	p.shapes = append(p.shapes, n.Inner, n.Outer)
	p.children = append(p.children, n.Content)
	for _, r := range n.Rim {
		p.children = append(p.children, r.Node)
	}
}

func (p *parts) VisitRegularPolygon(n *RegularPolygon) {
	p.shapes = append(p.shapes, n.Shape)
	p.children = append(p.children, n.Content)
}

func (p *parts) VisitDecorated(n *Decorated) {
	p.shapes = append(p.shapes, n.Marker)
	p.children = append(p.children, n.Content)
}

func (p *parts) VisitEmphasized(n *Emphasized) {
	p.shapes = append(p.shapes, n.Ring)
	p.children = append(p.children, n.Content)
}

func (p *parts) VisitLink(n *Link) {
	for _, s := range n.Segments {
		p.shapes = append(p.shapes, s)
	}
	p.children = append(p.children, n.Items...)
}

func (p *parts) VisitArrangement(n *Arrangement) {
	p.children = append(p.children, n.Items...)
}

func partsOf(n Node) *parts {
	p := &parts{}
	n.accept(p)
	return p
}

// Children returns the direct children of n in a stable order: content first, then rim or items.
func Children(n Node) []Node {
	return partsOf(n).children
}

// Walk visits n and its subtree depth first, parents before children. If fn
// returns false the node's children are skipped.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

func transform(n Node, fn func(geo.Transformable)) {
	Walk(n, func(n Node) bool {
		for _, s := range partsOf(n).shapes {
			fn(s)
		}
		return true
	})
}

// Translate moves n and everything it owns by delta.
func Translate(n Node, delta r2.Vec) {
	transform(n, func(s geo.Transformable) {
		s.Translate(delta)
	})
}

// Rotate turns the frame of n and everything it owns by angle, with the same
// sign convention as geo.Shape.Rotate. Rim placement angles follow along.
func Rotate(n Node, angle float64) {
	transform(n, func(s geo.Transformable) {
		s.Rotate(angle)
	})
	Walk(n, func(n Node) bool {
		if c, ok := n.(*Circle); ok {
			for _, r := range c.Rim {
				r.Angle -= angle
			}
		}
		return true
	})
}

// Scale scales n and everything it owns about the origin.
func Scale(n Node, factor float64) {
	transform(n, func(s geo.Transformable) {
		s.Scale(factor)
	})
}
