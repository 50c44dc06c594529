package sigillayout

import (
	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/sigilfigure"
)

// Node is a positioned layout node. Every node owns its geometry and its
// children exclusively. The set of node kinds is closed: it is sealed by an
// unexported method and dispatched with Visitor.
type Node interface {
	Kind() sigilfigure.Kind
	accept(Visitor)
}

// Visitor has one method per node kind. Adding a kind breaks every Visitor
// until it handles the new kind.
type Visitor interface {
	VisitSymbol(*Symbol)
	VisitPhrase(*Phrase)
	VisitPentagram(*Pentagram)
	VisitCircle(*Circle)
	VisitRegularPolygon(*RegularPolygon)
	VisitDecorated(*Decorated)
	VisitEmphasized(*Emphasized)
	VisitLink(*Link)
	VisitArrangement(*Arrangement)
}

// Accept dispatches n to the matching method of v.
func Accept(n Node, v Visitor) {
	n.accept(v)
}

type Symbol struct {
	Text     string
	FontSize float64
	// Lines holds one rectangle per line of text.
	Lines []*geo.Rect
}

type Phrase struct {
	Text     string
	FontSize float64
	Lines    []*geo.Rect
}

type Pentagram struct {
	// Star is the pentagon through the star's outer points.
	Star *geo.RegularPolygon
	// Inner is the pentagon enclosing the content.
	Inner       *geo.RegularPolygon
	StrokeWidth float64
	Content     Node
}

type Circle struct {
	Inner       *geo.Circle
	Outer       *geo.Circle
	Double      bool
	Stroke      sigilfigure.StrokePattern
	Pattern     sigilfigure.CirclePattern
	StrokeWidth float64
	Content     Node
	Rim         []*RimItem
}

// RimItem is a rim child and the angle, from the circle's center, it was placed at.
type RimItem struct {
	Angle float64
	Node  Node
}

type RegularPolygon struct {
	Shape       *geo.RegularPolygon
	Stroke      sigilfigure.StrokePattern
	StrokeWidth float64
	Content     Node
}

type Decorated struct {
	Decoration sigilfigure.DecorationKind
	Marker     *geo.Rect
	Content    Node
}

type Emphasized struct {
	Emphasis    sigilfigure.EmphasisKind
	Ring        *geo.Circle
	StrokeWidth float64
	Content     Node
}

type Link struct {
	Stroke      sigilfigure.StrokePattern
	StrokeWidth float64
	Items       []Node
	// Segments join consecutive items, boundary to boundary.
	Segments []*geo.Segment
}

type Arrangement struct {
	Items []Node
}

func (*Symbol) Kind() sigilfigure.Kind         { return sigilfigure.KindSymbol }
func (*Phrase) Kind() sigilfigure.Kind         { return sigilfigure.KindPhrase }
func (*Pentagram) Kind() sigilfigure.Kind      { return sigilfigure.KindPentagram }
func (*Circle) Kind() sigilfigure.Kind         { return sigilfigure.KindCircle }
func (*RegularPolygon) Kind() sigilfigure.Kind { return sigilfigure.KindRegularPolygon }
func (*Decorated) Kind() sigilfigure.Kind      { return sigilfigure.KindDecorated }
func (*Emphasized) Kind() sigilfigure.Kind     { return sigilfigure.KindEmphasized }
func (*Link) Kind() sigilfigure.Kind           { return sigilfigure.KindLink }
func (*Arrangement) Kind() sigilfigure.Kind    { return sigilfigure.KindArrangement }

func (n *Symbol) accept(v Visitor)         { v.VisitSymbol(n) }
func (n *Phrase) accept(v Visitor)         { v.VisitPhrase(n) }
func (n *Pentagram) accept(v Visitor)      { v.VisitPentagram(n) }
func (n *Circle) accept(v Visitor)         { v.VisitCircle(n) }
func (n *RegularPolygon) accept(v Visitor) { v.VisitRegularPolygon(n) }
func (n *Decorated) accept(v Visitor)      { v.VisitDecorated(n) }
func (n *Emphasized) accept(v Visitor)     { v.VisitEmphasized(n) }
func (n *Link) accept(v Visitor)           { v.VisitLink(n) }
func (n *Arrangement) accept(v Visitor)    { v.VisitArrangement(n) }
