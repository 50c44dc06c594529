// Package sigiltarget is the flat drawing list handed to renderers. Every
// shape carries absolute geometry, so a renderer never has to walk the
// layout tree.
package sigiltarget

import (
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/sigilfigure"
)

type ShapeType string

const (
	ShapeCircle   ShapeType = "circle"
	ShapePolygon  ShapeType = "polygon"
	ShapeRect     ShapeType = "rect"
	ShapeSegment  ShapeType = "segment"
	ShapeTextLine ShapeType = "text_line"
)

// Roles name what a shape is to the figure that owns it.
const (
	RoleRing   = "ring"
	RoleInner  = "inner"
	RoleOuter  = "outer"
	RoleStar   = "star"
	RoleBorder = "border"
	RoleMarker = "marker"
	RoleLink   = "link"
	RoleText   = "text"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

type Shape struct {
	// ID is the path of the owning figure, e.g. circle.rim[2].content.
	ID   string           `json:"id"`
	Kind sigilfigure.Kind `json:"kind"`
	Type ShapeType        `json:"type"`
	Role string           `json:"role"`

	Center   Point   `json:"center"`
	Radius   float64 `json:"radius,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	// Points holds polygon vertices in drawing order, or a segment's two ends.
	Points []Point `json:"points,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	StrokeWidth float64                    `json:"strokeWidth"`
	Stroke      sigilfigure.StrokePattern  `json:"stroke,omitempty"`
	Pattern     sigilfigure.CirclePattern  `json:"pattern,omitempty"`
	Decoration  sigilfigure.DecorationKind `json:"decoration,omitempty"`
	Emphasis    sigilfigure.EmphasisKind   `json:"emphasis,omitempty"`
}

type Bounds struct {
	X geo.Range `json:"x"`
	Y geo.Range `json:"y"`
}

func (b Bounds) Width() float64 {
	return b.X.Size()
}

func (b Bounds) Height() float64 {
	return b.Y.Size()
}

func (b Bounds) Box() r2.Box {
	return geo.Box(b.X, b.Y)
}

type Diagram struct {
	Shapes []Shape `json:"shapes"`
	// Bounds covers every shape including half its stroke.
	Bounds Bounds `json:"bounds"`
}

// ShapesOfType returns the shapes of type t in drawing order.
func (d *Diagram) ShapesOfType(t ShapeType) []Shape {
	var shapes []Shape
	for _, s := range d.Shapes {
		if s.Type == t {
			shapes = append(shapes, s)
		}
	}
	return shapes
}
