// Package sigilfigure defines the figure tree: the abstract description of a
// diagram before any geometry is decided.
package sigilfigure

type Kind string

const (
	KindSymbol         Kind = "symbol"
	KindPhrase         Kind = "phrase"
	KindPentagram      Kind = "pentagram"
	KindCircle         Kind = "circle"
	KindRegularPolygon Kind = "regular_polygon"
	KindDecorated      Kind = "decorated"
	KindEmphasized     Kind = "emphasized"
	KindLink           Kind = "link"
	KindArrangement    Kind = "arrangement"
)

var Kinds = []Kind{
	KindSymbol,
	KindPhrase,
	KindPentagram,
	KindCircle,
	KindRegularPolygon,
	KindDecorated,
	KindEmphasized,
	KindLink,
	KindArrangement,
}

type StrokePattern string

const (
	StrokeLine  StrokePattern = "line"
	StrokeChain StrokePattern = "chain"
)

var StrokePatterns = []StrokePattern{StrokeLine, StrokeChain}

type CirclePattern string

const (
	PatternNone            CirclePattern = "none"
	PatternConcentricLines CirclePattern = "concentric_lines"
	PatternStrokeTriangles CirclePattern = "stroke_triangles"
	PatternFillTriangles   CirclePattern = "fill_triangles"
	PatternDots            CirclePattern = "dots"
	PatternRunes           CirclePattern = "runes"
	PatternRings           CirclePattern = "rings"
)

var CirclePatterns = []CirclePattern{
	PatternNone,
	PatternConcentricLines,
	PatternStrokeTriangles,
	PatternFillTriangles,
	PatternDots,
	PatternRunes,
	PatternRings,
}

type DecorationKind string

const (
	DecorationTilde DecorationKind = "tilde"
	DecorationHat   DecorationKind = "hat"
	DecorationRays  DecorationKind = "rays"
)

var DecorationKinds = []DecorationKind{DecorationTilde, DecorationHat, DecorationRays}

type EmphasisKind string

const (
	EmphasisSubtle EmphasisKind = "subtle"
	EmphasisStrong EmphasisKind = "strong"
)

var EmphasisKinds = []EmphasisKind{EmphasisSubtle, EmphasisStrong}

// Figure is one node of the figure tree. The set of implementations is closed.
type Figure interface {
	Kind() Kind
}

// Symbol is a single identifier drawn large.
type Symbol struct {
	Text string
}

// Phrase is a block of text, one or more lines.
type Phrase struct {
	Text string
}

// Pentagram encloses its content in a five pointed star.
type Pentagram struct {
	Content Figure
}

// Circle encloses its content in a ring and arranges the rim figures around it.
type Circle struct {
	Double  bool
	Stroke  StrokePattern
	Pattern CirclePattern
	Rim     []Figure
	Content Figure
}

type RegularPolygon struct {
	Sides   int
	Stroke  StrokePattern
	Content Figure
}

// Decorated places a small marker next to its content.
type Decorated struct {
	Decoration DecorationKind
	Content    Figure
}

// Emphasized encloses its content in an enlarged circle.
type Emphasized struct {
	Emphasis EmphasisKind
	Content  Figure
}

// Link chains its items with line segments.
type Link struct {
	Stroke StrokePattern
	Items  []Figure
}

// Arrangement groups independent figures without placing them.
type Arrangement struct {
	Items []Figure
}

func (*Symbol) Kind() Kind         { return KindSymbol }
func (*Phrase) Kind() Kind         { return KindPhrase }
func (*Pentagram) Kind() Kind      { return KindPentagram }
func (*Circle) Kind() Kind         { return KindCircle }
func (*RegularPolygon) Kind() Kind { return KindRegularPolygon }
func (*Decorated) Kind() Kind      { return KindDecorated }
func (*Emphasized) Kind() Kind     { return KindEmphasized }
func (*Link) Kind() Kind           { return KindLink }
func (*Arrangement) Kind() Kind    { return KindArrangement }

// Children returns the direct children of f in a stable order.
func Children(f Figure) []Figure {
	switch f := f.(type) {
	case *Pentagram:
		return nonNil(f.Content)
	case *Circle:
		return append(nonNil(f.Content), f.Rim...)
	case *RegularPolygon:
		return nonNil(f.Content)
	case *Decorated:
		return nonNil(f.Content)
	case *Emphasized:
		return nonNil(f.Content)
	case *Link:
		return f.Items
	case *Arrangement:
		return f.Items
	}
	return nil
}

func nonNil(f Figure) []Figure {
	if f == nil {
		return nil
	}
	return []Figure{f}
}

// Count returns the number of figures in the tree rooted at f.
func Count(f Figure) int {
	if f == nil {
		return 0
	}
	n := 1
	for _, c := range Children(f) {
		n += Count(c)
	}
	return n
}
