// Package sigillayout turns a figure tree into a tree of positioned layout
// nodes. Every node is built centered on the origin and sized from its
// children's boundaries, leaves first.
package sigillayout

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cdr.dev/slog"
	"gonum.org/v1/gonum/spatial/r2"
	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/lib/log"
	"oss.terrastruct.com/sigil/sigilfigure"
)

// TextMeasurer returns one rectangle per line of text. Rectangles are
// centered on x=0 and offset vertically by their line's position.
type TextMeasurer interface {
	MeasureLines(text string, fontSize float64) []*geo.Rect
}

var ErrMissingContent = errors.New("missing content")

// ErrNoExtent is returned for a circle whose content has zero radius but
// which still carries rim items: there is no ring to place them on.
var ErrNoExtent = errors.New("content has no extent to place rim items around")

// Layout lays out f. A nil cfg means DefaultConfig. The context only carries the logger.
func Layout(ctx context.Context, f sigilfigure.Figure, ruler TextMeasurer, cfg *Config) (n Node, err error) {
	defer xdefer.Errorf(&err, "failed to lay out figure")

	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	if f == nil {
		return nil, fmt.Errorf("figure: %w", ErrMissingContent)
	}
	l := &layouter{
		ctx:   ctx,
		cfg:   cfg,
		ruler: ruler,
	}
	return l.layout(f, string(f.Kind()))
}

type layouter struct {
	ctx   context.Context
	cfg   *Config
	ruler TextMeasurer
}

func (l *layouter) layout(f sigilfigure.Figure, path string) (n Node, err error) {
	switch f := f.(type) {
	case *sigilfigure.Symbol:
		n = l.symbol(f)
	case *sigilfigure.Phrase:
		n = l.phrase(f)
	case *sigilfigure.Pentagram:
		n, err = l.pentagram(f, path)
	case *sigilfigure.Circle:
		n, err = l.circle(f, path)
	case *sigilfigure.RegularPolygon:
		n, err = l.regularPolygon(f, path)
	case *sigilfigure.Decorated:
		n, err = l.decorated(f, path)
	case *sigilfigure.Emphasized:
		n, err = l.emphasized(f, path)
	case *sigilfigure.Link:
		n, err = l.link(f, path)
	case *sigilfigure.Arrangement:
		n, err = l.arrangement(f, path)
	default:
		return nil, fmt.Errorf("%s: unknown figure type %T", path, f)
	}
	if err != nil {
		return nil, err
	}
	log.Debug(l.ctx, "laid out node",
		slog.F("path", path),
		slog.F("kind", n.Kind()),
		slog.F("radius", Boundary(n).OuterRadius()),
	)
	return n, nil
}

func (l *layouter) content(f sigilfigure.Figure, path string) (Node, error) {
	if f == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingContent)
	}
	return l.layout(f, path+".content")
}

func (l *layouter) list(fs []sigilfigure.Figure, path string) ([]Node, error) {
	nodes := make([]Node, 0, len(fs))
	for i, f := range fs {
		p := fmt.Sprintf("%s[%d]", path, i)
		if f == nil {
			return nil, fmt.Errorf("%s: %w", p, ErrMissingContent)
		}
		n, err := l.layout(f, p)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// textLines measures text and centers the block of lines on the origin.
func (l *layouter) textLines(text string, fontSize float64) []*geo.Rect {
	lines := l.ruler.MeasureLines(text, fontSize)
	if len(lines) == 0 {
		return lines
	}
	block := union(rects(lines))
	xr, yr := block.OuterCoordsRange()
	center := r2.Vec{X: xr.Center(), Y: yr.Center()}
	for _, line := range lines {
		line.Translate(r2.Scale(-1, center))
	}
	return lines
}

func (l *layouter) symbol(f *sigilfigure.Symbol) *Symbol {
	return &Symbol{
		Text:     f.Text,
		FontSize: l.cfg.SymbolFontSize,
		Lines:    l.textLines(f.Text, l.cfg.SymbolFontSize),
	}
}

func (l *layouter) phrase(f *sigilfigure.Phrase) *Phrase {
	return &Phrase{
		Text:     f.Text,
		FontSize: l.cfg.PhraseFontSize,
		Lines:    l.textLines(f.Text, l.cfg.PhraseFontSize),
	}
}

func (l *layouter) pentagram(f *sigilfigure.Pentagram, path string) (*Pentagram, error) {
	content, err := l.content(f.Content, path)
	if err != nil {
		return nil, err
	}
	inner, err := geo.WrapRegularPolygon(Boundary(content), 5, PentagramInnerRotation, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	star, err := geo.NewRegularPolygon(r2.Vec{}, 5, inner.Radius*l.cfg.PentagramRatio, inner.Rotation+PentagramTwist)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Scale(content, l.cfg.ContentScale)
	return &Pentagram{
		Star:        star,
		Inner:       inner,
		StrokeWidth: l.cfg.StrokeRatio * star.Radius,
		Content:     content,
	}, nil
}

func (l *layouter) circle(f *sigilfigure.Circle, path string) (*Circle, error) {
	content, err := l.content(f.Content, path)
	if err != nil {
		return nil, err
	}
	rim, err := l.list(f.Rim, path+".rim")
	if err != nil {
		return nil, err
	}

	contentR := Boundary(content).OuterRadius()
	if contentR <= 0 && len(rim) > 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoExtent)
	}
	maxRim := 0.
	for _, r := range rim {
		maxRim = math.Max(maxRim, Boundary(r).OuterRadius())
	}
	if maxRim > contentR/l.cfg.MaxRimRatio {
		k := maxRim * l.cfg.MaxRimRatio / contentR
		Scale(content, k)
		contentR *= k
	}

	inner := geo.WrapCircle(Boundary(content), l.cfg.CirclePadding*contentR)
	ringRatio := 1.
	if f.Double {
		ringRatio = l.cfg.DoubleRingRatio
	}
	outer := geo.NewCircle(inner.Offset, inner.Radius*ringRatio)

	n := &Circle{
		Inner:       inner,
		Outer:       outer,
		Double:      f.Double,
		Stroke:      f.Stroke,
		Pattern:     f.Pattern,
		StrokeWidth: l.cfg.StrokeRatio * outer.Radius,
		Content:     content,
	}
	if len(rim) > 0 {
		n.Rim = l.placeRim(rim, inner.Radius, outer.Radius)
	}

	Scale(content, l.cfg.ContentScale)
	return n, nil
}

// placeRim spreads rim items evenly around the anchor ring, each turned to
// face outward and pushed out until at most the allowed overlap reaches
// inside the ring.
func (l *layouter) placeRim(rim []Node, innerR, outerR float64) []*RimItem {
	anchor := innerR + AnchorRingFraction*(outerR-innerR)

	minR := l.cfg.MinRimRatio * anchor
	for _, r := range rim {
		radius := Boundary(r).OuterRadius()
		if radius > 0 && radius < minR {
			Scale(r, minR/radius)
		}
	}

	overlap := l.cfg.RimOverlapRatio * innerR
	seg := 2 * math.Pi / float64(len(rim))
	items := make([]*RimItem, len(rim))
	for i, r := range rim {
		angle := RimBaseAngle + float64(i)*seg
		Rotate(r, rimFacing-angle)
		inward := Boundary(r).OuterRadiusAt(angle + math.Pi)
		Translate(r, geo.Polar(anchor+math.Max(0, inward-overlap), angle))
		items[i] = &RimItem{
			Angle: angle,
			Node:  r,
		}
	}
	return items
}

func (l *layouter) regularPolygon(f *sigilfigure.RegularPolygon, path string) (*RegularPolygon, error) {
	if f.Sides < 3 {
		return nil, fmt.Errorf("%s: %w: got %d", path, geo.ErrTooFewSides, f.Sides)
	}
	content, err := l.content(f.Content, path)
	if err != nil {
		return nil, err
	}
	shape, err := geo.WrapRegularPolygon(Boundary(content), f.Sides, PolygonBaseRotation, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Scale(content, l.cfg.ContentScale)
	return &RegularPolygon{
		Shape:       shape,
		Stroke:      f.Stroke,
		StrokeWidth: l.cfg.StrokeRatio * shape.Radius,
		Content:     content,
	}, nil
}

func (l *layouter) decorated(f *sigilfigure.Decorated, path string) (*Decorated, error) {
	spec, ok := l.cfg.Decorations.For(f.Decoration)
	if !ok {
		return nil, fmt.Errorf("%s: unknown decoration %q", path, f.Decoration)
	}
	content, err := l.content(f.Content, path)
	if err != nil {
		return nil, err
	}
	r := Boundary(content).OuterRadius()
	marker := geo.NewRect(r2.Vec{}, spec.WidthRatio*r, spec.HeightRatio*r, spec.Angle+math.Pi/2)
	marker.Translate(geo.Polar(l.cfg.DecorationOffsetRatio*r, spec.Angle))
	return &Decorated{
		Decoration: f.Decoration,
		Marker:     marker,
		Content:    content,
	}, nil
}

func (l *layouter) emphasized(f *sigilfigure.Emphasized, path string) (*Emphasized, error) {
	ratio, ok := l.cfg.emphasisRatio(f.Emphasis)
	if !ok {
		return nil, fmt.Errorf("%s: unknown emphasis %q", path, f.Emphasis)
	}
	content, err := l.content(f.Content, path)
	if err != nil {
		return nil, err
	}
	ring := geo.WrapCircle(Boundary(content), 0)
	ring.Scale(ratio)
	return &Emphasized{
		Emphasis:    f.Emphasis,
		Ring:        ring,
		StrokeWidth: l.cfg.StrokeRatio * ring.Radius,
		Content:     content,
	}, nil
}

func (l *layouter) arrangement(f *sigilfigure.Arrangement, path string) (*Arrangement, error) {
	items, err := l.list(f.Items, path+".items")
	if err != nil {
		return nil, err
	}
	return &Arrangement{Items: items}, nil
}
