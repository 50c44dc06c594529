package sigillayout_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/lib/log"
	"oss.terrastruct.com/sigil/sigilfigure"
	"oss.terrastruct.com/sigil/sigillayout"
)

// fakeRuler measures every line as a square whose corners sit at the radius
// named by the line's text. Unknown lines get radius 1.
type fakeRuler map[string]float64

func (fr fakeRuler) MeasureLines(text string, fontSize float64) []*geo.Rect {
	var lines []*geo.Rect
	for i, line := range strings.Split(text, "\n") {
		r, ok := fr[line]
		if !ok {
			r = 1
		}
		side := r * math.Sqrt2
		lines = append(lines, geo.NewRect(r2.Vec{Y: float64(i) * side}, side, side, 0))
	}
	return lines
}

var ruler = fakeRuler{
	"ten":  10,
	"five": 5,
	"one":  1,
}

func sym(text string) *sigilfigure.Symbol {
	return &sigilfigure.Symbol{Text: text}
}

func layout(t *testing.T, f sigilfigure.Figure) sigillayout.Node {
	t.Helper()
	ctx := log.WithTB(context.Background(), t, nil)
	n, err := sigillayout.Layout(ctx, f, ruler, nil)
	require.NoError(t, err)
	return n
}

func boxCenter(s geo.OuterShape) r2.Vec {
	xr, yr := s.OuterCoordsRange()
	return r2.Vec{X: xr.Center(), Y: yr.Center()}
}

func TestSymbol(t *testing.T) {
	t.Parallel()

	n := layout(t, sym("ten"))
	s, ok := n.(*sigillayout.Symbol)
	require.True(t, ok)
	assert.Equal(t, sigillayout.DefaultConfig().SymbolFontSize, s.FontSize)
	assert.Len(t, s.Lines, 1)
	assert.InDelta(t, 10, sigillayout.Boundary(n).OuterRadius(), geo.PRECISION)

	p := layout(t, &sigilfigure.Phrase{Text: "ten\nten\nten"}).(*sigillayout.Phrase)
	assert.Len(t, p.Lines, 3)
	c := boxCenter(sigillayout.Boundary(p))
	assert.InDelta(t, 0, c.X, geo.PRECISION)
	assert.InDelta(t, 0, c.Y, geo.PRECISION)
	assert.InDelta(t, 0, p.Lines[1].Offset.Y, geo.PRECISION)
	assert.Less(t, p.Lines[0].Offset.Y, p.Lines[2].Offset.Y)
}

func TestCircle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		double bool
		outer  float64
	}{
		{name: "single", outer: 10},
		{name: "double", double: true, outer: 11},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			n := layout(t, &sigilfigure.Circle{
				Double:  tc.double,
				Stroke:  sigilfigure.StrokeChain,
				Pattern: sigilfigure.PatternDots,
				Content: sym("ten"),
			})
			c := n.(*sigillayout.Circle)
			assert.InDelta(t, 10, c.Inner.Radius, geo.PRECISION)
			assert.InDelta(t, tc.outer, c.Outer.Radius, geo.PRECISION)
			assert.Equal(t, sigilfigure.StrokeChain, c.Stroke)
			assert.Equal(t, sigilfigure.PatternDots, c.Pattern)
			assert.Empty(t, c.Rim)
			// Content is shrunk inside its ring.
			assert.InDelta(t, 8, sigillayout.Boundary(c.Content).OuterRadius(), geo.PRECISION)
		})
	}
}

func TestCircleRim(t *testing.T) {
	t.Parallel()

	rim := make([]sigilfigure.Figure, 6)
	for i := range rim {
		rim[i] = sym("ten")
	}
	n := layout(t, &sigilfigure.Circle{
		Content: sym("ten"),
		Rim:     rim,
	})
	c := n.(*sigillayout.Circle)
	cfg := sigillayout.DefaultConfig()

	// Content grew so that it is at least MaxRimRatio times the largest rim item.
	assert.InDelta(t, 20, c.Inner.Radius, geo.PRECISION)
	anchor := c.Inner.Radius

	require.Len(t, c.Rim, 6)
	for i, r := range c.Rim {
		assert.InDelta(t, sigillayout.RimBaseAngle+float64(i)*math.Pi/3, r.Angle, geo.PRECISION)
		if i > 0 {
			assert.InDelta(t, 2*math.Pi/6, r.Angle-c.Rim[i-1].Angle, geo.PRECISION)
		}

		s := r.Node.(*sigillayout.Symbol)
		assert.GreaterOrEqual(t, s.Lines[0].Width/math.Sqrt2, cfg.MinRimRatio*anchor-geo.PRECISION)

		center := s.Lines[0].Offset
		assert.InDelta(t, 1, r2.Dot(r2.Unit(center), geo.Direction(r.Angle)), geo.PRECISION)

		// Pushed out until only RimOverlapRatio of the inner radius reaches inside.
		innermost := -sigillayout.Boundary(r.Node).OuterRadiusAt(r.Angle + math.Pi)
		assert.InDelta(t, anchor-cfg.RimOverlapRatio*c.Inner.Radius, innermost, geo.PRECISION)
		assert.Greater(t, r2.Norm(center), anchor)
	}

	b := sigillayout.Boundary(c)
	assert.Greater(t, b.OuterRadius(), c.Outer.Radius)
}

func TestCircleRimMinimumSize(t *testing.T) {
	t.Parallel()

	n := layout(t, &sigilfigure.Circle{
		Content: sym("ten"),
		Rim:     []sigilfigure.Figure{sym("one"), sym("one"), sym("one")},
	})
	c := n.(*sigillayout.Circle)
	// Small rim items leave the content alone.
	assert.InDelta(t, 10, c.Inner.Radius, geo.PRECISION)
	for _, r := range c.Rim {
		s := r.Node.(*sigillayout.Symbol)
		assert.InDelta(t, 3*math.Sqrt2, s.Lines[0].Width, geo.PRECISION)
	}
}

func TestCircleRimWithinOverlap(t *testing.T) {
	t.Parallel()

	cfg := sigillayout.DefaultConfig()
	cfg.RimOverlapRatio = 0.5
	ctx := log.WithTB(context.Background(), t, nil)
	n, err := sigillayout.Layout(ctx, &sigilfigure.Circle{
		Content: sym("ten"),
		Rim:     []sigilfigure.Figure{sym("one"), sym("one"), sym("one")},
	}, ruler, &cfg)
	require.NoError(t, err)

	c := n.(*sigillayout.Circle)
	anchor := c.Inner.Radius
	for _, r := range c.Rim {
		// Items reaching inward less than the allowed overlap sit on the anchor ring.
		inward := sigillayout.Boundary(r.Node).OuterRadiusAt(r.Angle+math.Pi) + anchor
		assert.Less(t, inward, cfg.RimOverlapRatio*c.Inner.Radius)
		center := r.Node.(*sigillayout.Symbol).Lines[0].Offset
		assert.InDelta(t, anchor, r2.Norm(center), geo.PRECISION)
	}
}

func TestCircleEmptyContent(t *testing.T) {
	t.Parallel()

	c := layout(t, &sigilfigure.Circle{Content: &sigilfigure.Arrangement{}}).(*sigillayout.Circle)
	assert.Equal(t, 0., c.Inner.Radius)
	assert.Empty(t, c.Rim)

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := sigillayout.Layout(ctx, &sigilfigure.Circle{
		Content: &sigilfigure.Arrangement{},
		Rim:     []sigilfigure.Figure{sym("one")},
	}, ruler, nil)
	assert.True(t, errors.Is(err, sigillayout.ErrNoExtent))
	assert.Contains(t, err.Error(), "circle: content has no extent to place rim items around")
}

func TestPentagram(t *testing.T) {
	t.Parallel()

	n := layout(t, &sigilfigure.Pentagram{Content: sym("five")})
	p := n.(*sigillayout.Pentagram)
	cfg := sigillayout.DefaultConfig()

	assert.Equal(t, 5, p.Star.Sides)
	assert.Equal(t, 5, p.Inner.Sides)
	assert.InDelta(t, p.Inner.Radius*cfg.PentagramRatio, p.Star.Radius, geo.PRECISION)
	assert.InDelta(t, sigillayout.PentagramTwist, p.Star.Rotation-p.Inner.Rotation, geo.PRECISION)
	assert.InDelta(t, cfg.StrokeRatio*p.Star.Radius, p.StrokeWidth, geo.PRECISION)
	assert.GreaterOrEqual(t, p.Inner.Apothem(), 5/math.Sqrt2-geo.PRECISION)
	assert.InDelta(t, 5*cfg.ContentScale, sigillayout.Boundary(p.Content).OuterRadius(), geo.PRECISION)
	assert.InDelta(t, p.Star.Radius, sigillayout.Boundary(p).OuterRadius(), geo.PRECISION)
}

func TestRegularPolygon(t *testing.T) {
	t.Parallel()

	n := layout(t, &sigilfigure.RegularPolygon{Sides: 4, Content: sym("ten")})
	p := n.(*sigillayout.RegularPolygon)
	assert.Equal(t, 4, p.Shape.Sides)
	assert.InDelta(t, sigillayout.PolygonBaseRotation, p.Shape.Rotation, geo.PRECISION)
	assert.GreaterOrEqual(t, p.Shape.Radius, 10-geo.PRECISION)

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := sigillayout.Layout(ctx, &sigilfigure.RegularPolygon{Sides: 2, Content: sym("ten")}, ruler, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "regular_polygon: regular polygon needs at least 3 sides")
}

func TestDecorated(t *testing.T) {
	t.Parallel()

	n := layout(t, &sigilfigure.Decorated{Decoration: sigilfigure.DecorationTilde, Content: sym("ten")})
	d := n.(*sigillayout.Decorated)
	assert.InDelta(t, 8, d.Marker.Width, geo.PRECISION)
	assert.InDelta(t, 1.5, d.Marker.Height, geo.PRECISION)
	assert.InDelta(t, 0, d.Marker.Offset.X, geo.PRECISION)
	assert.InDelta(t, -11, d.Marker.Offset.Y, geo.PRECISION)
	// Content is left at full size.
	assert.InDelta(t, 10, sigillayout.Boundary(d.Content).OuterRadius(), geo.PRECISION)
}

func TestEmphasized(t *testing.T) {
	t.Parallel()

	subtle := layout(t, &sigilfigure.Emphasized{Emphasis: sigilfigure.EmphasisSubtle, Content: sym("ten")})
	strong := layout(t, &sigilfigure.Emphasized{Emphasis: sigilfigure.EmphasisStrong, Content: sym("ten")})
	assert.InDelta(t, 11, subtle.(*sigillayout.Emphasized).Ring.Radius, geo.PRECISION)
	assert.InDelta(t, 13, strong.(*sigillayout.Emphasized).Ring.Radius, geo.PRECISION)
}

func TestLink(t *testing.T) {
	t.Parallel()

	items := func(n int) []sigilfigure.Figure {
		fs := make([]sigilfigure.Figure, n)
		for i := range fs {
			fs[i] = sym("ten")
		}
		return fs
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		l := layout(t, &sigilfigure.Link{Items: items(0)}).(*sigillayout.Link)
		assert.Empty(t, l.Segments)
	})

	t.Run("one", func(t *testing.T) {
		t.Parallel()
		l := layout(t, &sigilfigure.Link{Items: items(1)}).(*sigillayout.Link)
		assert.Empty(t, l.Segments)
		c := boxCenter(sigillayout.Boundary(l.Items[0]))
		assert.InDelta(t, 0, r2.Norm(c), geo.PRECISION)
	})

	t.Run("two", func(t *testing.T) {
		t.Parallel()
		l := layout(t, &sigilfigure.Link{Items: items(2)}).(*sigillayout.Link)
		require.Len(t, l.Segments, 1)

		// Radius 10 items with a gap of half the largest item.
		a := boxCenter(sigillayout.Boundary(l.Items[0]))
		b := boxCenter(sigillayout.Boundary(l.Items[1]))
		assert.InDelta(t, -12.5, a.X, geo.PRECISION)
		assert.InDelta(t, 12.5, b.X, geo.PRECISION)

		half := 5 * math.Sqrt2
		s := l.Segments[0]
		assert.InDelta(t, -12.5+half, s.Start.X, geo.PRECISION)
		assert.InDelta(t, 12.5-half, s.End.X, geo.PRECISION)
		assert.InDelta(t, 25-2*half, s.Length(), geo.PRECISION)
	})

	t.Run("ring", func(t *testing.T) {
		t.Parallel()
		l := layout(t, &sigilfigure.Link{Stroke: sigilfigure.StrokeChain, Items: items(5)}).(*sigillayout.Link)
		require.Len(t, l.Segments, 5)
		assert.InDelta(t, 0.2, l.StrokeWidth, geo.PRECISION)

		centers := make([]r2.Vec, len(l.Items))
		for i, it := range l.Items {
			centers[i] = boxCenter(sigillayout.Boundary(it))
		}
		for i := range centers {
			for j := i + 1; j < len(centers); j++ {
				assert.GreaterOrEqual(t, r2.Norm(r2.Sub(centers[i], centers[j])), 25-geo.PRECISION)
			}
		}
		assert.Less(t, centers[0].X, 0.)
		assert.InDelta(t, 0, centers[0].Y, geo.PRECISION)
	})
}

func TestArrangement(t *testing.T) {
	t.Parallel()

	n := layout(t, &sigilfigure.Arrangement{Items: []sigilfigure.Figure{sym("ten"), sym("five")}})
	a := n.(*sigillayout.Arrangement)
	require.Len(t, a.Items, 2)
	for _, it := range a.Items {
		c := boxCenter(sigillayout.Boundary(it))
		assert.InDelta(t, 0, r2.Norm(c), geo.PRECISION)
	}
	assert.InDelta(t, 10, sigillayout.Boundary(a).OuterRadius(), geo.PRECISION)
}

func TestLayoutErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		fig    sigilfigure.Figure
		expErr string
	}{
		{
			name:   "missing_content",
			fig:    &sigilfigure.Circle{},
			expErr: "circle: missing content",
		},
		{
			name: "nested_missing_content",
			fig: &sigilfigure.Arrangement{Items: []sigilfigure.Figure{
				sym("one"),
				&sigilfigure.Emphasized{Emphasis: sigilfigure.EmphasisStrong},
			}},
			expErr: "arrangement.items[1]: missing content",
		},
		{
			name:   "unknown_decoration",
			fig:    &sigilfigure.Decorated{Decoration: "swirl", Content: sym("one")},
			expErr: `decorated: unknown decoration "swirl"`,
		},
		{
			name:   "nil_figure",
			expErr: "figure: missing content",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := log.WithTB(context.Background(), t, nil)
			_, err := sigillayout.Layout(ctx, tc.fig, ruler, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to lay out figure")
			assert.Contains(t, err.Error(), tc.expErr)
		})
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	fig := &sigilfigure.Circle{
		Double:  true,
		Content: &sigilfigure.Pentagram{Content: sym("five")},
		Rim: []sigilfigure.Figure{
			&sigilfigure.Link{Items: []sigilfigure.Figure{sym("one"), sym("one"), sym("one")}},
			&sigilfigure.Decorated{Decoration: sigilfigure.DecorationRays, Content: sym("one")},
		},
	}
	n := layout(t, fig)
	c := n.(*sigillayout.Circle)
	r := sigillayout.Boundary(n).OuterRadius()
	angles := []float64{c.Rim[0].Angle, c.Rim[1].Angle}

	sigillayout.Translate(n, r2.Vec{X: 30, Y: -4})
	center := boxCenter(c.Outer)
	assert.InDelta(t, 30, center.X, geo.PRECISION)
	assert.InDelta(t, -4, center.Y, geo.PRECISION)
	sigillayout.Translate(n, r2.Vec{X: -30, Y: 4})
	assert.InDelta(t, r, sigillayout.Boundary(n).OuterRadius(), geo.PRECISION)

	sigillayout.Rotate(n, 0.7)
	assert.InDelta(t, r, sigillayout.Boundary(n).OuterRadius(), geo.PRECISION)
	assert.InDelta(t, angles[0]-0.7, c.Rim[0].Angle, geo.PRECISION)
	sigillayout.Rotate(n, -0.7)
	assert.InDelta(t, angles[1], c.Rim[1].Angle, geo.PRECISION)

	sigillayout.Scale(n, 2)
	assert.InDelta(t, 2*r, sigillayout.Boundary(n).OuterRadius(), geo.PRECISION)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	fig := &sigilfigure.Circle{
		Content: &sigilfigure.Pentagram{Content: sym("five")},
		Rim:     []sigilfigure.Figure{sym("one"), &sigilfigure.Link{Items: []sigilfigure.Figure{sym("one"), sym("one")}}},
	}
	n := layout(t, fig)

	var kinds []sigilfigure.Kind
	sigillayout.Walk(n, func(n sigillayout.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	assert.Equal(t, []sigilfigure.Kind{
		sigilfigure.KindCircle,
		sigilfigure.KindPentagram,
		sigilfigure.KindSymbol,
		sigilfigure.KindSymbol,
		sigilfigure.KindLink,
		sigilfigure.KindSymbol,
		sigilfigure.KindSymbol,
	}, kinds)
	assert.Equal(t, sigilfigure.Count(fig), len(kinds))

	count := 0
	sigillayout.Walk(n, func(n sigillayout.Node) bool {
		count++
		return n.Kind() != sigilfigure.KindLink
	})
	assert.Equal(t, 5, count)
}
