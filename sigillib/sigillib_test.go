package sigillib_test

import (
	"context"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"oss.terrastruct.com/util-go/assert"

	"oss.terrastruct.com/sigil/lib/geo"
	"oss.terrastruct.com/sigil/lib/log"
	"oss.terrastruct.com/sigil/lib/textmeasure"
	"oss.terrastruct.com/sigil/sigillayout"
	"oss.terrastruct.com/sigil/sigillib"
	"oss.terrastruct.com/sigil/sigiltarget"
)

func opts() *sigillib.LayoutOptions {
	return &sigillib.LayoutOptions{
		Ruler: textmeasure.NewFixedRuler(),
	}
}

func TestLayoutJSON(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	res, err := sigillib.LayoutJSON(ctx, []byte(`{
		"kind": "circle",
		"double": true,
		"content": {"kind": "pentagram", "content": {"kind": "symbol", "text": "a"}},
		"rim": [
			{"kind": "phrase", "text": "north"},
			{"kind": "phrase", "text": "south"}
		]
	}`), opts())
	assert.Success(t, err)

	assert.Equal(t, 2, len(res.Node.(*sigillayout.Circle).Rim))
	assert.Equal(t, 2, len(res.Diagram.ShapesOfType(sigiltarget.ShapeCircle)))
	assert.Equal(t, 3, len(res.Diagram.ShapesOfType(sigiltarget.ShapeTextLine)))
	assert.True(t, res.Diagram.Bounds.Width() > 0)
}

func TestLayoutErrors(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	_, err := sigillib.LayoutJSON(ctx, []byte(`{"kind": "star"}`), opts())
	assert.ErrorString(t, err, `star: unknown figure kind "star"`)

	_, err = sigillib.LayoutJSON(ctx, []byte(`{"kind": "regular_polygon", "sides": 2}`), opts())
	assert.ErrorString(t, err, "regular_polygon: regular polygon needs at least 3 sides, got 2; regular_polygon: missing content")

	cfg := sigillayout.DefaultConfig()
	cfg.DoubleRingRatio = 0.5
	_, err = sigillib.LayoutJSON(ctx, []byte(`{"kind": "symbol", "text": "a"}`), &sigillib.LayoutOptions{
		Config: &cfg,
		Ruler:  textmeasure.NewFixedRuler(),
	})
	assert.ErrorString(t, err, "double_ring_ratio must be at least 1, got 0.5")
}

func TestSpread(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	input := []byte(`{
		"kind": "arrangement",
		"items": [
			{"kind": "symbol", "text": "a"},
			{"kind": "emphasized", "emphasis": "strong", "content": {"kind": "symbol", "text": "bb"}},
			{"kind": "symbol", "text": "c"}
		]
	}`)

	o := opts()
	o.Spread = true
	o.Gap = 10
	res, err := sigillib.LayoutJSON(ctx, input, o)
	assert.Success(t, err)

	items := res.Node.(*sigillayout.Arrangement).Items
	var prev geo.Range
	for i, it := range items {
		xr, _ := sigillayout.Boundary(it).OuterCoordsRange()
		if i > 0 {
			tassert.InDelta(t, 10, xr.Min-prev.Max, geo.PRECISION)
		}
		prev = xr
	}
	xr, _ := sigillayout.Boundary(res.Node).OuterCoordsRange()
	tassert.InDelta(t, 0, xr.Center(), geo.PRECISION)

	stacked, err := sigillib.LayoutJSON(ctx, input, opts())
	assert.Success(t, err)
	sxr, _ := sigillayout.Boundary(stacked.Node).OuterCoordsRange()
	tassert.Less(t, sxr.Size(), xr.Size())
}
