package sigiltarget_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/sigil/lib/log"
	"oss.terrastruct.com/sigil/lib/textmeasure"
	"oss.terrastruct.com/sigil/sigilfigure"
	"oss.terrastruct.com/sigil/sigillayout"
	"oss.terrastruct.com/sigil/sigiltarget"
)

func export(t *testing.T, f sigilfigure.Figure) *sigiltarget.Diagram {
	t.Helper()
	ctx := log.WithTB(context.Background(), t, nil)
	n, err := sigillayout.Layout(ctx, f, textmeasure.NewFixedRuler(), nil)
	require.NoError(t, err)
	return sigiltarget.Export(n)
}

func TestExport(t *testing.T) {
	t.Parallel()

	d := export(t, &sigilfigure.Circle{
		Double:  true,
		Pattern: sigilfigure.PatternRunes,
		Content: &sigilfigure.Pentagram{Content: &sigilfigure.Symbol{Text: "x"}},
		Rim: []sigilfigure.Figure{
			&sigilfigure.Link{
				Stroke: sigilfigure.StrokeChain,
				Items:  []sigilfigure.Figure{&sigilfigure.Phrase{Text: "a\nbc"}, &sigilfigure.Symbol{Text: "y"}},
			},
			&sigilfigure.Emphasized{Emphasis: sigilfigure.EmphasisSubtle, Content: &sigilfigure.Symbol{Text: "z"}},
		},
	})

	circles := d.ShapesOfType(sigiltarget.ShapeCircle)
	require.Len(t, circles, 3)
	assert.Equal(t, sigiltarget.RoleInner, circles[0].Role)
	assert.Equal(t, sigiltarget.RoleOuter, circles[1].Role)
	assert.Equal(t, sigilfigure.PatternRunes, circles[0].Pattern)
	assert.Greater(t, circles[1].Radius, circles[0].Radius)
	assert.Equal(t, "circle.rim[1]", circles[2].ID)
	assert.Equal(t, sigilfigure.EmphasisSubtle, circles[2].Emphasis)

	polygons := d.ShapesOfType(sigiltarget.ShapePolygon)
	require.Len(t, polygons, 1)
	assert.Equal(t, sigiltarget.RoleStar, polygons[0].Role)
	assert.Len(t, polygons[0].Points, 5)

	segments := d.ShapesOfType(sigiltarget.ShapeSegment)
	require.Len(t, segments, 1)
	assert.Equal(t, "circle.rim[0]", segments[0].ID)
	assert.Equal(t, sigilfigure.StrokeChain, segments[0].Stroke)
	assert.Len(t, segments[0].Points, 2)

	lines := d.ShapesOfType(sigiltarget.ShapeTextLine)
	require.Len(t, lines, 5)
	ids := make([]string, len(lines))
	texts := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
		texts[i] = l.Text
	}
	assert.Equal(t, []string{
		"circle.content.content",
		"circle.rim[0].items[0]",
		"circle.rim[0].items[0]",
		"circle.rim[0].items[1]",
		"circle.rim[1].content",
	}, ids)
	assert.Equal(t, []string{"x", "a", "bc", "y", "z"}, texts)

	for _, s := range d.Shapes {
		assert.True(t, d.Bounds.X.Contains(s.Center.X), s.ID)
		assert.True(t, d.Bounds.Y.Contains(s.Center.Y), s.ID)
	}
	assert.GreaterOrEqual(t, d.Bounds.Width(), 2*circles[1].Radius)
}

func TestExportEmpty(t *testing.T) {
	t.Parallel()

	d := export(t, &sigilfigure.Arrangement{})
	assert.Empty(t, d.Shapes)
	assert.Equal(t, 0., d.Bounds.Width())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shapes": [], "bounds": {"x": {"min": 0, "max": 0}, "y": {"min": 0, "max": 0}}}`, string(b))
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	d := export(t, &sigilfigure.Decorated{Decoration: sigilfigure.DecorationHat, Content: &sigilfigure.Symbol{Text: "q"}})
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var got struct {
		Shapes []map[string]interface{} `json:"shapes"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Shapes, 2)
	assert.Equal(t, "text_line", got.Shapes[0]["type"])
	assert.Equal(t, "q", got.Shapes[0]["text"])
	assert.Equal(t, "rect", got.Shapes[1]["type"])
	assert.Equal(t, "marker", got.Shapes[1]["role"])
	assert.Equal(t, "hat", got.Shapes[1]["decoration"])
}
