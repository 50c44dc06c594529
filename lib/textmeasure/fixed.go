package textmeasure

import (
	"strings"

	"github.com/rivo/uniseg"
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
)

const FIXED_LINE_HEIGHT = 1.2

// FixedRuler measures every grapheme cell as fontSize wide and every line as
// fontSize × LineHeightFactor tall. It needs no font, which makes layouts
// reproducible across machines.
type FixedRuler struct {
	LineHeightFactor float64
}

func NewFixedRuler() *FixedRuler {
	return &FixedRuler{
		LineHeightFactor: FIXED_LINE_HEIGHT,
	}
}

func (r *FixedRuler) MeasureLines(text string, fontSize float64) []*geo.Rect {
	height := fontSize * r.LineHeightFactor
	lines := strings.Split(text, "\n")
	rects := make([]*geo.Rect, 0, len(lines))
	for i, line := range lines {
		rects = append(rects, geo.NewRect(r2.Vec{Y: float64(i) * height}, fontSize*float64(cells(line)), height, 0))
	}
	return rects
}

func cells(line string) int {
	n := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if gr.Str() == "\t" {
			n += TAB_SIZE
			continue
		}
		n += gr.Width()
	}
	return n
}
