// Ported from https://github.com/faiface/pixel/tree/master/text
// Trimmed down to essentials of measuring text

package textmeasure

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/geo"
)

const TAB_SIZE = 4

// Runes encompasses ASCII, Latin-1, and geometric shapes like black square
var Runes []rune

func init() {
	// ASCII range (U+0000 to U+007F)
	for r := rune(0x0000); r <= rune(0x007F); r++ {
		Runes = append(Runes, r)
	}

	// Latin-1 Supplement (U+0080 to U+00FF)
	for r := rune(0x0080); r <= rune(0x00FF); r++ {
		Runes = append(Runes, r)
	}

	// Geometric Shapes (U+25A0 to U+25FF)
	for r := rune(0x25A0); r <= rune(0x25FF); r++ {
		Runes = append(Runes, r)
	}
}

// Ruler measures text set in one TrueType font at any size.
//
// Atlases are built lazily, one per font size, and kept for the lifetime of the Ruler.
// A Ruler is not safe for concurrent use.
type Ruler struct {
	// LineHeightFactor scales the font's line height to get the distance between two
	// consecutive baselines.
	LineHeightFactor float64

	ttf         *truetype.Font
	atlases     map[float64]*atlas
	lineHeights map[float64]float64
	tabWidths   map[float64]float64

	orig   r2.Vec
	dot    r2.Vec
	buf    []byte
	prevR  rune
	bounds *rect
}

// NewRuler creates a Ruler for the Go Regular font.
func NewRuler() (*Ruler, error) {
	return NewRulerFromTTF(goregular.TTF)
}

func NewRulerFromTTF(ttfBytes []byte) (*Ruler, error) {
	ttf, err := truetype.Parse(ttfBytes)
	if err != nil {
		return nil, err
	}
	r := &Ruler{
		LineHeightFactor: 1.,
		ttf:              ttf,
		atlases:          make(map[float64]*atlas),
		lineHeights:      make(map[float64]float64),
		tabWidths:        make(map[float64]float64),
	}
	r.clear()
	return r, nil
}

func (r *Ruler) addFontSize(fontSize float64) {
	face := truetype.NewFace(r.ttf, &truetype.Options{
		Size: fontSize,
	})
	atlas := newAtlas(face, Runes)
	r.atlases[fontSize] = atlas
	r.lineHeights[fontSize] = atlas.lineHeight
	r.tabWidths[fontSize] = atlas.glyph(' ').advance * TAB_SIZE
}

func (t *Ruler) scaleUnicode(w, fontSize float64, s string) float64 {
	// Weird unicode stuff is going on when this is true
	// See https://github.com/rivo/uniseg#grapheme-clusters
	// This method is a good-enough approximation. It overshoots, but not by much.
	if uniseg.GraphemeClusterCount(s) != len(s) {
		for _, line := range strings.Split(s, "\n") {
			lineW, _ := t.MeasurePrecise(fontSize, line)
			gr := uniseg.NewGraphemes(line)

			cell := t.digitWidth(fontSize)
			for gr.Next() {
				if gr.Width() == 1 {
					continue
				}
				// For each grapheme which doesn't have width=1, the ruler measured wrongly.
				// So, replace the measured width with the width of that many digit cells
				var prevRune rune = -1
				dot := t.orig
				b := newRect()
				for _, r := range gr.Runes() {
					var control bool
					dot, control = t.controlRune(r, dot, fontSize)
					if control {
						continue
					}

					var bounds *rect
					bounds, dot = t.atlases[fontSize].drawRune(prevRune, r, dot)
					b = b.union(bounds)

					prevRune = r
				}
				lineW -= b.w()
				lineW += cell * float64(gr.Width())
			}
			w = math.Max(w, lineW)
		}
	}
	return w
}

func (t *Ruler) MeasurePrecise(fontSize float64, s string) (width, height float64) {
	if _, ok := t.atlases[fontSize]; !ok {
		t.addFontSize(fontSize)
	}
	t.clear()
	t.buf = append(t.buf, s...)
	t.drawBuf(fontSize)
	b := t.bounds
	return b.w(), b.h()
}

// MeasureLines returns one rectangle per line of text. Each is centered
// horizontally on x=0 and vertically on its line's slot, slots being one
// line advance apart.
func (t *Ruler) MeasureLines(text string, fontSize float64) []*geo.Rect {
	if _, ok := t.atlases[fontSize]; !ok {
		t.addFontSize(fontSize)
	}
	lineHeight := t.lineHeights[fontSize]
	advance := t.LineHeightFactor * lineHeight

	lines := strings.Split(text, "\n")
	rects := make([]*geo.Rect, 0, len(lines))
	for i, line := range lines {
		w, h := t.MeasurePrecise(fontSize, line)
		w = t.scaleUnicode(w, fontSize, line)
		if h == 0 {
			h = lineHeight
		}
		rects = append(rects, geo.NewRect(r2.Vec{Y: float64(i) * advance}, w, h, 0))
	}
	return rects
}

// clear removes all written text from the Ruler. The dot is reset to the origin.
func (txt *Ruler) clear() {
	txt.prevR = -1
	txt.bounds = newRect()
	txt.buf = txt.buf[:0]
	txt.dot = txt.orig
}

// controlRune checks if r is a control rune (newline, tab, ...). If it is, a new dot position and
// true is returned. If r is not a control rune, the original dot and false is returned.
func (txt *Ruler) controlRune(r rune, dot r2.Vec, fontSize float64) (newDot r2.Vec, control bool) {
	switch r {
	case '\n':
		dot.X = txt.orig.X
		dot.Y -= txt.LineHeightFactor * txt.lineHeights[fontSize]
	case '\r':
		dot.X = txt.orig.X
	case '\t':
		rem := math.Mod(dot.X-txt.orig.X, txt.tabWidths[fontSize])
		rem = math.Mod(rem, rem+txt.tabWidths[fontSize])
		if rem == 0 {
			rem = txt.tabWidths[fontSize]
		}
		dot.X += rem
	default:
		return dot, false
	}
	return dot, true
}

func (txt *Ruler) drawBuf(fontSize float64) {
	if !utf8.FullRune(txt.buf) {
		return
	}

	for utf8.FullRune(txt.buf) {
		r, l := utf8.DecodeRune(txt.buf)
		txt.buf = txt.buf[l:]

		var control bool
		txt.dot, control = txt.controlRune(r, txt.dot, fontSize)
		if control {
			continue
		}

		var bounds *rect
		bounds, txt.dot = txt.atlases[fontSize].drawRune(txt.prevR, r, txt.dot)

		txt.prevR = r

		if txt.bounds.w()*txt.bounds.h() == 0 {
			txt.bounds = bounds
		} else {
			txt.bounds = txt.bounds.union(bounds)
		}
	}
}

func (ruler *Ruler) digitWidth(fontSize float64) float64 {
	if _, has := ruler.atlases[fontSize]; !has {
		ruler.addFontSize(fontSize)
	}
	return ruler.atlases[fontSize].glyph('0').advance
}
