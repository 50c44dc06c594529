package textmeasure

import (
	"sort"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

// glyph describes one glyph in an atlas.
type glyph struct {
	dot     r2.Vec
	frame   *rect
	advance float64
}

// atlas is a set of pre-measured glyphs of a fixed set of runes at one font size.
type atlas struct {
	face       font.Face
	mapping    map[rune]glyph
	ascent     float64
	descent    float64
	lineHeight float64
}

// newAtlas creates a new atlas containing glyphs of the union of the given sets of runes (plus
// unicode.ReplacementChar) from the given font face.
//
// Creating an atlas is rather expensive, the Ruler keeps one per font size.
//
// Do not destroy or close the font.Face after creating the atlas. atlas still uses it.
func newAtlas(face font.Face, runeSets ...[]rune) *atlas {
	seen := make(map[rune]bool)
	runes := []rune{unicode.ReplacementChar}
	for _, set := range runeSets {
		for _, r := range set {
			if !seen[r] {
				runes = append(runes, r)
				seen[r] = true
			}
		}
	}

	fixedMapping, fixedBounds := makeSquareMapping(face, runes, fixed.I(2))

	bounds := &rect{
		tl: r2.Vec{X: i2f(fixedBounds.Min.X), Y: i2f(fixedBounds.Min.Y)},
		br: r2.Vec{X: i2f(fixedBounds.Max.X), Y: i2f(fixedBounds.Max.Y)},
	}

	mapping := make(map[rune]glyph)
	for r, fg := range fixedMapping {
		mapping[r] = glyph{
			dot: r2.Vec{
				X: i2f(fg.dot.X),
				Y: bounds.br.Y - (i2f(fg.dot.Y) - bounds.tl.Y),
			},
			frame: rect{
				tl: r2.Vec{
					X: i2f(fg.frame.Min.X),
					Y: bounds.br.Y - (i2f(fg.frame.Min.Y) - bounds.tl.Y),
				},
				br: r2.Vec{
					X: i2f(fg.frame.Max.X),
					Y: bounds.br.Y - (i2f(fg.frame.Max.Y) - bounds.tl.Y),
				},
			}.norm(),
			advance: i2f(fg.advance),
		}
	}

	return &atlas{
		face:       face,
		mapping:    mapping,
		ascent:     i2f(face.Metrics().Ascent),
		descent:    i2f(face.Metrics().Descent),
		lineHeight: i2f(face.Metrics().Height),
	}
}

func (a *atlas) contains(r rune) bool {
	_, ok := a.mapping[r]
	return ok
}

// glyph returns the description of r within the atlas.
func (a *atlas) glyph(r rune) glyph {
	return a.mapping[r]
}

// kern returns the kerning distance between runes r0 and r1. Positive distance means that the
// glyphs should be further apart.
func (a *atlas) kern(r0, r1 rune) float64 {
	return i2f(a.face.Kern(r0, r1))
}

// drawRune returns the bounds the rune glyph occupies when drawn at dot and the new dot position.
func (a *atlas) drawRune(prevR, r rune, dot r2.Vec) (bounds *rect, newDot r2.Vec) {
	if !a.contains(r) {
		r = unicode.ReplacementChar
	}
	if !a.contains(unicode.ReplacementChar) {
		return newRect(), dot
	}
	if !a.contains(prevR) {
		prevR = unicode.ReplacementChar
	}

	if prevR >= 0 {
		dot.X += a.kern(prevR, r)
	}

	glyph := a.glyph(r)

	subbed := r2.Sub(dot, glyph.dot)

	bounds = &rect{
		tl: r2.Add(glyph.frame.tl, subbed),
		br: r2.Add(glyph.frame.br, subbed),
	}

	if bounds.w()*bounds.h() != 0 {
		bounds = &rect{
			tl: r2.Vec{X: bounds.tl.X, Y: dot.Y - a.descent},
			br: r2.Vec{X: bounds.br.X, Y: dot.Y + a.ascent},
		}
	}

	dot.X += glyph.advance

	return bounds, dot
}

type fixedGlyph struct {
	dot     fixed.Point26_6
	frame   fixed.Rectangle26_6
	advance fixed.Int26_6
}

// makeSquareMapping finds an optimal glyph arrangement of the given runes, so that their common
// bounding box is as square as possible.
func makeSquareMapping(face font.Face, runes []rune, padding fixed.Int26_6) (map[rune]fixedGlyph, fixed.Rectangle26_6) {
	width := sort.Search(int(fixed.I(1024*1024)), func(i int) bool {
		width := fixed.Int26_6(i)
		_, bounds := makeMapping(face, runes, padding, width)
		return bounds.Max.X-bounds.Min.X >= bounds.Max.Y-bounds.Min.Y
	})
	return makeMapping(face, runes, padding, fixed.Int26_6(width))
}

// makeMapping arranges glyphs of the given runes into rows in such a way, that no glyph is located
// fully to the right of the specified width. Specifically, it places glyphs in a row one by one and
// once it reaches the specified width, it starts a new row.
func makeMapping(face font.Face, runes []rune, padding, width fixed.Int26_6) (map[rune]fixedGlyph, fixed.Rectangle26_6) {
	mapping := make(map[rune]fixedGlyph)
	bounds := fixed.Rectangle26_6{}

	dot := fixed.P(0, 0)

	for _, r := range runes {
		b, advance, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}

		frame := fixed.Rectangle26_6{
			Min: fixed.P(b.Min.X.Floor(), b.Min.Y.Floor()),
			Max: fixed.P(b.Max.X.Ceil(), b.Max.Y.Ceil()),
		}

		dot.X -= frame.Min.X
		frame = frame.Add(dot)

		mapping[r] = fixedGlyph{
			dot:     dot,
			frame:   frame,
			advance: advance,
		}
		bounds = bounds.Union(frame)

		dot.X = frame.Max.X

		// padding + align to integer
		dot.X += padding
		dot.X = fixed.I(dot.X.Ceil())

		// width exceeded, new row
		if frame.Max.X >= width {
			dot.X = 0
			dot.Y += face.Metrics().Ascent + face.Metrics().Descent

			// padding + align to integer
			dot.Y += padding
			dot.Y = fixed.I(dot.Y.Ceil())
		}
	}

	return mapping, bounds
}

func i2f(i fixed.Int26_6) float64 {
	return float64(i) / (1 << 6)
}
