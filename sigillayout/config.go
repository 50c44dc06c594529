package sigillayout

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/sigil/sigilfigure"
)

const (
	// RimBaseAngle is where the first rim item sits: straight up on a y-down canvas.
	RimBaseAngle = -math.Pi / 2
	// AnchorRingFraction places the rim anchor between the inner and outer
	// ring: 0 is the inner ring, 1 the outer, 0.5 the middle of the stroke.
	AnchorRingFraction = 0.5
	// rimFacing is the local direction of a rim item that ends up pointing
	// away from the circle's center.
	rimFacing = -math.Pi / 2

	PentagramInnerRotation = math.Pi
	// PentagramTwist is the rotation of the star relative to its inner pentagon.
	PentagramTwist = math.Pi / 2

	PolygonBaseRotation = -math.Pi / 2
	LinkBaseAngle       = math.Pi
)

type DecorationSpec struct {
	// WidthRatio and HeightRatio size the marker relative to the content radius.
	WidthRatio  float64 `toml:"width_ratio" json:"widthRatio"`
	HeightRatio float64 `toml:"height_ratio" json:"heightRatio"`
	// Angle is the direction from the content's center to the marker.
	Angle float64 `toml:"angle" json:"angle"`
}

type DecorationSpecs struct {
	Tilde DecorationSpec `toml:"tilde" json:"tilde"`
	Hat   DecorationSpec `toml:"hat" json:"hat"`
	Rays  DecorationSpec `toml:"rays" json:"rays"`
}

func (ds DecorationSpecs) For(kind sigilfigure.DecorationKind) (DecorationSpec, bool) {
	switch kind {
	case sigilfigure.DecorationTilde:
		return ds.Tilde, true
	case sigilfigure.DecorationHat:
		return ds.Hat, true
	case sigilfigure.DecorationRays:
		return ds.Rays, true
	}
	return DecorationSpec{}, false
}

// Config holds every ratio the layout reads. It is never modified during a layout.
type Config struct {
	SymbolFontSize float64 `toml:"symbol_font_size" json:"symbolFontSize"`
	PhraseFontSize float64 `toml:"phrase_font_size" json:"phraseFontSize"`

	// ContentScale shrinks enclosed content after its enclosure is sized.
	ContentScale float64 `toml:"content_scale" json:"contentScale"`

	// A circle's content radius is kept at least MaxRimRatio times its largest rim item.
	MaxRimRatio float64 `toml:"max_rim_ratio" json:"maxRimRatio"`
	// Rim items are kept at least MinRimRatio times the anchor radius.
	MinRimRatio float64 `toml:"min_rim_ratio" json:"minRimRatio"`
	// RimOverlapRatio is how far, as a fraction of the inner radius, rim items
	// may reach inside the anchor ring.
	RimOverlapRatio float64 `toml:"rim_overlap_ratio" json:"rimOverlapRatio"`
	DoubleRingRatio float64 `toml:"double_ring_ratio" json:"doubleRingRatio"`
	// CirclePadding is the gap between content and inner ring, relative to the content radius.
	CirclePadding float64 `toml:"circle_padding" json:"circlePadding"`

	PentagramRatio float64 `toml:"pentagram_ratio" json:"pentagramRatio"`

	Decorations           DecorationSpecs `toml:"decorations" json:"decorations"`
	DecorationOffsetRatio float64         `toml:"decoration_offset_ratio" json:"decorationOffsetRatio"`

	EmphasisSubtleRatio float64 `toml:"emphasis_subtle_ratio" json:"emphasisSubtleRatio"`
	EmphasisStrongRatio float64 `toml:"emphasis_strong_ratio" json:"emphasisStrongRatio"`

	// StrokeRatio is the stroke width of an enclosure relative to its radius.
	StrokeRatio float64 `toml:"stroke_ratio" json:"strokeRatio"`

	// LinkGapRatio is the gap between linked items relative to the largest item.
	LinkGapRatio float64 `toml:"link_gap_ratio" json:"linkGapRatio"`
}

const baseFontSize = 16

func DefaultConfig() Config {
	return Config{
		SymbolFontSize: 3 * baseFontSize,
		PhraseFontSize: baseFontSize,

		ContentScale: 0.8,

		MaxRimRatio:     2,
		MinRimRatio:     0.3,
		RimOverlapRatio: 0.1,
		DoubleRingRatio: 1.1,
		CirclePadding:   0,

		// φ², the ratio of a pentagram's circumradius to its inner pentagon's.
		PentagramRatio: 2.618033988749895,

		Decorations: DecorationSpecs{
			Tilde: DecorationSpec{WidthRatio: 0.8, HeightRatio: 0.15, Angle: -math.Pi / 2},
			Hat:   DecorationSpec{WidthRatio: 0.6, HeightRatio: 0.25, Angle: -math.Pi / 2},
			Rays:  DecorationSpec{WidthRatio: 0.5, HeightRatio: 0.5, Angle: -math.Pi / 4},
		},
		DecorationOffsetRatio: 1.1,

		EmphasisSubtleRatio: 1.1,
		EmphasisStrongRatio: 1.3,

		StrokeRatio: 0.02,

		LinkGapRatio: 0.5,
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys the file sets
// override defaults and the rest keep their default value.
func LoadConfig(path string) (cfg Config, err error) {
	defer xdefer.Errorf(&err, "failed to load layout config %s", path)

	cfg = DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate reports every ratio that would make the layout meaningless.
func (c Config) Validate() error {
	var err error
	positive := func(name string, v float64) {
		if !(v > 0) {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) {
			err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	atLeastOne := func(name string, v float64) {
		if !(v >= 1) {
			err = multierr.Append(err, fmt.Errorf("%s must be at least 1, got %v", name, v))
		}
	}

	positive("symbol_font_size", c.SymbolFontSize)
	positive("phrase_font_size", c.PhraseFontSize)
	positive("content_scale", c.ContentScale)
	positive("max_rim_ratio", c.MaxRimRatio)
	nonNegative("min_rim_ratio", c.MinRimRatio)
	nonNegative("rim_overlap_ratio", c.RimOverlapRatio)
	atLeastOne("double_ring_ratio", c.DoubleRingRatio)
	nonNegative("circle_padding", c.CirclePadding)
	atLeastOne("pentagram_ratio", c.PentagramRatio)
	for _, kind := range sigilfigure.DecorationKinds {
		spec, _ := c.Decorations.For(kind)
		positive(fmt.Sprintf("decorations.%s.width_ratio", kind), spec.WidthRatio)
		positive(fmt.Sprintf("decorations.%s.height_ratio", kind), spec.HeightRatio)
	}
	nonNegative("decoration_offset_ratio", c.DecorationOffsetRatio)
	positive("emphasis_subtle_ratio", c.EmphasisSubtleRatio)
	positive("emphasis_strong_ratio", c.EmphasisStrongRatio)
	nonNegative("stroke_ratio", c.StrokeRatio)
	nonNegative("link_gap_ratio", c.LinkGapRatio)
	return err
}

func (c Config) emphasisRatio(kind sigilfigure.EmphasisKind) (float64, bool) {
	switch kind {
	case sigilfigure.EmphasisSubtle:
		return c.EmphasisSubtleRatio, true
	case sigilfigure.EmphasisStrong:
		return c.EmphasisStrongRatio, true
	}
	return 0, false
}
