// Package sigillib runs the whole pipeline: figure in, drawing list out.
package sigillib

import (
	"context"

	"cdr.dev/slog"
	"gonum.org/v1/gonum/spatial/r2"

	"oss.terrastruct.com/sigil/lib/env"
	"oss.terrastruct.com/sigil/lib/log"
	"oss.terrastruct.com/sigil/lib/textmeasure"
	"oss.terrastruct.com/sigil/sigilfigure"
	"oss.terrastruct.com/sigil/sigillayout"
	"oss.terrastruct.com/sigil/sigiltarget"
)

const DEFAULT_GAP = 16

type LayoutOptions struct {
	// Config defaults to sigillayout.DefaultConfig.
	Config *sigillayout.Config
	// Ruler defaults to the font ruler, or the fixed ruler under TEST_MODE.
	Ruler sigillayout.TextMeasurer

	// Spread lays the items of a top-level arrangement out in a row, Gap
	// apart, instead of stacking them on the origin.
	Spread bool
	Gap    float64
}

type Result struct {
	Figure  sigilfigure.Figure
	Node    sigillayout.Node
	Diagram *sigiltarget.Diagram
}

// LayoutJSON decodes a serialized figure and lays it out.
func LayoutJSON(ctx context.Context, input []byte, opts *LayoutOptions) (*Result, error) {
	fig, err := sigilfigure.Deserialize(input)
	if err != nil {
		return nil, err
	}
	return Layout(ctx, fig, opts)
}

func Layout(ctx context.Context, fig sigilfigure.Figure, opts *LayoutOptions) (*Result, error) {
	if opts == nil {
		opts = &LayoutOptions{}
	}

	err := sigilfigure.Validate(fig)
	if err != nil {
		return nil, err
	}
	cfg := opts.Config
	if cfg == nil {
		c := sigillayout.DefaultConfig()
		cfg = &c
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	ruler := opts.Ruler
	if ruler == nil {
		ruler, err = defaultRuler()
		if err != nil {
			return nil, err
		}
	}

	n, err := sigillayout.Layout(ctx, fig, ruler, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "layout done", slog.F("figures", sigilfigure.Count(fig)))

	if a, ok := n.(*sigillayout.Arrangement); ok && opts.Spread {
		gap := opts.Gap
		if gap == 0 {
			gap = DEFAULT_GAP
		}
		Spread(a, gap)
	}

	diagram := sigiltarget.Export(n)
	log.Info(ctx, "exported diagram",
		slog.F("shapes", len(diagram.Shapes)),
		slog.F("width", diagram.Bounds.Width()),
		slog.F("height", diagram.Bounds.Height()),
	)
	return &Result{
		Figure:  fig,
		Node:    n,
		Diagram: diagram,
	}, nil
}

func defaultRuler() (sigillayout.TextMeasurer, error) {
	if env.Test() {
		return textmeasure.NewFixedRuler(), nil
	}
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, err
	}
	return ruler, nil
}

// Spread places the items of a left to right, gap apart, with the row
// centered on the origin. Items keep their vertical position.
func Spread(a *sigillayout.Arrangement, gap float64) {
	if len(a.Items) == 0 {
		return
	}
	cursor := 0.
	for i, it := range a.Items {
		if i > 0 {
			cursor += gap
		}
		xr, _ := sigillayout.Boundary(it).OuterCoordsRange()
		sigillayout.Translate(it, r2.Vec{X: cursor - xr.Min})
		cursor += xr.Size()
	}
	xr, _ := sigillayout.Boundary(a).OuterCoordsRange()
	sigillayout.Translate(a, r2.Vec{X: -xr.Center()})
}
