package sigilfigure

import (
	"fmt"

	"go.uber.org/multierr"
	"oss.terrastruct.com/util-go/go2"
)

// Error is a structural defect of one figure in the tree.
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate reports every structural defect in the tree rooted at f. The
// returned error combines one *Error per defect; use multierr.Errors to list
// them.
func Validate(f Figure) error {
	if f == nil {
		return &Error{Path: "figure", Message: "missing figure"}
	}
	return validate(f, string(f.Kind()))
}

func validate(f Figure, path string) (err error) {
	defect := func(format string, args ...interface{}) {
		err = multierr.Append(err, &Error{Path: path, Message: fmt.Sprintf(format, args...)})
	}
	content := func(c Figure) {
		if c == nil {
			defect("missing content")
			return
		}
		err = multierr.Append(err, validate(c, path+".content"))
	}
	list := func(name string, items []Figure) {
		for i, item := range items {
			p := fmt.Sprintf("%s.%s[%d]", path, name, i)
			if item == nil {
				err = multierr.Append(err, &Error{Path: p, Message: "missing figure"})
				continue
			}
			err = multierr.Append(err, validate(item, p))
		}
	}

	switch f := f.(type) {
	case *Symbol, *Phrase:
	case *Pentagram:
		content(f.Content)
	case *Circle:
		if !validStroke(f.Stroke) {
			defect("unknown stroke pattern %q", f.Stroke)
		}
		if !validPattern(f.Pattern) {
			defect("unknown circle pattern %q", f.Pattern)
		}
		content(f.Content)
		list("rim", f.Rim)
	case *RegularPolygon:
		if f.Sides < 3 {
			defect("regular polygon needs at least 3 sides, got %d", f.Sides)
		}
		if !validStroke(f.Stroke) {
			defect("unknown stroke pattern %q", f.Stroke)
		}
		content(f.Content)
	case *Decorated:
		if !validDecoration(f.Decoration) {
			defect("unknown decoration %q", f.Decoration)
		}
		content(f.Content)
	case *Emphasized:
		if !validEmphasis(f.Emphasis) {
			defect("unknown emphasis %q", f.Emphasis)
		}
		content(f.Content)
	case *Link:
		if !validStroke(f.Stroke) {
			defect("unknown stroke pattern %q", f.Stroke)
		}
		list("items", f.Items)
	case *Arrangement:
		list("items", f.Items)
	default:
		defect("unknown figure type %T", f)
	}
	return err
}

// The zero stroke and pattern stand for their defaults.
func validStroke(s StrokePattern) bool {
	return s == "" || go2.Contains(StrokePatterns, s)
}

func validPattern(p CirclePattern) bool {
	return p == "" || go2.Contains(CirclePatterns, p)
}

func validDecoration(d DecorationKind) bool {
	return go2.Contains(DecorationKinds, d)
}

func validEmphasis(e EmphasisKind) bool {
	return go2.Contains(EmphasisKinds, e)
}
