package sigilfigure

import (
	"encoding/json"
	"fmt"
)

// SerializedFigure is the JSON shape of every figure. Kind selects which of
// the remaining fields are meaningful.
type SerializedFigure struct {
	Kind       Kind              `json:"kind"`
	Text       string            `json:"text,omitempty"`
	Double     bool              `json:"double,omitempty"`
	Stroke     StrokePattern     `json:"stroke,omitempty"`
	Pattern    CirclePattern     `json:"pattern,omitempty"`
	Sides      int               `json:"sides,omitempty"`
	Decoration DecorationKind    `json:"decoration,omitempty"`
	Emphasis   EmphasisKind      `json:"emphasis,omitempty"`
	Rim        []json.RawMessage `json:"rim,omitempty"`
	Items      []json.RawMessage `json:"items,omitempty"`
	Content    json.RawMessage   `json:"content,omitempty"`
}

// Deserialize decodes a figure tree. Missing strokes default to a plain line
// and missing circle patterns to none. Structural defects such as missing
// content decode fine and are left for Validate.
func Deserialize(b []byte) (Figure, error) {
	return deserialize(b, "")
}

func deserialize(b []byte, path string) (Figure, error) {
	var sf SerializedFigure
	if err := json.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("%s: %w", pathOr(path), err)
	}
	if path == "" {
		path = string(sf.Kind)
	}
	if sf.Stroke == "" {
		sf.Stroke = StrokeLine
	}
	if sf.Pattern == "" {
		sf.Pattern = PatternNone
	}

	content, err := deserializeOptional(sf.Content, path+".content")
	if err != nil {
		return nil, err
	}
	switch sf.Kind {
	case KindSymbol:
		return &Symbol{Text: sf.Text}, nil
	case KindPhrase:
		return &Phrase{Text: sf.Text}, nil
	case KindPentagram:
		return &Pentagram{Content: content}, nil
	case KindCircle:
		rim, err := deserializeList(sf.Rim, path+".rim")
		if err != nil {
			return nil, err
		}
		return &Circle{
			Double:  sf.Double,
			Stroke:  sf.Stroke,
			Pattern: sf.Pattern,
			Rim:     rim,
			Content: content,
		}, nil
	case KindRegularPolygon:
		return &RegularPolygon{Sides: sf.Sides, Stroke: sf.Stroke, Content: content}, nil
	case KindDecorated:
		return &Decorated{Decoration: sf.Decoration, Content: content}, nil
	case KindEmphasized:
		return &Emphasized{Emphasis: sf.Emphasis, Content: content}, nil
	case KindLink:
		items, err := deserializeList(sf.Items, path+".items")
		if err != nil {
			return nil, err
		}
		return &Link{Stroke: sf.Stroke, Items: items}, nil
	case KindArrangement:
		items, err := deserializeList(sf.Items, path+".items")
		if err != nil {
			return nil, err
		}
		return &Arrangement{Items: items}, nil
	}
	return nil, fmt.Errorf("%s: unknown figure kind %q", pathOr(path), sf.Kind)
}

func deserializeOptional(b json.RawMessage, path string) (Figure, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return deserialize(b, path)
}

func deserializeList(bs []json.RawMessage, path string) ([]Figure, error) {
	figures := make([]Figure, 0, len(bs))
	for i, b := range bs {
		f, err := deserialize(b, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		figures = append(figures, f)
	}
	return figures, nil
}

func pathOr(path string) string {
	if path == "" {
		return "figure"
	}
	return path
}

func Serialize(f Figure) ([]byte, error) {
	sf, err := toSerializedFigure(f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sf)
}

func toSerializedFigure(f Figure) (SerializedFigure, error) {
	sf := SerializedFigure{Kind: f.Kind()}
	var err error
	switch f := f.(type) {
	case *Symbol:
		sf.Text = f.Text
	case *Phrase:
		sf.Text = f.Text
	case *Pentagram:
		sf.Content, err = serializeOptional(f.Content)
	case *Circle:
		sf.Double = f.Double
		sf.Stroke = f.Stroke
		sf.Pattern = f.Pattern
		if sf.Rim, err = serializeList(f.Rim); err != nil {
			return sf, err
		}
		sf.Content, err = serializeOptional(f.Content)
	case *RegularPolygon:
		sf.Sides = f.Sides
		sf.Stroke = f.Stroke
		sf.Content, err = serializeOptional(f.Content)
	case *Decorated:
		sf.Decoration = f.Decoration
		sf.Content, err = serializeOptional(f.Content)
	case *Emphasized:
		sf.Emphasis = f.Emphasis
		sf.Content, err = serializeOptional(f.Content)
	case *Link:
		sf.Stroke = f.Stroke
		sf.Items, err = serializeList(f.Items)
	case *Arrangement:
		sf.Items, err = serializeList(f.Items)
	default:
		return sf, fmt.Errorf("cannot serialize figure of type %T", f)
	}
	return sf, err
}

func serializeOptional(f Figure) (json.RawMessage, error) {
	if f == nil {
		return nil, nil
	}
	return Serialize(f)
}

func serializeList(fs []Figure) ([]json.RawMessage, error) {
	if len(fs) == 0 {
		return nil, nil
	}
	out := make([]json.RawMessage, 0, len(fs))
	for _, f := range fs {
		b, err := Serialize(f)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
