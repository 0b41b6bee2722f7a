package features

import (
	"strconv"
	"strings"
)

type Widget string

const (
	WidgetNumber Widget = "number"
	WidgetSlider Widget = "slider"
	WidgetRadio  Widget = "radio"
)

// Field describes how a single feature is collected on an input surface.
type Field struct {
	Feature      string  `json:"feature"`
	Label        string  `json:"label"`
	Widget       Widget  `json:"widget"`
	Default      float64 `json:"default"`
	DefaultLevel Level   `json:"default_level,omitempty"`
	Min          float64 `json:"min,omitempty"`
	Max          float64 `json:"max,omitempty"`
	Step         float64 `json:"step,omitempty"`
}

// Layout is an ordered set of fields, one per feature.
type Layout struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

const (
	LayoutNumeric = "numeric"
	LayoutSlider  = "slider"
)

// NumericLayout collects every feature as a plain number input starting at zero.
func NumericLayout() Layout {
	fields := make([]Field, Len)
	for i, n := range names {
		fields[i] = Field{Feature: n, Label: n, Widget: WidgetNumber}
	}
	return Layout{Name: LayoutNumeric, Fields: fields}
}

// SliderLayout mixes sliders, number inputs and Low/Medium/High radios.
func SliderLayout() Layout {
	slider := func(feature, label string, lo, hi, def, step float64) Field {
		return Field{Feature: feature, Label: label, Widget: WidgetSlider, Min: lo, Max: hi, Default: def, Step: step}
	}
	number := func(feature, label string, def float64) Field {
		return Field{Feature: feature, Label: label, Widget: WidgetNumber, Default: def}
	}
	radio := func(feature, label string) Field {
		v, _ := Medium.Value()
		return Field{Feature: feature, Label: label, Widget: WidgetRadio, Default: v, DefaultLevel: Medium}
	}
	return Layout{
		Name: LayoutSlider,
		Fields: []Field{
			slider("Area", "Area", 0, 20000, 5000, 100),
			slider("Perimeter", "Perimeter", 0, 1000, 200, 10),
			number("MajorAxisLength", "Major Axis Length", 400),
			number("MinorAxisLength", "Minor Axis Length", 150),
			slider("AspectRation", "Aspect Ratio", 0, 5, 2.5, 0.1),
			slider("Eccentricity", "Eccentricity", 0, 1, 0.5, 0.01),
			number("ConvexArea", "Convex Area", 5100),
			number("EquivDiameter", "Equivalent Diameter", 80),
			slider("Extent", "Extent", 0, 1, 0.75, 0.01),
			slider("Solidity", "Solidity", 0, 1, 0.90, 0.01),
			radio("roundness", "Roundness"),
			radio("Compactness", "Compactness"),
			number("ShapeFactor1", "Shape Factor 1", 0.5),
			number("ShapeFactor2", "Shape Factor 2", 0.5),
			number("ShapeFactor3", "Shape Factor 3", 0.5),
			number("ShapeFactor4", "Shape Factor 4", 0.5),
		},
	}
}

// LayoutByName returns the named layout. An empty name selects the numeric one.
func LayoutByName(name string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutNumeric:
		return NumericLayout(), true
	case LayoutSlider, "sliders":
		return SliderLayout(), true
	default:
		return Layout{}, false
	}
}

// Defaults returns the vector a surface submits when nothing is changed.
func (l Layout) Defaults() Vector {
	var v Vector
	for _, f := range l.Fields {
		if i := Index(f.Feature); i >= 0 {
			v[i] = f.Default
		}
	}
	return v
}

// Assemble reads each field through lookup, keyed by feature name, and
// returns the vector in training order. Absent or blank fields take the
// field default, matching widgets that always carry a value.
func (l Layout) Assemble(lookup func(key string) (string, bool)) (Vector, error) {
	values := l.Defaults().Slice()
	for _, f := range l.Fields {
		i := Index(f.Feature)
		if i < 0 {
			return Vector{}, invalidInput("layout %s: unknown feature %q", l.Name, f.Feature)
		}
		raw, ok := lookup(f.Feature)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}
		switch f.Widget {
		case WidgetRadio:
			level, err := ParseLevel(raw)
			if err != nil {
				return Vector{}, invalidInput("%s: %v", f.Feature, err)
			}
			values[i], _ = level.Value()
		default:
			x, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Vector{}, invalidInput("%s: %q is not a number", f.Feature, raw)
			}
			values[i] = x
		}
	}
	return FromValues(values)
}
