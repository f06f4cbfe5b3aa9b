package weighting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chenmq77/duckiki/internal/catalog"
)

// ErrMissingField is wrapped by FieldError.
var ErrMissingField = errors.New("missing required field")

// FieldError reports an invalid or missing payload field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IntensityError reports an intensity label the activity type does not define.
type IntensityError struct {
	Kind    catalog.ActivityKind
	Label   string
	Allowed []string
}

func (e *IntensityError) Error() string {
	return fmt.Sprintf("unknown intensity %q for %s (allowed: %s)", e.Label, e.Kind, strings.Join(e.Allowed, ", "))
}

// Valuate computes the weight of an activity of the given kind.
//
// Kinds missing from the catalog weigh 1.0. Dynamically weighted kinds use
// Weight on the payload distance; the rest use the base weight. An intensity
// label scales the result when the type defines a multiplier table, and an
// unknown label is an *IntensityError.
func Valuate(kind catalog.ActivityKind, p Payload, c *catalog.Catalog) (float64, error) {
	t, ok := c.Activity(kind)
	if !ok {
		return 1.0, nil
	}

	w := t.BaseWeight
	if t.DynamicWeight {
		swim, ok := p.(Swim)
		if !ok {
			return 0, &FieldError{Field: "distance", Message: fmt.Sprintf("%s requires a distance", kind)}
		}
		w = Weight(float64(swim.DistanceMeters), t.Weight.Baseline, t.Weight.Sigma)
	}

	if p == nil || len(t.Intensity) == 0 {
		return w, nil
	}
	label, ok := p.IntensityLabel()
	if !ok {
		return w, nil
	}
	m, ok := t.Intensity[strings.ToLower(label)]
	if !ok {
		return 0, &IntensityError{Kind: kind, Label: label, Allowed: t.IntensityLabels()}
	}
	return w * m, nil
}

// ValidatePayload checks that p carries what its kind requires.
func ValidatePayload(p Payload) error {
	switch v := p.(type) {
	case Swim:
		if v.DistanceMeters <= 0 {
			return &FieldError{Field: "distance", Message: "must be greater than 0"}
		}
	case GroupClass:
		// class name and intensity are optional
	case PersonalTraining:
		if v.DurationMinutes < 0 {
			return &FieldError{Field: "duration_minutes", Message: "must not be negative"}
		}
	case nil:
		return fmt.Errorf("payload: %w", ErrMissingField)
	}
	return nil
}
