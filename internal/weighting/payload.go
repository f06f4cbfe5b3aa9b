package weighting

import "github.com/chenmq77/duckiki/internal/catalog"

// Payload is the type-specific data of an activity. The set of
// implementations is closed: Swim, GroupClass and PersonalTraining.
type Payload interface {
	Kind() catalog.ActivityKind
	// IntensityLabel returns the intensity label, if any.
	IntensityLabel() (string, bool)
	isPayload()
}

// Swim is a distance-based swimming session.
type Swim struct {
	DistanceMeters int
}

func (Swim) Kind() catalog.ActivityKind     { return catalog.ActivitySwimming }
func (Swim) IntensityLabel() (string, bool) { return "", false }
func (Swim) isPayload()                     {}

// GroupClass is an instructor-led class.
type GroupClass struct {
	ClassName string
	Intensity string
}

func (GroupClass) Kind() catalog.ActivityKind { return catalog.ActivityGroupClass }
func (p GroupClass) IntensityLabel() (string, bool) {
	return p.Intensity, p.Intensity != ""
}
func (GroupClass) isPayload() {}

// PersonalTraining is a one-to-one session with a trainer.
type PersonalTraining struct {
	Topic           string
	DurationMinutes int
	Trainer         string
	Intensity       string
}

func (PersonalTraining) Kind() catalog.ActivityKind { return catalog.ActivityPersonalTraining }
func (p PersonalTraining) IntensityLabel() (string, bool) {
	return p.Intensity, p.Intensity != ""
}
func (PersonalTraining) isPayload() {}
