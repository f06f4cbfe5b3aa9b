package weighting

import (
	"errors"
	"math"
	"testing"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuate(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name    string
		kind    catalog.ActivityKind
		payload Payload
		want    float64
	}{
		{"swim at baseline", catalog.ActivitySwimming, Swim{DistanceMeters: 1000}, 1.0},
		{"long swim", catalog.ActivitySwimming, Swim{DistanceMeters: 2000}, 1 + math.Exp(-2)},
		{"short swim", catalog.ActivitySwimming, Swim{DistanceMeters: 500}, math.Exp(-0.5)},
		{"group class without intensity", catalog.ActivityGroupClass, GroupClass{ClassName: "Yoga"}, 1.5},
		{"group class low", catalog.ActivityGroupClass, GroupClass{Intensity: "low"}, 1.5 * 0.8},
		{"group class high", catalog.ActivityGroupClass, GroupClass{Intensity: "HIGH"}, 1.5 * 1.2},
		{"personal training", catalog.ActivityPersonalTraining, PersonalTraining{Topic: "Deadlift", DurationMinutes: 60}, 3.0},
		{"personal training ignores intensity without table", catalog.ActivityPersonalTraining, PersonalTraining{Intensity: "brutal"}, 3.0},
		{"unknown kind", catalog.ActivityKind("climbing"), nil, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Valuate(tt.kind, tt.payload, c)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValuateUnknownIntensity(t *testing.T) {
	_, err := Valuate(catalog.ActivityGroupClass, GroupClass{Intensity: "extreme"}, catalog.Default())
	require.Error(t, err)

	var ie *IntensityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "extreme", ie.Label)
	assert.Equal(t, []string{"high", "low", "medium"}, ie.Allowed)
}

func TestValuateDynamicWithoutDistance(t *testing.T) {
	_, err := Valuate(catalog.ActivitySwimming, GroupClass{}, catalog.Default())
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "distance", fe.Field)
}

func TestValuateIsIdempotent(t *testing.T) {
	c := catalog.Default()
	p := GroupClass{ClassName: "Spin", Intensity: "medium"}

	first, err := Valuate(catalog.ActivityGroupClass, p, c)
	require.NoError(t, err)
	second, err := Valuate(catalog.ActivityGroupClass, p, c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidatePayload(t *testing.T) {
	assert.NoError(t, ValidatePayload(Swim{DistanceMeters: 1}))
	assert.Error(t, ValidatePayload(Swim{}))
	assert.Error(t, ValidatePayload(Swim{DistanceMeters: -100}))
	assert.NoError(t, ValidatePayload(GroupClass{}))
	assert.Error(t, ValidatePayload(PersonalTraining{DurationMinutes: -1}))
	assert.ErrorIs(t, ValidatePayload(nil), ErrMissingField)
}
