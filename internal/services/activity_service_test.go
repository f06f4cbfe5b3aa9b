package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_CreateWeighs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		in     ActivityInput
		weight float64
	}{
		{"baseline swim", ActivityInput{Type: "swimming", Date: "2024-01-01", Distance: ptr(1000)}, 1.0},
		{"long swim", ActivityInput{Type: "Swimming", Date: "2024-01-02", Distance: ptr(1500)}, 1.6065306597},
		{"short swim", ActivityInput{Type: "swimming", Date: "2024-01-03", Distance: ptr(500)}, 0.6065306597},
		{"hard class", ActivityInput{Type: "group_class", Date: "2024-01-04", ClassName: ptr("Spin"), Intensity: ptr("High")}, 1.8},
		{"class without intensity", ActivityInput{Type: "group_class", Date: "2024-01-05"}, 1.5},
		{"training", ActivityInput{Type: "personal_training", Date: "2024-01-06", DurationMinutes: ptr(60), Trainer: ptr("Sam")}, 3.0},
		{"unknown type", ActivityInput{Type: "yoga", Date: "2024-01-07"}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := env.svcs.Activity.Create(ctx, tt.in)
			require.NoError(t, err)
			assert.NotZero(t, a.ID)
			assert.InDelta(t, tt.weight, a.CalculatedWeight, 1e-6)

			stored, err := env.svcs.Activity.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.InDelta(t, tt.weight, stored.CalculatedWeight, 1e-6)
		})
	}
}

func TestActivityService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    ActivityInput
		field string
	}{
		{"missing date", ActivityInput{Type: "swimming", Distance: ptr(1000)}, "date"},
		{"missing type", ActivityInput{Type: " ", Date: "2024-01-01"}, "type"},
		{"swim without distance", ActivityInput{Type: "swimming", Date: "2024-01-01"}, "distance"},
		{"negative distance", ActivityInput{Type: "swimming", Date: "2024-01-01", Distance: ptr(-5)}, "distance"},
		{"unknown intensity", ActivityInput{Type: "group_class", Date: "2024-01-01", Intensity: ptr("extreme")}, "intensity"},
		{"negative duration", ActivityInput{Type: "personal_training", Date: "2024-01-01", DurationMinutes: ptr(-1)}, "duration_minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svcs.Activity.Create(ctx, tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	weights, err := env.repos.Activity.Weights(ctx)
	require.NoError(t, err)
	assert.Empty(t, weights)
}

func TestActivityService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svcs.Activity.Create(ctx, ActivityInput{Type: "swimming", Date: "2024-01-01", Distance: ptr(1000)})
	require.NoError(t, err)

	// a note change keeps the stored weight, even if it was edited out of band
	a.CalculatedWeight = 0.42
	require.NoError(t, env.repos.Activity.Update(ctx, a))
	updated, err := env.svcs.Activity.Update(ctx, a.ID, ActivityPatch{Note: ptr("felt slow")})
	require.NoError(t, err)
	assert.Equal(t, 0.42, updated.CalculatedWeight)
	assert.Equal(t, "felt slow", *updated.Note)

	// a distance change recomputes it
	updated, err = env.svcs.Activity.Update(ctx, a.ID, ActivityPatch{Distance: ptr(2000)})
	require.NoError(t, err)
	assert.InDelta(t, 1.1353352832, updated.CalculatedWeight, 1e-6)

	// so does a type change
	updated, err = env.svcs.Activity.Update(ctx, a.ID, ActivityPatch{Type: ptr("personal_training")})
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.CalculatedWeight)

	_, err = env.svcs.Activity.Update(ctx, a.ID, ActivityPatch{Type: ptr("group_class"), Intensity: ptr("furious")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svcs.Activity.Update(ctx, 999, ActivityPatch{Note: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityService_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svcs.Activity.Create(ctx, ActivityInput{Type: "swimming", Date: "2024-01-01", Distance: ptr(1234)})
	require.NoError(t, err)
	again, err := env.svcs.Activity.Update(ctx, a.ID, ActivityPatch{Distance: ptr(1234)})
	require.NoError(t, err)
	assert.Equal(t, a.CalculatedWeight, again.CalculatedWeight)
}

func TestActivityService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svcs.Activity.Create(ctx, ActivityInput{Type: "group_class", Date: "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, env.svcs.Activity.Delete(ctx, a.ID))
	_, err = env.svcs.Activity.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.svcs.Activity.Delete(ctx, a.ID), ErrNotFound)
}
